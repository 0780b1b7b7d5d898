/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"strconv"
)

const stanzasNamespace = "urn:ietf:params:xml:ns:xmpp-stanzas"

// Stanza error types.
const (
	AuthErrorType   = "auth"
	CancelErrorType = "cancel"
	ModifyErrorType = "modify"
	WaitErrorType   = "wait"
)

// StanzaError represents a stanza <error/> element: a defined condition,
// its legacy code, the error type and an optional descriptive text.
type StanzaError struct {
	code      int
	errorType string
	condition string
	text      string
}

// definedConditions indexes every RFC 6120 condition by name.
var definedConditions = map[string]*StanzaError{}

func define(code int, errorType string, condition string) *StanzaError {
	se := &StanzaError{code: code, errorType: errorType, condition: condition}
	definedConditions[condition] = se
	return se
}

// Defined stanza error conditions (RFC 6120 8.3.3).
var (
	ErrBadRequest            = define(400, ModifyErrorType, "bad-request")
	ErrConflict              = define(409, CancelErrorType, "conflict")
	ErrFeatureNotImplemented = define(501, CancelErrorType, "feature-not-implemented")
	ErrForbidden             = define(403, AuthErrorType, "forbidden")
	ErrGone                  = define(302, ModifyErrorType, "gone")
	ErrInternalServerError   = define(500, WaitErrorType, "internal-server-error")
	ErrItemNotFound          = define(404, CancelErrorType, "item-not-found")
	ErrJidMalformed          = define(400, ModifyErrorType, "jid-malformed")
	ErrNotAcceptable         = define(406, ModifyErrorType, "not-acceptable")
	ErrNotAllowed            = define(405, CancelErrorType, "not-allowed")
	ErrNotAuthorized         = define(401, AuthErrorType, "not-authorized")
	ErrPaymentRequired       = define(402, AuthErrorType, "payment-required")
	ErrPolicyViolation       = define(0, ModifyErrorType, "policy-violation")
	ErrRecipientUnavailable  = define(404, WaitErrorType, "recipient-unavailable")
	ErrRedirect              = define(302, ModifyErrorType, "redirect")
	ErrRegistrationRequired  = define(407, AuthErrorType, "registration-required")
	ErrRemoteServerNotFound  = define(404, CancelErrorType, "remote-server-not-found")
	ErrRemoteServerTimeout   = define(504, WaitErrorType, "remote-server-timeout")
	ErrResourceConstraint    = define(500, WaitErrorType, "resource-constraint")
	ErrServiceUnavailable    = define(503, CancelErrorType, "service-unavailable")
	ErrSubscriptionRequired  = define(407, AuthErrorType, "subscription-required")
	ErrUndefinedCondition    = define(500, WaitErrorType, "undefined-condition")
	ErrUnexpectedCondition   = define(400, WaitErrorType, "unexpected-condition")
	ErrUnexpectedRequest     = define(400, WaitErrorType, "unexpected-request")
)

// StanzaErrorFromElement reads a StanzaError from an <error/> element.
// Unknown conditions map to 'undefined-condition'. A missing code is
// filled in from the defined condition.
func StanzaErrorFromElement(errEl XElement) *StanzaError {
	se := &StanzaError{
		errorType: errEl.Type(),
		condition: ErrUndefinedCondition.condition,
	}
	for _, child := range errEl.Elements().All() {
		switch {
		case child.Namespace() != stanzasNamespace:
			continue
		case child.Name() == "text":
			se.text = child.Text()
		default:
			se.condition = child.Name()
		}
	}
	se.code, _ = strconv.Atoi(errEl.Attributes().Get("code"))
	if def := definedConditions[se.condition]; def != nil && se.code == 0 {
		se.code = def.code
	}
	return se
}

// Error satisfies error interface.
func (se *StanzaError) Error() string { return se.condition }

// Condition returns the defined condition name.
func (se *StanzaError) Condition() string { return se.condition }

// Code returns the legacy numeric error code.
func (se *StanzaError) Code() int { return se.code }

// Type returns the error type (auth, cancel, modify, wait).
func (se *StanzaError) Type() string { return se.errorType }

// Text returns the optional descriptive text.
func (se *StanzaError) Text() string { return se.text }

// WithText returns a copy of the error carrying a descriptive text.
func (se *StanzaError) WithText(text string) *StanzaError {
	cp := *se
	cp.text = text
	return &cp
}

// Element returns StanzaError equivalent XML element.
func (se *StanzaError) Element() *Element {
	errEl := NewElementName("error")
	if se.code > 0 {
		errEl.SetAttribute("code", strconv.Itoa(se.code))
	}
	errEl.SetType(se.errorType)
	errEl.AppendElement(NewElementNamespace(se.condition, stanzasNamespace))
	if len(se.text) > 0 {
		errEl.AppendElement(NewElementNamespace("text", stanzasNamespace).SetText(se.text))
	}
	return errEl
}
