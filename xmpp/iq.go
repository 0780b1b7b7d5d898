/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"errors"
	"fmt"

	"github.com/atalk/xmppcore/xmpp/jid"
)

const (
	// GetType represents a 'get' IQ type.
	GetType = "get"

	// SetType represents a 'set' IQ type.
	SetType = "set"

	// ResultType represents a 'result' IQ type.
	ResultType = "result"
)

// IQType represents the kind of an IQ stanza.
type IQType int

const (
	// ErrorIQ represents an 'error' IQ.
	ErrorIQ IQType = iota

	// SetIQ represents a 'set' IQ.
	SetIQ

	// ResultIQ represents a 'result' IQ.
	ResultIQ

	// GetIQ represents a 'get' IQ.
	GetIQ

	// InvalidIQ represents an unrecognized IQ type value.
	InvalidIQ

	// TimeoutIQ is never read from or written to the wire.
	// It's produced locally when a request receives no answer in time.
	TimeoutIQ
)

// TimeoutType is the local 'type' attribute value of a timed out request.
const TimeoutType = "timeout"

// ParseIQType maps a 'type' attribute value to its IQType.
func ParseIQType(tp string) IQType {
	switch tp {
	case ErrorType:
		return ErrorIQ
	case SetType:
		return SetIQ
	case ResultType:
		return ResultIQ
	case GetType:
		return GetIQ
	case TimeoutType:
		return TimeoutIQ
	}
	return InvalidIQ
}

// String satisfies fmt.Stringer interface.
func (t IQType) String() string {
	switch t {
	case ErrorIQ:
		return ErrorType
	case SetIQ:
		return SetType
	case ResultIQ:
		return ResultType
	case GetIQ:
		return GetType
	case TimeoutIQ:
		return TimeoutType
	}
	return "invalid"
}

// IQ type represents an <iq> element.
// All incoming <iq> elements providing from the
// stream will automatically be converted to IQ objects.
type IQ struct {
	stanzaElement
}

// NewIQFromElement creates an IQ object from XElement.
func NewIQFromElement(e XElement, from *jid.JID, to *jid.JID) (*IQ, error) {
	if e.Name() != IQName {
		return nil, fmt.Errorf("wrong IQ element name: %s", e.Name())
	}
	if len(e.ID()) == 0 {
		return nil, errors.New(`IQ "id" attribute is required`)
	}
	iqType := e.Type()
	if len(iqType) == 0 {
		return nil, errors.New(`IQ "type" attribute is required`)
	}
	switch ParseIQType(iqType) {
	case GetIQ, SetIQ:
		if e.Elements().Count() != 1 {
			return nil, errors.New(`an IQ stanza of type "get" or "set" must contain one and only one child element`)
		}
	case ResultIQ:
		if e.Elements().Count() > 1 {
			return nil, errors.New(`an IQ stanza of type "result" must include zero or one child elements`)
		}
	case ErrorIQ:
		if e.Elements().Child("error") == nil {
			return nil, errors.New(`an IQ stanza of type "error" must include an error child element`)
		}
	default:
		return nil, fmt.Errorf(`invalid IQ "type" attribute: %s`, iqType)
	}
	iq := &IQ{}
	iq.copyFrom(e)
	iq.SetFromJID(from)
	iq.SetToJID(to)
	iq.SetNamespace("")
	return iq, nil
}

// NewIQType creates and returns a new IQ element.
func NewIQType(identifier string, iqType string) *IQ {
	iq := &IQ{}
	iq.SetName(IQName)
	iq.SetID(identifier)
	iq.SetType(iqType)
	return iq
}

// NewTimeoutIQ returns the locally synthesized answer to an expired request.
func NewTimeoutIQ(request *IQ) *IQ {
	iq := NewIQType(request.ID(), TimeoutType)
	iq.SetFromJID(request.ToJID())
	iq.SetToJID(request.FromJID())
	return iq
}

// IQType returns the IQ kind.
func (iq *IQ) IQType() IQType {
	return ParseIQType(iq.Type())
}

// IsGet returns true if this is a 'get' type IQ.
func (iq *IQ) IsGet() bool {
	return iq.Type() == GetType
}

// IsSet returns true if this is a 'set' type IQ.
func (iq *IQ) IsSet() bool {
	return iq.Type() == SetType
}

// IsResult returns true if this is a 'result' type IQ.
func (iq *IQ) IsResult() bool {
	return iq.Type() == ResultType
}

// IsTimeout returns true if this IQ was synthesized for an expired request.
func (iq *IQ) IsTimeout() bool {
	return iq.Type() == TimeoutType
}

// PayloadElement returns the IQ single child element, or nil when the IQ has none.
// The child of an error IQ is the first element that is not <error/>.
func (iq *IQ) PayloadElement() XElement {
	for _, el := range iq.elements {
		if el.Name() != "error" {
			return el
		}
	}
	return nil
}

// ResultIQ returns the instance associated result IQ.
func (iq *IQ) ResultIQ() *IQ {
	rs := &IQ{}
	rs.SetName(IQName)
	rs.SetAttribute("type", ResultType)
	rs.SetAttribute("id", iq.ID())
	rs.SetFromJID(iq.ToJID())
	rs.SetToJID(iq.FromJID())
	return rs
}

// ErrorIQ returns an error copy of the IQ carrying stanzaErr and
// the optional application specific condition elements.
func (iq *IQ) ErrorIQ(stanzaErr *StanzaError, appConditions ...XElement) *IQ {
	rs := &IQ{}
	rs.copyFrom(iq)
	rs.SetType(ErrorType)
	rs.SetFromJID(iq.ToJID())
	rs.SetToJID(iq.FromJID())
	errEl := stanzaErr.Element()
	errEl.AppendElements(appConditions)
	rs.AppendElement(errEl)
	return rs
}

// StanzaError returns the error carried by an 'error' IQ, or nil.
func (iq *IQ) StanzaError() *StanzaError {
	errEl := iq.Error()
	if errEl == nil {
		return nil
	}
	return StanzaErrorFromElement(errEl)
}
