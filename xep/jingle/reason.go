/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xmpp"
)

// ReasonCondition represents a session-terminate reason.
type ReasonCondition string

// Reason conditions defined by XEP-0166.
const (
	AlternativeSession      ReasonCondition = "alternative-session"
	Busy                    ReasonCondition = "busy"
	Cancel                  ReasonCondition = "cancel"
	ConnectivityError       ReasonCondition = "connectivity-error"
	Decline                 ReasonCondition = "decline"
	Expired                 ReasonCondition = "expired"
	FailedApplication       ReasonCondition = "failed-application"
	FailedTransport         ReasonCondition = "failed-transport"
	GeneralError            ReasonCondition = "general-error"
	Gone                    ReasonCondition = "gone"
	IncompatibleParameters  ReasonCondition = "incompatible-parameters"
	MediaError              ReasonCondition = "media-error"
	SecurityError           ReasonCondition = "security-error"
	Success                 ReasonCondition = "success"
	Timeout                 ReasonCondition = "timeout"
	UnsupportedApplications ReasonCondition = "unsupported-applications"
	UnsupportedTransports   ReasonCondition = "unsupported-transports"
)

var reasonConditions = map[ReasonCondition]struct{}{
	AlternativeSession: {}, Busy: {}, Cancel: {}, ConnectivityError: {}, Decline: {},
	Expired: {}, FailedApplication: {}, FailedTransport: {}, GeneralError: {}, Gone: {},
	IncompatibleParameters: {}, MediaError: {}, SecurityError: {}, Success: {}, Timeout: {},
	UnsupportedApplications: {}, UnsupportedTransports: {},
}

// IsValid returns true if the condition is defined by XEP-0166.
func (c ReasonCondition) IsValid() bool {
	_, ok := reasonConditions[c]
	return ok
}

// Reason represents a Jingle <reason/> element.
type Reason struct {
	Condition ReasonCondition
	Text      string
	Extension extension.Extension
}

// NewReason returns a reason element.
func NewReason(condition ReasonCondition, text string) *Reason {
	return &Reason{Condition: condition, Text: text}
}

// Element returns the XML representation of the reason.
func (r *Reason) Element() *xmpp.Element {
	el := xmpp.NewElementName("reason")
	el.AppendElement(xmpp.NewElementName(string(r.Condition)))
	if len(r.Text) > 0 {
		el.AppendElement(xmpp.NewElementName("text").SetText(r.Text))
	}
	if r.Extension != nil {
		el.AppendElement(r.Extension.Element())
	}
	return el
}
