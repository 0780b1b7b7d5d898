/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
)

const (
	// Namespace is the XEP-0166 Jingle namespace.
	Namespace = "urn:xmpp:jingle:1"

	// ErrorsNamespace qualifies Jingle specific error conditions.
	ErrorsNamespace = "urn:xmpp:jingle:errors:1"

	// ElementName is the Jingle IQ child element name.
	ElementName = "jingle"
)

// Action represents a Jingle action.
type Action string

const (
	// ContentAccept accepts a content-add.
	ContentAccept Action = "content-accept"

	// ContentAdd adds one or more new content definitions to the session.
	ContentAdd Action = "content-add"

	// ContentModify changes the directionality of media sending.
	ContentModify Action = "content-modify"

	// ContentReject rejects a content-add.
	ContentReject Action = "content-reject"

	// ContentRemove removes one or more content definitions from the session.
	ContentRemove Action = "content-remove"

	// DescriptionInfo exchanges information about parameters for an application type.
	DescriptionInfo Action = "description-info"

	// SecurityInfo sends information related to establishment or maintenance of security preconditions.
	SecurityInfo Action = "security-info"

	// SessionAccept definitively accepts a session negotiation.
	SessionAccept Action = "session-accept"

	// SessionInfo sends session-level information, such as a ping or a ringing message.
	SessionInfo Action = "session-info"

	// SessionInitiate requests negotiation of a new Jingle session.
	SessionInitiate Action = "session-initiate"

	// SessionTerminate ends an existing session.
	SessionTerminate Action = "session-terminate"

	// TransportAccept accepts a transport-replace.
	TransportAccept Action = "transport-accept"

	// TransportInfo exchanges transport candidates.
	TransportInfo Action = "transport-info"

	// TransportReject rejects a transport-replace.
	TransportReject Action = "transport-reject"

	// TransportReplace redefines a transport method.
	TransportReplace Action = "transport-replace"

	// SourceAdd announces new media sources.
	SourceAdd Action = "source-add"

	// SourceRemove withdraws media sources.
	SourceRemove Action = "source-remove"
)

var actions = map[Action]struct{}{
	ContentAccept:    {},
	ContentAdd:       {},
	ContentModify:    {},
	ContentReject:    {},
	ContentRemove:    {},
	DescriptionInfo:  {},
	SecurityInfo:     {},
	SessionAccept:    {},
	SessionInfo:      {},
	SessionInitiate:  {},
	SessionTerminate: {},
	TransportAccept:  {},
	TransportInfo:    {},
	TransportReject:  {},
	TransportReplace: {},
	SourceAdd:        {},
	SourceRemove:     {},
}

// IsValid returns true if the action is a known Jingle action.
func (a Action) IsValid() bool {
	_, ok := actions[a]
	return ok
}

// Jingle represents a <jingle/> IQ payload.
type Jingle struct {
	Action      Action
	SID         string
	Initiator   *jid.JID
	Responder   *jid.JID
	Contents    []*Content
	Reason      *Reason
	SessionInfo *SessionInfoElement
	Extensions  []extension.Extension
}

// New returns a Jingle payload for the given action and session identifier.
func New(action Action, sid string) *Jingle {
	return &Jingle{Action: action, SID: sid}
}

// Name satisfies provider.Payload interface.
func (j *Jingle) Name() string { return ElementName }

// Namespace satisfies provider.Payload interface.
func (j *Jingle) Namespace() string { return Namespace }

// AddContent appends a content definition.
func (j *Jingle) AddContent(c *Content) {
	j.Contents = append(j.Contents, c)
}

// Content returns the content with the given name, or nil.
func (j *Jingle) Content(name string) *Content {
	for _, c := range j.Contents {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddExtension appends an extension element.
func (j *Jingle) AddExtension(ext extension.Extension) {
	j.Extensions = append(j.Extensions, ext)
}

// Extension returns the first extension matching name and namespace, or nil.
func (j *Jingle) Extension(name, namespace string) extension.Extension {
	for _, ext := range j.Extensions {
		if ext.Name() == name && ext.Namespace() == namespace {
			return ext
		}
	}
	return nil
}

// Element satisfies provider.Payload interface.
func (j *Jingle) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace(ElementName, Namespace)
	el.SetAttribute("action", string(j.Action))
	if j.Initiator != nil {
		el.SetAttribute("initiator", j.Initiator.String())
	}
	if j.Responder != nil {
		el.SetAttribute("responder", j.Responder.String())
	}
	el.SetAttribute("sid", j.SID)
	for _, c := range j.Contents {
		el.AppendElement(c.Element())
	}
	if j.Reason != nil {
		el.AppendElement(j.Reason.Element())
	}
	if j.SessionInfo != nil {
		el.AppendElement(j.SessionInfo.Element())
	}
	for _, ext := range j.Extensions {
		el.AppendElement(ext.Element())
	}
	return el
}

// UnknownSessionError returns the <unknown-session/> error condition.
func UnknownSessionError() *xmpp.Element {
	return xmpp.NewElementNamespace("unknown-session", ErrorsNamespace)
}

// OutOfOrderError returns the <out-of-order/> error condition.
func OutOfOrderError() *xmpp.Element {
	return xmpp.NewElementNamespace("out-of-order", ErrorsNamespace)
}

// TieBreakError returns the <tie-break/> error condition.
func TieBreakError() *xmpp.Element {
	return xmpp.NewElementNamespace("tie-break", ErrorsNamespace)
}

// UnsupportedInfoError returns the <unsupported-info/> error condition.
func UnsupportedInfoError() *xmpp.Element {
	return xmpp.NewElementNamespace("unsupported-info", ErrorsNamespace)
}
