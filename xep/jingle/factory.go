/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/google/uuid"
)

const (
	byeText    = "Nice talking to you!"
	cancelText = "Oops!"
)

// NewSID returns a random session identifier.
func NewSID() string {
	return uuid.New().String()
}

func newSet(from, to *jid.JID, j *Jingle) *provider.IQ {
	return provider.NewIQ("", xmpp.SetType, from, to, j)
}

func withContents(j *Jingle, contents []*Content) *Jingle {
	for _, c := range contents {
		j.AddContent(c)
	}
	return j
}

// NewSessionInitiate returns a session-initiate request.
func NewSessionInitiate(from, to *jid.JID, sid string, contents []*Content) *provider.IQ {
	j := withContents(New(SessionInitiate, sid), contents)
	j.Initiator = from
	return newSet(from, to, j)
}

// NewSessionAccept returns the session-accept answering initiate.
// The <group/> element of the offer is copied.
func NewSessionAccept(from *jid.JID, initiate *Jingle, contents []*Content) *provider.IQ {
	j := withContents(New(SessionAccept, initiate.SID), contents)
	j.Responder = from
	if group := initiate.Extension("group", GroupingNamespace); group != nil {
		j.AddExtension(group)
	}
	return newSet(from, initiate.Initiator, j)
}

// NewSessionInfo returns a session-info request carrying an informational message.
func NewSessionInfo(from, to *jid.JID, sid string, infoType SessionInfoType) *provider.IQ {
	j := New(SessionInfo, sid)
	j.SessionInfo = &SessionInfoElement{Type: infoType}
	return newSet(from, to, j)
}

// NewMute returns a mute or unmute session-info for the named content.
func NewMute(from, to *jid.JID, sid string, mute bool, contentName string) *provider.IQ {
	infoType := UnmuteInfo
	if mute {
		infoType = MuteInfo
	}
	j := New(SessionInfo, sid)
	j.SessionInfo = &SessionInfoElement{Type: infoType, Name: contentName}
	return newSet(from, to, j)
}

// NewRinging returns the <ringing/> session-info answering initiate.
// local is the address the offer was sent to.
func NewRinging(local *jid.JID, initiate *Jingle) *provider.IQ {
	return NewSessionInfo(local, initiate.Initiator, initiate.SID, RingingInfo)
}

// NewSessionTerminate returns a session-terminate request.
func NewSessionTerminate(from, to *jid.JID, sid string, condition ReasonCondition, text string) *provider.IQ {
	j := New(SessionTerminate, sid)
	j.Reason = NewReason(condition, text)
	return newSet(from, to, j)
}

// NewBusy returns a session-terminate with a 'busy' reason.
func NewBusy(from, to *jid.JID, sid string) *provider.IQ {
	return NewSessionTerminate(from, to, sid, Busy, "")
}

// NewBye returns a session-terminate with a 'success' reason.
func NewBye(from, to *jid.JID, sid string) *provider.IQ {
	return NewSessionTerminate(from, to, sid, Success, byeText)
}

// NewCancel returns a session-terminate with a 'cancel' reason.
func NewCancel(from, to *jid.JID, sid string) *provider.IQ {
	return NewSessionTerminate(from, to, sid, Cancel, cancelText)
}

// NewDescriptionInfo returns a description-info answering initiate.
func NewDescriptionInfo(from *jid.JID, initiate *Jingle, contents []*Content) *provider.IQ {
	j := withContents(New(DescriptionInfo, initiate.SID), contents)
	j.Responder = from
	return newSet(from, initiate.Initiator, j)
}

// NewTransportInfo returns a transport-info request.
func NewTransportInfo(from, to *jid.JID, sid string, contents []*Content) *provider.IQ {
	j := withContents(New(TransportInfo, sid), contents)
	j.Initiator = from
	return newSet(from, to, j)
}

// NewContentAdd returns a content-add request.
func NewContentAdd(from, to *jid.JID, sid string, contents []*Content) *provider.IQ {
	return newSet(from, to, withContents(New(ContentAdd, sid), contents))
}

// NewContentAccept returns a content-accept request.
func NewContentAccept(from, to *jid.JID, sid string, contents []*Content) *provider.IQ {
	return newSet(from, to, withContents(New(ContentAccept, sid), contents))
}

// NewContentReject returns a content-reject request.
// contents may be nil.
func NewContentReject(from, to *jid.JID, sid string, contents []*Content) *provider.IQ {
	return newSet(from, to, withContents(New(ContentReject, sid), contents))
}

// NewContentModify returns a content-modify request for a single content.
func NewContentModify(from, to *jid.JID, sid string, content *Content) *provider.IQ {
	return newSet(from, to, withContents(New(ContentModify, sid), []*Content{content}))
}

// NewContentRemove returns a content-remove request.
func NewContentRemove(from, to *jid.JID, sid string, contents []*Content) *provider.IQ {
	return newSet(from, to, withContents(New(ContentRemove, sid), contents))
}
