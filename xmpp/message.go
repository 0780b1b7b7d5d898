/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

// Message types. An absent type means 'normal'.
const (
	NormalType    = "normal"
	HeadlineType  = "headline"
	ChatType      = "chat"
	GroupChatType = "groupchat"
)

// Message type represents a <message> element.
type Message struct {
	stanzaElement
}

// NewMessageFromElement creates a Message object from XElement.
func NewMessageFromElement(e XElement, from *jid.JID, to *jid.JID) (*Message, error) {
	if e.Name() != MessageName {
		return nil, errors.Errorf("xmpp: wrong message element name: %s", e.Name())
	}
	switch e.Type() {
	case "", ErrorType, NormalType, HeadlineType, ChatType, GroupChatType:
	default:
		return nil, errors.Errorf(`xmpp: invalid message "type" attribute: %s`, e.Type())
	}
	m := &Message{}
	m.copyFrom(e)
	m.SetFromJID(from)
	m.SetToJID(to)
	m.SetNamespace("")
	return m, nil
}

// NewMessageType creates and returns a new Message element.
func NewMessageType(identifier string, messageType string) *Message {
	m := &Message{}
	m.SetName(MessageName)
	m.SetID(identifier)
	m.SetType(messageType)
	return m
}

// Body returns the message <body/> text.
func (m *Message) Body() string {
	if b := m.elements.Child("body"); b != nil {
		return b.Text()
	}
	return ""
}
