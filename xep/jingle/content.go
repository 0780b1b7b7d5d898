/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xmpp"
)

const (
	// CreatorInitiator marks content generated by the session initiator.
	CreatorInitiator = "initiator"

	// CreatorResponder marks content generated by the session responder.
	CreatorResponder = "responder"
)

const (
	// SendersBoth means both parties send media.
	SendersBoth = "both"

	// SendersInitiator means only the initiator sends media.
	SendersInitiator = "initiator"

	// SendersNone means no party sends media.
	SendersNone = "none"

	// SendersResponder means only the responder sends media.
	SendersResponder = "responder"
)

// Content represents a Jingle <content/> definition.
type Content struct {
	Creator     string
	Disposition string
	Name        string
	Senders     string
	Description *RTPDescription
	Transports  []extension.Extension
	Extensions  []extension.Extension
}

// NewContent returns a content definition.
func NewContent(creator, name string) *Content {
	return &Content{Creator: creator, Name: name}
}

// IceUDPTransport returns the ICE-UDP transport of the content, or nil.
func (c *Content) IceUDPTransport() *IceUDPTransport {
	for _, t := range c.Transports {
		if ice, ok := t.(*IceUDPTransport); ok {
			return ice
		}
	}
	return nil
}

// RawUDPTransport returns the raw UDP transport of the content, or nil.
func (c *Content) RawUDPTransport() *RawUDPTransport {
	for _, t := range c.Transports {
		if raw, ok := t.(*RawUDPTransport); ok {
			return raw
		}
	}
	return nil
}

// Element returns the XML representation of the content.
func (c *Content) Element() *xmpp.Element {
	el := xmpp.NewElementName("content")
	el.SetAttribute("creator", c.Creator)
	el.SetAttribute("disposition", c.Disposition)
	el.SetAttribute("name", c.Name)
	el.SetAttribute("senders", c.Senders)
	if c.Description != nil {
		el.AppendElement(c.Description.Element())
	}
	for _, t := range c.Transports {
		el.AppendElement(t.Element())
	}
	for _, ext := range c.Extensions {
		el.AppendElement(ext.Element())
	}
	return el
}
