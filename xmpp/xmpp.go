/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

// Package xmpp implements the XML element model used on the wire:
// generic elements, IQ, message and presence stanzas, stanza errors
// and a streaming parser.
package xmpp

import (
	"fmt"
	"io"

	"github.com/atalk/xmppcore/pool"
	"github.com/atalk/xmppcore/xmpp/jid"
)

// ErrorType is the 'type' attribute value shared by every error stanza.
const ErrorType = "error"

var bufPool = pool.NewBufferPool()

// XElement is the read-only view of an XML node.
type XElement interface {
	fmt.Stringer

	Name() string
	Text() string
	Attributes() AttributeSet
	Elements() ElementSet

	// shortcuts to well known attributes
	ID() string
	Namespace() string
	Language() string
	From() string
	To() string
	Type() string

	IsStanza() bool
	IsError() bool
	Error() XElement

	// ToXML serializes the node. When includeClosing is false
	// the closing tag is omitted, as for a stream header.
	ToXML(w io.Writer, includeClosing bool)
}

// Stanza is an XElement whose addresses have already been validated.
type Stanza interface {
	XElement
	FromJID() *jid.JID
	ToJID() *jid.JID
}
