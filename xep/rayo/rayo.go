/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package rayo

import (
	"github.com/atalk/xmppcore/xmpp"
)

// Namespace is the XEP-0327 Rayo namespace.
const Namespace = "urn:xmpp:rayo:1"

// Header represents a Rayo <header name value/> element.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of call headers.
type Headers []Header

// Header returns the value of the named header, or an empty string.
func (hs Headers) Header(name string) string {
	for _, h := range hs {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// SetHeader sets the value of the named header, appending it when missing.
func (hs *Headers) SetHeader(name, value string) {
	for i := range *hs {
		if (*hs)[i].Name == name {
			(*hs)[i].Value = value
			return
		}
	}
	*hs = append(*hs, Header{Name: name, Value: value})
}

func (hs Headers) appendTo(el *xmpp.Element) {
	for _, h := range hs {
		hel := xmpp.NewElementName("header")
		hel.SetAttribute("name", h.Name)
		hel.SetAttribute("value", h.Value)
		el.AppendElement(hel)
	}
}

// Dial represents a <dial/> command.
type Dial struct {
	From string
	To   string
	Headers
}

// Name satisfies provider.Payload interface.
func (d *Dial) Name() string { return "dial" }

// Namespace satisfies provider.Payload interface.
func (d *Dial) Namespace() string { return Namespace }

// Element satisfies provider.Payload interface.
func (d *Dial) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("dial", Namespace)
	el.SetAttribute("from", d.From)
	el.SetAttribute("to", d.To)
	d.Headers.appendTo(el)
	return el
}

// Ref represents the <ref/> answer to a dial command.
type Ref struct {
	URI string
	Headers
}

// Name satisfies provider.Payload interface.
func (r *Ref) Name() string { return "ref" }

// Namespace satisfies provider.Payload interface.
func (r *Ref) Namespace() string { return Namespace }

// Element satisfies provider.Payload interface.
func (r *Ref) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("ref", Namespace)
	el.SetAttribute("uri", r.URI)
	r.Headers.appendTo(el)
	return el
}

// Hangup represents a <hangup/> command.
type Hangup struct {
	Headers
}

// Name satisfies provider.Payload interface.
func (h *Hangup) Name() string { return "hangup" }

// Namespace satisfies provider.Payload interface.
func (h *Hangup) Namespace() string { return Namespace }

// Element satisfies provider.Payload interface.
func (h *Hangup) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("hangup", Namespace)
	h.Headers.appendTo(el)
	return el
}

// EndReason represents the reason a call ended.
type EndReason string

// End reasons defined by XEP-0327.
const (
	HangupReason        EndReason = "hangup"
	TimeoutReason       EndReason = "timeout"
	BusyReason          EndReason = "busy"
	RejectedReason      EndReason = "rejected"
	ErrorReason         EndReason = "error"
	HangupCommandReason EndReason = "hangup-command"
)

// End represents the <end/> presence extension announcing a call ended.
type End struct {
	Reason EndReason
	Headers
}

// Name satisfies extension.Extension interface.
func (e *End) Name() string { return "end" }

// Namespace satisfies extension.Extension interface.
func (e *End) Namespace() string { return Namespace }

// Element satisfies extension.Extension interface.
func (e *End) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("end", Namespace)
	if len(e.Reason) > 0 {
		el.AppendElement(xmpp.NewElementName(string(e.Reason)))
	}
	e.Headers.appendTo(el)
	return el
}
