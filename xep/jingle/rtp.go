/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"strconv"

	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xmpp"
)

const (
	// RTPNamespace is the XEP-0167 RTP application namespace.
	RTPNamespace = "urn:xmpp:jingle:apps:rtp:1"

	// RTCPFeedbackNamespace is the XEP-0293 namespace.
	RTCPFeedbackNamespace = "urn:xmpp:jingle:apps:rtp:rtcp-fb:0"

	// RTPHdrExtNamespace is the XEP-0294 namespace.
	RTPHdrExtNamespace = "urn:xmpp:jingle:apps:rtp:rtp-hdrext:0"

	// ZRTPNamespace qualifies the <zrtp-hash/> element.
	ZRTPNamespace = "urn:xmpp:jingle:apps:rtp:zrtp:1"
)

// RTPDescription represents an RTP session <description/>.
// Encryption, crypto, sources and bandwidth elements are kept in Extensions.
type RTPDescription struct {
	Media            string
	SSRC             string
	PayloadTypes     []*PayloadType
	HeaderExtensions []*RTPHdrExt
	Extensions       []extension.Extension
}

// NewRTPDescription returns an RTP description for the given media type.
func NewRTPDescription(media string) *RTPDescription {
	return &RTPDescription{Media: media}
}

// Name satisfies extension.Extension interface.
func (d *RTPDescription) Name() string { return "description" }

// Namespace satisfies extension.Extension interface.
func (d *RTPDescription) Namespace() string { return RTPNamespace }

// PayloadType returns the payload type identified by id, or nil.
func (d *RTPDescription) PayloadType(id int) *PayloadType {
	for _, pt := range d.PayloadTypes {
		if pt.ID == id {
			return pt
		}
	}
	return nil
}

// Element satisfies extension.Extension interface.
func (d *RTPDescription) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("description", RTPNamespace)
	el.SetAttribute("media", d.Media)
	el.SetAttribute("ssrc", d.SSRC)
	for _, pt := range d.PayloadTypes {
		el.AppendElement(pt.Element())
	}
	for _, hdr := range d.HeaderExtensions {
		el.AppendElement(hdr.Element())
	}
	for _, ext := range d.Extensions {
		el.AppendElement(ext.Element())
	}
	return el
}

// Parameter represents a payload type or header extension <parameter/>.
type Parameter struct {
	Name  string
	Value string
}

func (p Parameter) element() *xmpp.Element {
	el := xmpp.NewElementName("parameter")
	el.SetAttribute("name", p.Name)
	el.SetAttribute("value", p.Value)
	return el
}

// RTCPFeedback represents an XEP-0293 <rtcp-fb/> element.
type RTCPFeedback struct {
	Type    string
	Subtype string
}

func (fb RTCPFeedback) element() *xmpp.Element {
	el := xmpp.NewElementNamespace("rtcp-fb", RTCPFeedbackNamespace)
	el.SetAttribute("type", fb.Type)
	el.SetAttribute("subtype", fb.Subtype)
	return el
}

// PayloadType represents an RTP <payload-type/>.
// Zero valued numeric attributes other than id are omitted.
type PayloadType struct {
	ID           int
	Name         string
	ClockRate    int
	Channels     int
	PTime        int
	MaxPTime     int
	Parameters   []Parameter
	RTCPFeedback []RTCPFeedback
}

// Parameter returns a parameter value, or an empty string.
func (pt *PayloadType) Parameter(name string) string {
	for _, p := range pt.Parameters {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// Element returns the XML representation of the payload type.
func (pt *PayloadType) Element() *xmpp.Element {
	el := xmpp.NewElementName("payload-type")
	el.SetAttribute("id", strconv.Itoa(pt.ID))
	el.SetAttribute("name", pt.Name)
	setPositiveInt(el, "clockrate", pt.ClockRate)
	setPositiveInt(el, "channels", pt.Channels)
	setPositiveInt(el, "ptime", pt.PTime)
	setPositiveInt(el, "maxptime", pt.MaxPTime)
	for _, p := range pt.Parameters {
		el.AppendElement(p.element())
	}
	for _, fb := range pt.RTCPFeedback {
		el.AppendElement(fb.element())
	}
	return el
}

// RTPHdrExt represents an XEP-0294 <rtp-hdrext/> element.
type RTPHdrExt struct {
	ID         int
	URI        string
	Senders    string
	Parameters []Parameter
}

// Element returns the XML representation of the header extension.
func (h *RTPHdrExt) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("rtp-hdrext", RTPHdrExtNamespace)
	el.SetAttribute("id", strconv.Itoa(h.ID))
	el.SetAttribute("uri", h.URI)
	el.SetAttribute("senders", h.Senders)
	for _, p := range h.Parameters {
		el.AppendElement(p.element())
	}
	return el
}

func setPositiveInt(el *xmpp.Element, name string, v int) {
	if v > 0 {
		el.SetAttribute(name, strconv.Itoa(v))
	}
}
