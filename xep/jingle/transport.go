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
	// IceUDPNamespace is the XEP-0176 ICE-UDP transport namespace.
	IceUDPNamespace = "urn:xmpp:jingle:transports:ice-udp:1"

	// RawUDPNamespace is the XEP-0177 raw UDP transport namespace.
	RawUDPNamespace = "urn:xmpp:jingle:transports:raw-udp:1"

	// DTLSNamespace is the XEP-0320 DTLS-SRTP fingerprint namespace.
	DTLSNamespace = "urn:xmpp:jingle:apps:dtls:0"

	// WebSocketNamespace qualifies the colibri <web-socket/> transport hint.
	WebSocketNamespace = "http://jitsi.org/protocol/colibri"
)

// CandidateType represents an ICE candidate type.
type CandidateType string

const (
	// HostCandidate is a host candidate.
	HostCandidate CandidateType = "host"

	// PeerReflexiveCandidate is a peer reflexive candidate.
	PeerReflexiveCandidate CandidateType = "prflx"

	// RelayedCandidate is a relayed candidate.
	RelayedCandidate CandidateType = "relay"

	// ServerReflexiveCandidate is a server reflexive candidate.
	ServerReflexiveCandidate CandidateType = "srflx"
)

// Candidate represents a transport <candidate/>.
type Candidate struct {
	Component  int
	Foundation string
	Generation int
	ID         string
	IP         string
	Network    int
	Port       int
	Priority   int64
	Protocol   string
	RelAddr    string
	RelPort    int
	Type       CandidateType
}

// Element returns the XML representation of the candidate.
func (c *Candidate) Element() *xmpp.Element {
	el := xmpp.NewElementName("candidate")
	el.SetAttribute("component", strconv.Itoa(c.Component))
	el.SetAttribute("foundation", c.Foundation)
	el.SetAttribute("generation", strconv.Itoa(c.Generation))
	el.SetAttribute("id", c.ID)
	el.SetAttribute("ip", c.IP)
	setPositiveInt(el, "network", c.Network)
	setPositiveInt(el, "port", c.Port)
	if c.Priority > 0 {
		el.SetAttribute("priority", strconv.FormatInt(c.Priority, 10))
	}
	el.SetAttribute("protocol", c.Protocol)
	el.SetAttribute("rel-addr", c.RelAddr)
	setPositiveInt(el, "rel-port", c.RelPort)
	el.SetAttribute("type", string(c.Type))
	return el
}

// RemoteCandidate represents the ICE <remote-candidate/> selected by the controlling agent.
type RemoteCandidate struct {
	Component int
	IP        string
	Port      int
}

func (rc *RemoteCandidate) element() *xmpp.Element {
	el := xmpp.NewElementName("remote-candidate")
	el.SetAttribute("component", strconv.Itoa(rc.Component))
	el.SetAttribute("ip", rc.IP)
	setPositiveInt(el, "port", rc.Port)
	return el
}

// Fingerprint represents a DTLS-SRTP <fingerprint/>.
type Fingerprint struct {
	Hash     string
	Setup    string
	Required bool
	Value    string
}

func (f *Fingerprint) element() *xmpp.Element {
	el := xmpp.NewElementNamespace("fingerprint", DTLSNamespace)
	el.SetAttribute("hash", f.Hash)
	el.SetAttribute("setup", f.Setup)
	if f.Required {
		el.SetAttribute("required", "true")
	}
	el.SetText(f.Value)
	return el
}

// IceUDPTransport represents an XEP-0176 <transport/>.
type IceUDPTransport struct {
	Ufrag           string
	Pwd             string
	Candidates      []*Candidate
	RemoteCandidate *RemoteCandidate
	RTCPMux         bool
	Fingerprints    []*Fingerprint
	WebSockets      []string
	Extensions      []extension.Extension
}

// Name satisfies extension.Extension interface.
func (t *IceUDPTransport) Name() string { return "transport" }

// Namespace satisfies extension.Extension interface.
func (t *IceUDPTransport) Namespace() string { return IceUDPNamespace }

// Element satisfies extension.Extension interface.
func (t *IceUDPTransport) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("transport", IceUDPNamespace)
	el.SetAttribute("pwd", t.Pwd)
	el.SetAttribute("ufrag", t.Ufrag)
	for _, c := range t.Candidates {
		el.AppendElement(c.Element())
	}
	if t.RemoteCandidate != nil {
		el.AppendElement(t.RemoteCandidate.element())
	}
	if t.RTCPMux {
		el.AppendElement(xmpp.NewElementName("rtcp-mux"))
	}
	for _, f := range t.Fingerprints {
		el.AppendElement(f.element())
	}
	for _, ws := range t.WebSockets {
		wsEl := xmpp.NewElementNamespace("web-socket", WebSocketNamespace)
		wsEl.SetAttribute("url", ws)
		el.AppendElement(wsEl)
	}
	for _, ext := range t.Extensions {
		el.AppendElement(ext.Element())
	}
	return el
}

// RawUDPTransport represents an XEP-0177 <transport/>.
type RawUDPTransport struct {
	Candidates []*Candidate
}

// Name satisfies extension.Extension interface.
func (t *RawUDPTransport) Name() string { return "transport" }

// Namespace satisfies extension.Extension interface.
func (t *RawUDPTransport) Namespace() string { return RawUDPNamespace }

// Element satisfies extension.Extension interface.
func (t *RawUDPTransport) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace("transport", RawUDPNamespace)
	for _, c := range t.Candidates {
		el.AppendElement(c.Element())
	}
	return el
}
