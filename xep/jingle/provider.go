/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"strconv"

	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

const (
	// TransferNamespace is the XEP-0251 session transfer namespace.
	TransferNamespace = "urn:xmpp:jingle:transfer:0"

	// CoinNamespace is the XEP-0298 conference information namespace.
	CoinNamespace = "urn:xmpp:coin:1"

	// GroupingNamespace is the XEP-0338 grouping namespace.
	GroupingNamespace = "urn:xmpp:jingle:apps:grouping:0"

	// ConferenceDescriptionNamespace qualifies the <callid/> element.
	ConferenceDescriptionNamespace = "http://jitsi.org/protocol/condesc"
)

// Provider parses <jingle/> IQ payloads.
type Provider struct {
	m *provider.Manager
}

// NewProvider returns a Jingle provider resolving nested extensions against m.
func NewProvider(m *provider.Manager) *Provider {
	return &Provider{m: m}
}

// Register binds the Jingle IQ provider to m.
func Register(m *provider.Manager) {
	m.RegisterIQProvider(ElementName, Namespace, NewProvider(m))
}

// ParseIQ satisfies provider.IQProvider interface.
func (p *Provider) ParseIQ(elem xmpp.XElement) (provider.Payload, error) {
	return p.Parse(elem)
}

// Parse builds a Jingle payload from a <jingle/> element.
func (p *Provider) Parse(elem xmpp.XElement) (*Jingle, error) {
	if elem.Name() != ElementName || elem.Namespace() != Namespace {
		return nil, errors.Errorf("jingle: unexpected element <%s xmlns='%s'>", elem.Name(), elem.Namespace())
	}
	attrs := elem.Attributes()
	action := Action(attrs.Get("action"))
	if !action.IsValid() {
		return nil, errors.Errorf("jingle: invalid action '%s'", action)
	}
	sid := attrs.Get("sid")
	if len(sid) == 0 {
		return nil, errors.New("jingle: missing sid attribute")
	}
	j := New(action, sid)

	var err error
	if initiator := attrs.Get("initiator"); len(initiator) > 0 {
		if j.Initiator, err = jid.NewWithString(initiator, false); err != nil {
			return nil, errors.Wrap(err, "jingle: invalid initiator")
		}
	}
	if responder := attrs.Get("responder"); len(responder) > 0 {
		if j.Responder, err = jid.NewWithString(responder, false); err != nil {
			return nil, errors.Wrap(err, "jingle: invalid responder")
		}
	}

	for _, child := range elem.Elements().All() {
		ns := namespaceOf(child, Namespace)
		switch {
		case ns == SessionInfoNamespace:
			infoType := SessionInfoType(child.Name())
			if !infoType.IsValid() {
				log.Warnf("jingle: ignoring unknown session-info <%s/> in session %s", child.Name(), sid)
				continue
			}
			j.SessionInfo = &SessionInfoElement{Type: infoType}
			if infoType == MuteInfo || infoType == UnmuteInfo {
				j.SessionInfo.Name = child.Attributes().Get("name")
			}

		case child.Name() == "content" && ns == Namespace:
			c, err := p.parseContent(child)
			if err != nil {
				return nil, err
			}
			j.AddContent(c)

		case child.Name() == "reason" && ns == Namespace:
			j.Reason = p.parseReason(child)

		case child.Name() == "transfer" && ns == TransferNamespace,
			child.Name() == "conference-info",
			child.Name() == "callid",
			child.Name() == "group":
			ext, err := p.m.ParseChildExtension(child, Namespace)
			if err != nil {
				return nil, err
			}
			j.AddExtension(ext)

		default:
			log.Warnf("jingle: unknown jingle child <%s xmlns='%s'>", child.Name(), ns)
		}
	}
	return j, nil
}

func (p *Provider) parseContent(elem xmpp.XElement) (*Content, error) {
	attrs := elem.Attributes()
	c := &Content{
		Creator:     attrs.Get("creator"),
		Disposition: attrs.Get("disposition"),
		Name:        attrs.Get("name"),
		Senders:     attrs.Get("senders"),
	}
	if len(c.Name) == 0 {
		return nil, errors.New("jingle: content name is required")
	}
	for _, child := range elem.Elements().All() {
		ns := namespaceOf(child, Namespace)
		switch {
		case child.Name() == "description" && ns == RTPNamespace:
			d, err := p.parseDescription(child)
			if err != nil {
				return nil, err
			}
			c.Description = d

		case child.Name() == "transport" && ns == IceUDPNamespace:
			t, err := p.ParseIceUDPTransport(child)
			if err != nil {
				return nil, err
			}
			c.Transports = append(c.Transports, t)

		case child.Name() == "transport" && ns == RawUDPNamespace:
			c.Transports = append(c.Transports, &RawUDPTransport{Candidates: parseCandidates(child)})

		default:
			ext, err := p.m.ParseChildExtension(child, Namespace)
			if err != nil {
				return nil, err
			}
			c.Extensions = append(c.Extensions, ext)
		}
	}
	return c, nil
}

func (p *Provider) parseDescription(elem xmpp.XElement) (*RTPDescription, error) {
	d := &RTPDescription{
		Media: elem.Attributes().Get("media"),
		SSRC:  elem.Attributes().Get("ssrc"),
	}
	for _, child := range elem.Elements().All() {
		ns := namespaceOf(child, RTPNamespace)
		switch {
		case child.Name() == "payload-type" && ns == RTPNamespace:
			pt, err := ParsePayloadType(child)
			if err != nil {
				return nil, err
			}
			d.PayloadTypes = append(d.PayloadTypes, pt)

		case child.Name() == "rtp-hdrext" && ns == RTPHdrExtNamespace:
			hdr, err := ParseRTPHdrExt(child)
			if err != nil {
				return nil, err
			}
			d.HeaderExtensions = append(d.HeaderExtensions, hdr)

		default:
			ext, err := p.m.ParseChildExtension(child, RTPNamespace)
			if err != nil {
				return nil, err
			}
			d.Extensions = append(d.Extensions, ext)
		}
	}
	return d, nil
}

// ParsePayloadType parses an RTP <payload-type/> element.
func ParsePayloadType(elem xmpp.XElement) (*PayloadType, error) {
	attrs := elem.Attributes()
	id, err := strconv.Atoi(attrs.Get("id"))
	if err != nil {
		return nil, errors.Wrap(err, "jingle: invalid payload-type id")
	}
	pt := &PayloadType{
		ID:        id,
		Name:      attrs.Get("name"),
		ClockRate: extension.IntAttribute(elem, "clockrate", 0),
		Channels:  extension.IntAttribute(elem, "channels", 0),
		PTime:     extension.IntAttribute(elem, "ptime", 0),
		MaxPTime:  extension.IntAttribute(elem, "maxptime", 0),
	}
	for _, child := range elem.Elements().All() {
		switch child.Name() {
		case "parameter":
			pt.Parameters = append(pt.Parameters, parseParameter(child))
		case "rtcp-fb":
			pt.RTCPFeedback = append(pt.RTCPFeedback, RTCPFeedback{
				Type:    child.Attributes().Get("type"),
				Subtype: child.Attributes().Get("subtype"),
			})
		}
	}
	return pt, nil
}

// ParseRTPHdrExt parses an <rtp-hdrext/> element.
func ParseRTPHdrExt(elem xmpp.XElement) (*RTPHdrExt, error) {
	id, err := strconv.Atoi(elem.Attributes().Get("id"))
	if err != nil {
		return nil, errors.Wrap(err, "jingle: invalid rtp-hdrext id")
	}
	hdr := &RTPHdrExt{
		ID:      id,
		URI:     elem.Attributes().Get("uri"),
		Senders: elem.Attributes().Get("senders"),
	}
	for _, child := range elem.Elements().Children("parameter") {
		hdr.Parameters = append(hdr.Parameters, parseParameter(child))
	}
	return hdr, nil
}

func parseParameter(elem xmpp.XElement) Parameter {
	return Parameter{
		Name:  elem.Attributes().Get("name"),
		Value: elem.Attributes().Get("value"),
	}
}

// ParseIceUDPTransport parses an ICE-UDP <transport/> element.
func (p *Provider) ParseIceUDPTransport(elem xmpp.XElement) (*IceUDPTransport, error) {
	t := &IceUDPTransport{
		Ufrag:      elem.Attributes().Get("ufrag"),
		Pwd:        elem.Attributes().Get("pwd"),
		Candidates: parseCandidates(elem),
	}
	for _, child := range elem.Elements().All() {
		ns := namespaceOf(child, IceUDPNamespace)
		switch {
		case child.Name() == "candidate":
			continue

		case child.Name() == "remote-candidate":
			t.RemoteCandidate = &RemoteCandidate{
				Component: extension.IntAttribute(child, "component", 0),
				IP:        child.Attributes().Get("ip"),
				Port:      extension.IntAttribute(child, "port", 0),
			}

		case child.Name() == "rtcp-mux":
			t.RTCPMux = true

		case child.Name() == "fingerprint" && ns == DTLSNamespace:
			t.Fingerprints = append(t.Fingerprints, &Fingerprint{
				Hash:     child.Attributes().Get("hash"),
				Setup:    child.Attributes().Get("setup"),
				Required: extension.BoolAttribute(child, "required"),
				Value:    child.Text(),
			})

		case child.Name() == "web-socket":
			t.WebSockets = append(t.WebSockets, child.Attributes().Get("url"))

		default:
			ext, err := p.m.ParseChildExtension(child, IceUDPNamespace)
			if err != nil {
				return nil, err
			}
			t.Extensions = append(t.Extensions, ext)
		}
	}
	return t, nil
}

func parseCandidates(elem xmpp.XElement) []*Candidate {
	var candidates []*Candidate
	for _, child := range elem.Elements().Children("candidate") {
		attrs := child.Attributes()
		priority, _ := strconv.ParseInt(attrs.Get("priority"), 10, 64)
		candidates = append(candidates, &Candidate{
			Component:  extension.IntAttribute(child, "component", 0),
			Foundation: attrs.Get("foundation"),
			Generation: extension.IntAttribute(child, "generation", 0),
			ID:         attrs.Get("id"),
			IP:         attrs.Get("ip"),
			Network:    extension.IntAttribute(child, "network", 0),
			Port:       extension.IntAttribute(child, "port", 0),
			Priority:   priority,
			Protocol:   attrs.Get("protocol"),
			RelAddr:    attrs.Get("rel-addr"),
			RelPort:    extension.IntAttribute(child, "rel-port", 0),
			Type:       CandidateType(attrs.Get("type")),
		})
	}
	return candidates
}

func (p *Provider) parseReason(elem xmpp.XElement) *Reason {
	r := &Reason{}
	for _, child := range elem.Elements().All() {
		ns := namespaceOf(child, Namespace)
		switch {
		case child.Name() == "text":
			r.Text = child.Text()

		case ns == Namespace && ReasonCondition(child.Name()).IsValid():
			r.Condition = ReasonCondition(child.Name())

		default:
			ext, err := p.m.ParseChildExtension(child, Namespace)
			if err != nil {
				log.Warnf("jingle: dropping reason extension <%s/>: %v", child.Name(), err)
				continue
			}
			r.Extension = ext
		}
	}
	return r
}

func namespaceOf(elem xmpp.XElement, parentNS string) string {
	if ns := elem.Namespace(); len(ns) > 0 {
		return ns
	}
	return parentNS
}
