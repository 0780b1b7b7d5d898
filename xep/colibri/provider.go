/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package colibri

import (
	"strconv"
	"strings"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/xep/jingle"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/pkg/errors"
)

const (
	sourceNamespace     = "urn:xmpp:jingle:apps:rtp:ssma:0"
	ridGroupNamespace   = "http://jitsi.org/jitmeet"
	ssrcGroupElement    = "ssrc-group"
	ridGroupElement     = "rid-group"
	sourceElement       = "source"
	rtcpTerminationName = "rtcp-termination-strategy"
)

// Provider parses Colibri conference, shutdown and stats payloads.
type Provider struct {
	m      *provider.Manager
	jingle *jingle.Provider
}

// NewProvider returns a Colibri provider resolving nested extensions against m.
func NewProvider(m *provider.Manager) *Provider {
	return &Provider{m: m, jingle: jingle.NewProvider(m)}
}

// Register binds the Colibri IQ providers to m.
func Register(m *provider.Manager) {
	p := NewProvider(m)
	m.RegisterIQProvider(ConferenceElement, Namespace, p)
	m.RegisterIQProvider(GracefulShutdownElement, Namespace, p)
	m.RegisterIQProvider(ForceShutdownElement, Namespace, p)
	m.RegisterIQProvider(StatsElement, Namespace, p)
}

// ParseIQ satisfies provider.IQProvider interface.
func (p *Provider) ParseIQ(elem xmpp.XElement) (provider.Payload, error) {
	if elem.Namespace() != Namespace {
		return nil, errors.Errorf("colibri: unexpected namespace '%s'", elem.Namespace())
	}
	switch {
	case elem.Name() == ConferenceElement:
		return p.ParseConference(elem)
	case IsValidShutdownElement(elem.Name()):
		return &Shutdown{Graceful: elem.Name() == GracefulShutdownElement}, nil
	case elem.Name() == StatsElement:
		return parseStats(elem), nil
	}
	return nil, errors.Errorf("colibri: unknown element <%s/>", elem.Name())
}

// ParseConference builds a Conference from a <conference/> element.
func (p *Provider) ParseConference(elem xmpp.XElement) (*Conference, error) {
	attrs := elem.Attributes()
	c := &Conference{
		ID:             attrs.Get("id"),
		GID:            attrs.Get("gid"),
		ConferenceName: attrs.Get("name"),
	}
	for _, child := range elem.Elements().All() {
		switch child.Name() {
		case "content":
			ct, err := p.parseContent(child)
			if err != nil {
				return nil, err
			}
			c.Contents = append(c.Contents, ct)

		case "channel-bundle":
			id := child.Attributes().Get("id")
			if len(id) == 0 {
				continue
			}
			cb := &ChannelBundle{ID: id}
			if tr := child.Elements().ChildNamespace("transport", jingle.IceUDPNamespace); tr != nil {
				t, err := p.jingle.ParseIceUDPTransport(tr)
				if err != nil {
					return nil, err
				}
				cb.Transport = t
			}
			if c.AddChannelBundle(cb) != nil {
				log.Warnf("colibri: replacing channel-bundle with duplicated id %s", id)
			}

		case "endpoint":
			ea := child.Attributes()
			if len(ea.Get("id")) == 0 {
				continue
			}
			ep := &Endpoint{ID: ea.Get("id"), StatsID: ea.Get("stats-id"), DisplayName: ea.Get("displayname")}
			if c.AddEndpoint(ep) != nil {
				log.Warnf("colibri: replacing endpoint with duplicated id %s", ep.ID)
			}

		case "recording":
			ra := child.Attributes()
			c.Recording = &Recording{
				State:     RecordingState(ra.Get("state")),
				Token:     ra.Get("token"),
				Directory: ra.Get("directory"),
			}

		case rtcpTerminationName:
			c.RTCPTerminationStrategy = child.Attributes().Get("name")

		case GracefulShutdownElement:
			c.GracefulShutdown = true
		}
	}
	return c, nil
}

func (p *Provider) parseContent(elem xmpp.XElement) (*Content, error) {
	ct := &Content{Name: elem.Attributes().Get("name")}
	for _, child := range elem.Elements().All() {
		switch child.Name() {
		case "channel":
			ch, err := p.parseChannel(child)
			if err != nil {
				return nil, err
			}
			ct.Channels = append(ct.Channels, ch)

		case "sctpconnection":
			sc, err := p.parseSctpConnection(child)
			if err != nil {
				return nil, err
			}
			if sc != nil {
				ct.SctpConnections = append(ct.SctpConnections, sc)
			}
		}
	}
	return ct, nil
}

func (p *Provider) parseChannel(elem xmpp.XElement) (*Channel, error) {
	attrs := elem.Attributes()
	ch := NewChannel(attrs.Get("id"))
	ch.Type = attrs.Get("type")
	ch.Endpoint = attrs.Get("endpoint")
	ch.ChannelBundleID = attrs.Get("channel-bundle-id")
	ch.Direction = attrs.Get("direction")
	ch.Host = attrs.Get("host")
	ch.RTPLevelRelayType = attrs.Get("rtp-level-relay-type")
	ch.SimulcastMode = attrs.Get("simulcast-mode")
	ch.Initiator = parseOptionalBool(attrs.Get("initiator"))

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"expire", &ch.Expire},
		{"rtpport", &ch.RTPPort},
		{"rtcpport", &ch.RTCPPort},
		{"last-n", &ch.LastN},
		{"packet-delay", &ch.PacketDelay},
	} {
		if err := parseSpecified(attrs.Get(f.name), f.dst); err != nil {
			return nil, errors.Wrapf(err, "colibri: invalid channel %s", f.name)
		}
	}

	for _, child := range elem.Elements().All() {
		ns := child.Namespace()
		switch {
		case child.Name() == "payload-type":
			pt, err := jingle.ParsePayloadType(child)
			if err != nil {
				return nil, err
			}
			// opus is always stereo on the bridge
			if strings.EqualFold(pt.Name, "opus") && pt.Channels != 2 {
				pt.Channels = 2
			}
			ch.PayloadTypes = append(ch.PayloadTypes, pt)

		case child.Name() == "rtp-hdrext":
			hdr, err := jingle.ParseRTPHdrExt(child)
			if err != nil {
				return nil, err
			}
			ch.HeaderExtensions = append(ch.HeaderExtensions, hdr)

		case child.Name() == "transport" && ns == jingle.IceUDPNamespace:
			t, err := p.jingle.ParseIceUDPTransport(child)
			if err != nil {
				return nil, err
			}
			ch.Transport = t

		case child.Name() == sourceElement && ns == sourceNamespace,
			child.Name() == ssrcGroupElement && ns == sourceNamespace,
			child.Name() == ridGroupElement && ns == ridGroupNamespace:
			ext, err := p.m.ParseExtension(child)
			if err != nil {
				return nil, err
			}
			ch.Sources = append(ch.Sources, ext)

		case child.Name() == "ssrc":
			ssrc, err := parseSSRC(child.Text())
			if err != nil {
				return nil, err
			}
			ch.SSRCs = append(ch.SSRCs, ssrc)

		case child.Name() == "relay":
			if ch.IsOcto() {
				ch.Relays = append(ch.Relays, child.Attributes().Get("id"))
			}

		default:
			log.Warnf("colibri: ignoring channel child <%s xmlns='%s'>", child.Name(), ns)
		}
	}
	return ch, nil
}

func (p *Provider) parseSctpConnection(elem xmpp.XElement) (*SctpConnection, error) {
	attrs := elem.Attributes()
	id, endpoint := attrs.Get("id"), attrs.Get("endpoint")
	if len(id) == 0 && len(endpoint) == 0 {
		return nil, nil
	}
	sc := NewSctpConnection(id, endpoint)
	sc.ChannelBundleID = attrs.Get("channel-bundle-id")
	sc.Initiator = parseOptionalBool(attrs.Get("initiator"))
	if err := parseSpecified(attrs.Get("port"), &sc.Port); err != nil {
		return nil, errors.Wrap(err, "colibri: invalid sctpconnection port")
	}
	if err := parseSpecified(attrs.Get("expire"), &sc.Expire); err != nil {
		return nil, errors.Wrap(err, "colibri: invalid sctpconnection expire")
	}
	if tr := elem.Elements().ChildNamespace("transport", jingle.IceUDPNamespace); tr != nil {
		t, err := p.jingle.ParseIceUDPTransport(tr)
		if err != nil {
			return nil, err
		}
		sc.Transport = t
	}
	return sc, nil
}

func parseStats(elem xmpp.XElement) *Stats {
	s := &Stats{}
	for _, st := range elem.Elements().Children("stat") {
		s.Stats = append(s.Stats, Stat{Name: st.Attributes().Get("name"), Value: st.Attributes().Get("value")})
	}
	return s
}

// parseSSRC accepts both the signed and the unsigned 32-bit representation.
func parseSSRC(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, errors.Wrap(err, "colibri: invalid ssrc")
		}
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "colibri: invalid ssrc")
	}
	return uint32(v), nil
}

func parseSpecified(s string, dst *int) error {
	if len(s) == 0 {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseOptionalBool(s string) *bool {
	if len(s) == 0 {
		return nil
	}
	b := s == "true" || s == "1"
	return &b
}
