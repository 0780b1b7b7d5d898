/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package colibri

import (
	"strconv"

	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xep/jingle"
	"github.com/atalk/xmppcore/xmpp"
)

// Namespace is the Jitsi Colibri namespace.
const Namespace = "http://jitsi.org/protocol/colibri"

// ConferenceElement is the name of the conference payload element.
const ConferenceElement = "conference"

// NotSpecified marks an unset numeric channel attribute.
const NotSpecified = -1

// Channel directions.
const (
	SendRecv = "sendrecv"
	SendOnly = "sendonly"
	RecvOnly = "recvonly"
	Inactive = "inactive"
)

// OctoChannelType is the type attribute value of relay (octo) channels.
const OctoChannelType = "octo"

// Conference represents a Colibri <conference/> IQ payload.
type Conference struct {
	ID                      string
	GID                     string
	ConferenceName          string
	Contents                []*Content
	ChannelBundles          []*ChannelBundle
	Endpoints               []*Endpoint
	Recording               *Recording
	RTCPTerminationStrategy string
	GracefulShutdown        bool
}

// NewConference returns an empty conference identified by id.
func NewConference(id string) *Conference {
	return &Conference{ID: id}
}

// Name satisfies provider.Payload interface.
func (c *Conference) Name() string { return ConferenceElement }

// Namespace satisfies provider.Payload interface.
func (c *Conference) Namespace() string { return Namespace }

// Content returns the named content, or nil.
func (c *Conference) Content(name string) *Content {
	for _, ct := range c.Contents {
		if ct.Name == name {
			return ct
		}
	}
	return nil
}

// GetOrCreateContent returns the named content, adding it when missing.
func (c *Conference) GetOrCreateContent(name string) *Content {
	if ct := c.Content(name); ct != nil {
		return ct
	}
	ct := &Content{Name: name}
	c.Contents = append(c.Contents, ct)
	return ct
}

// AddChannelBundle adds b replacing any bundle with the same id.
// It returns the replaced bundle, if any.
func (c *Conference) AddChannelBundle(b *ChannelBundle) *ChannelBundle {
	for i, cb := range c.ChannelBundles {
		if cb.ID == b.ID {
			c.ChannelBundles[i] = b
			return cb
		}
	}
	c.ChannelBundles = append(c.ChannelBundles, b)
	return nil
}

// AddEndpoint adds ep replacing any endpoint with the same id.
// It returns the replaced endpoint, if any.
func (c *Conference) AddEndpoint(ep *Endpoint) *Endpoint {
	for i, e := range c.Endpoints {
		if e.ID == ep.ID {
			c.Endpoints[i] = ep
			return e
		}
	}
	c.Endpoints = append(c.Endpoints, ep)
	return nil
}

// Element satisfies provider.Payload interface.
func (c *Conference) Element() *xmpp.Element {
	el := xmpp.NewElementNamespace(ConferenceElement, Namespace)
	el.SetAttribute("id", c.ID)
	el.SetAttribute("gid", c.GID)
	el.SetAttribute("name", c.ConferenceName)
	for _, ct := range c.Contents {
		el.AppendElement(ct.Element())
	}
	for _, cb := range c.ChannelBundles {
		el.AppendElement(cb.Element())
	}
	for _, ep := range c.Endpoints {
		el.AppendElement(ep.Element())
	}
	if c.Recording != nil {
		el.AppendElement(c.Recording.Element())
	}
	if len(c.RTCPTerminationStrategy) > 0 {
		rts := xmpp.NewElementName("rtcp-termination-strategy")
		rts.SetAttribute("name", c.RTCPTerminationStrategy)
		el.AppendElement(rts)
	}
	if c.GracefulShutdown {
		el.AppendElement(xmpp.NewElementNamespace("graceful-shutdown", Namespace))
	}
	return el
}

// Content groups the channels and SCTP connections of one media type.
type Content struct {
	Name            string
	Channels        []*Channel
	SctpConnections []*SctpConnection
}

// Channel returns the channel identified by id, or nil.
func (c *Content) Channel(id string) *Channel {
	for _, ch := range c.Channels {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// Element returns the XML representation of the content.
func (c *Content) Element() *xmpp.Element {
	el := xmpp.NewElementName("content")
	el.SetAttribute("name", c.Name)
	for _, ch := range c.Channels {
		el.AppendElement(ch.Element())
	}
	for _, sc := range c.SctpConnections {
		el.AppendElement(sc.Element())
	}
	return el
}

// Channel represents a Colibri RTP <channel/>.
type Channel struct {
	ID                string
	Type              string
	Endpoint          string
	ChannelBundleID   string
	Expire            int
	Initiator         *bool
	Direction         string
	Host              string
	RTPPort           int
	RTCPPort          int
	LastN             int
	PacketDelay       int
	RTPLevelRelayType string
	SimulcastMode     string
	SSRCs             []uint32
	Relays            []string
	PayloadTypes      []*jingle.PayloadType
	HeaderExtensions  []*jingle.RTPHdrExt
	Transport         *jingle.IceUDPTransport
	Sources           []extension.Extension
}

// NewChannel returns a channel with every numeric attribute unset.
func NewChannel(id string) *Channel {
	return &Channel{
		ID:          id,
		Expire:      NotSpecified,
		RTPPort:     NotSpecified,
		RTCPPort:    NotSpecified,
		LastN:       NotSpecified,
		PacketDelay: NotSpecified,
	}
}

// IsOcto tells whether the channel relays media between bridges.
func (ch *Channel) IsOcto() bool { return ch.Type == OctoChannelType }

// Element returns the XML representation of the channel.
func (ch *Channel) Element() *xmpp.Element {
	el := xmpp.NewElementName("channel")
	el.SetAttribute("id", ch.ID)
	el.SetAttribute("type", ch.Type)
	el.SetAttribute("endpoint", ch.Endpoint)
	el.SetAttribute("channel-bundle-id", ch.ChannelBundleID)
	setSpecified(el, "expire", ch.Expire)
	if ch.Initiator != nil {
		el.SetAttribute("initiator", strconv.FormatBool(*ch.Initiator))
	}
	el.SetAttribute("direction", ch.Direction)
	el.SetAttribute("host", ch.Host)
	setSpecified(el, "rtpport", ch.RTPPort)
	setSpecified(el, "rtcpport", ch.RTCPPort)
	setSpecified(el, "last-n", ch.LastN)
	setSpecified(el, "packet-delay", ch.PacketDelay)
	el.SetAttribute("rtp-level-relay-type", ch.RTPLevelRelayType)
	el.SetAttribute("simulcast-mode", ch.SimulcastMode)

	for _, pt := range ch.PayloadTypes {
		el.AppendElement(pt.Element())
	}
	for _, hdr := range ch.HeaderExtensions {
		el.AppendElement(hdr.Element())
	}
	if ch.Transport != nil {
		el.AppendElement(ch.Transport.Element())
	}
	for _, src := range ch.Sources {
		el.AppendElement(src.Element())
	}
	for _, ssrc := range ch.SSRCs {
		ssrcEl := xmpp.NewElementName("ssrc")
		ssrcEl.SetText(strconv.FormatUint(uint64(ssrc), 10))
		el.AppendElement(ssrcEl)
	}
	for _, relay := range ch.Relays {
		relayEl := xmpp.NewElementName("relay")
		relayEl.SetAttribute("id", relay)
		el.AppendElement(relayEl)
	}
	return el
}

// SctpConnection represents a Colibri <sctpconnection/>.
type SctpConnection struct {
	ID              string
	Endpoint        string
	ChannelBundleID string
	Port            int
	Expire          int
	Initiator       *bool
	Transport       *jingle.IceUDPTransport
}

// NewSctpConnection returns an SCTP connection with every numeric attribute unset.
func NewSctpConnection(id, endpoint string) *SctpConnection {
	return &SctpConnection{ID: id, Endpoint: endpoint, Port: NotSpecified, Expire: NotSpecified}
}

// Element returns the XML representation of the SCTP connection.
func (sc *SctpConnection) Element() *xmpp.Element {
	el := xmpp.NewElementName("sctpconnection")
	el.SetAttribute("id", sc.ID)
	el.SetAttribute("endpoint", sc.Endpoint)
	el.SetAttribute("channel-bundle-id", sc.ChannelBundleID)
	setSpecified(el, "port", sc.Port)
	setSpecified(el, "expire", sc.Expire)
	if sc.Initiator != nil {
		el.SetAttribute("initiator", strconv.FormatBool(*sc.Initiator))
	}
	if sc.Transport != nil {
		el.AppendElement(sc.Transport.Element())
	}
	return el
}

// ChannelBundle shares one transport among several channels.
type ChannelBundle struct {
	ID        string
	Transport *jingle.IceUDPTransport
}

// Element returns the XML representation of the bundle.
func (cb *ChannelBundle) Element() *xmpp.Element {
	el := xmpp.NewElementName("channel-bundle")
	el.SetAttribute("id", cb.ID)
	if cb.Transport != nil {
		el.AppendElement(cb.Transport.Element())
	}
	return el
}

// Endpoint describes a conference participant.
type Endpoint struct {
	ID          string
	StatsID     string
	DisplayName string
}

// Element returns the XML representation of the endpoint.
func (ep *Endpoint) Element() *xmpp.Element {
	el := xmpp.NewElementName("endpoint")
	el.SetAttribute("id", ep.ID)
	el.SetAttribute("stats-id", ep.StatsID)
	el.SetAttribute("displayname", ep.DisplayName)
	return el
}

// RecordingState is the state of a conference recording.
type RecordingState string

// Recording states.
const (
	RecordingOn      RecordingState = "on"
	RecordingOff     RecordingState = "off"
	RecordingPending RecordingState = "pending"
)

// Recording represents the conference <recording/> element.
type Recording struct {
	State     RecordingState
	Token     string
	Directory string
}

// Element returns the XML representation of the recording.
func (r *Recording) Element() *xmpp.Element {
	el := xmpp.NewElementName("recording")
	el.SetAttribute("state", string(r.State))
	el.SetAttribute("token", r.Token)
	el.SetAttribute("directory", r.Directory)
	return el
}

func setSpecified(el *xmpp.Element, name string, v int) {
	if v != NotSpecified {
		el.SetAttribute(name, strconv.Itoa(v))
	}
}
