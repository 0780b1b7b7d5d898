/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package rayo

import (
	"strings"
	"testing"

	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func parseElement(t *testing.T, src string) xmpp.XElement {
	p := xmpp.NewParser(strings.NewReader(src), xmpp.DefaultMode, 0)
	elem, err := p.ParseElement()
	require.Nil(t, err)
	return elem
}

func TestRayo_ParseDial(t *testing.T) {
	m := provider.NewManager()
	Register(m)

	iq, err := m.ParseIQ(parseElement(t, `<iq id="d1" type="set" from="focus@atalk.org/f" to="rayo.atalk.org"><dial xmlns="urn:xmpp:rayo:1" from="sip:alice@atalk.org" to="sip:+15551234@atalk.org"><header name="JvbRoomName" value="room1"/></dial></iq>`))
	require.Nil(t, err)
	dial, ok := iq.Payload.(*Dial)
	require.True(t, ok)
	require.Equal(t, "sip:alice@atalk.org", dial.From)
	require.Equal(t, "sip:+15551234@atalk.org", dial.To)
	require.Equal(t, "room1", dial.Header("JvbRoomName"))
	require.Equal(t, "", dial.Header("missing"))

	_, err = m.ParseIQ(parseElement(t, `<iq id="d2" type="set"><dial xmlns="urn:xmpp:rayo:1" from="sip:alice@atalk.org"/></iq>`))
	require.True(t, errors.Is(err, provider.ErrParse))
}

func TestRayo_ParseRefAndHangup(t *testing.T) {
	m := provider.NewManager()
	Register(m)

	iq, err := m.ParseIQ(parseElement(t, `<iq id="r1" type="result"><ref xmlns="urn:xmpp:rayo:1" uri="xmpp:call1@rayo.atalk.org"/></iq>`))
	require.Nil(t, err)
	require.Equal(t, "xmpp:call1@rayo.atalk.org", iq.Payload.(*Ref).URI)

	_, err = m.ParseIQ(parseElement(t, `<iq id="r2" type="result"><ref xmlns="urn:xmpp:rayo:1"/></iq>`))
	require.True(t, errors.Is(err, provider.ErrParse))

	iq, err = m.ParseIQ(parseElement(t, `<iq id="h1" type="set"><hangup xmlns="urn:xmpp:rayo:1"/></iq>`))
	require.Nil(t, err)
	_, ok := iq.Payload.(*Hangup)
	require.True(t, ok)
}

func TestRayo_Builders(t *testing.T) {
	focus := jid.MustParse("focus@atalk.org/f")
	server := jid.MustParse("rayo.atalk.org")

	dial := NewDial(focus, server, "sip:alice@atalk.org", "sip:bob@atalk.org")
	dial.Payload.(*Dial).SetHeader("JvbRoomName", "room1")
	dial.Payload.(*Dial).SetHeader("JvbRoomName", "room2")
	require.Equal(t, `<dial xmlns="urn:xmpp:rayo:1" from="sip:alice@atalk.org" to="sip:bob@atalk.org"><header name="JvbRoomName" value="room2"/></dial>`,
		dial.Payload.Element().String())

	ref := NewRefResult(dial, "xmpp:call1@rayo.atalk.org")
	require.True(t, ref.IsResult())
	require.Equal(t, dial.ID(), ref.ID())
	require.Equal(t, "rayo.atalk.org", ref.From())
	require.Equal(t, "focus@atalk.org/f", ref.To())
	require.Equal(t, `<ref xmlns="urn:xmpp:rayo:1" uri="xmpp:call1@rayo.atalk.org"/>`, ref.Payload.Element().String())

	hangup := NewHangup(focus, jid.MustParse("call1@rayo.atalk.org"))
	require.Equal(t, `<hangup xmlns="urn:xmpp:rayo:1"/>`, hangup.Payload.Element().String())
}

func TestRayo_EndExtension(t *testing.T) {
	m := provider.NewManager()
	Register(m)

	ext, err := m.ParseExtension(parseElement(t, `<end xmlns="urn:xmpp:rayo:1"><busy/><header name="cause" value="17"/></end>`))
	require.Nil(t, err)
	end := ext.(*End)
	require.Equal(t, BusyReason, end.Reason)
	require.Equal(t, "17", end.Header("cause"))
	require.Equal(t, `<end xmlns="urn:xmpp:rayo:1"><busy/><header name="cause" value="17"/></end>`, end.Element().String())
}
