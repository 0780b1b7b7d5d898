/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package extension

import (
	"strings"
	"testing"

	"github.com/atalk/xmppcore/xmpp"
	"github.com/stretchr/testify/require"
)

func TestElement_Attributes(t *testing.T) {
	e := New("candidate", "urn:xmpp:jingle:transports:ice-udp:1")
	e.SetAttribute("ip", "10.0.0.1")
	e.SetIntAttribute("port", 10000)
	e.SetAttribute("protocol", "udp")

	require.Equal(t, "10.0.0.1", e.Attribute("ip"))
	require.Equal(t, 10000, e.AttributeAsInt("port", -1))
	require.Equal(t, -1, e.AttributeAsInt("priority", -1))

	// replacing keeps position
	e.SetAttribute("ip", "10.0.0.2")
	attrs := e.Attributes()
	require.Equal(t, 3, len(attrs))
	require.Equal(t, "ip", attrs[0].Label)
	require.Equal(t, "10.0.0.2", attrs[0].Value)

	// empty value removes
	e.SetAttribute("protocol", "")
	require.False(t, e.HasAttribute("protocol"))
	require.Equal(t, 2, len(e.Attributes()))

	e.SetBoolAttribute("rtcp-mux", true)
	require.True(t, e.AttributeAsBool("rtcp-mux"))
	e.SetAttribute("rtcp-mux", "1")
	require.True(t, e.AttributeAsBool("rtcp-mux"))
}

func TestElement_URI(t *testing.T) {
	e := New("ref", "urn:xmpp:rayo:1")
	u, err := e.AttributeAsURI("uri")
	require.Nil(t, err)
	require.Nil(t, u)

	e.SetAttribute("uri", "xmpp:call@rayo.atalk.org")
	u, err = e.AttributeAsURI("uri")
	require.Nil(t, err)
	require.Equal(t, "xmpp", u.Scheme)
}

func TestElement_Children(t *testing.T) {
	e := New("content", "urn:xmpp:jingle:1")
	e.AddChild(New("description", "urn:xmpp:jingle:apps:rtp:1"))
	e.AddChild(New("transport", "urn:xmpp:jingle:transports:ice-udp:1"))
	e.AddChild(New("transport", "urn:xmpp:jingle:transports:raw-udp:1"))

	require.Equal(t, 2, len(e.ChildrenByName("transport")))
	require.Equal(t, "urn:xmpp:jingle:transports:ice-udp:1", e.FirstChild("transport").Namespace())
	require.Nil(t, e.FirstChild("security"))

	e.SetChild(New("transport", "urn:xmpp:jingle:transports:dtls-sctp:1"))
	ts := e.ChildrenByName("transport")
	require.Equal(t, 1, len(ts))
	require.Equal(t, "urn:xmpp:jingle:transports:dtls-sctp:1", ts[0].Namespace())
	require.Equal(t, 2, len(e.Children()))
}

func TestElement_Clone(t *testing.T) {
	e := New("reason", "urn:xmpp:jingle:1")
	e.SetAttribute("a", "1")
	e.SetText("bye")
	e.AddChild(New("success", ""))

	c := e.Clone()
	require.Equal(t, "reason", c.Name())
	require.Equal(t, "urn:xmpp:jingle:1", c.Namespace())
	require.Equal(t, "1", c.Attribute("a"))
	require.Equal(t, "bye", c.Text())
	require.Equal(t, 0, len(c.Children()))

	c.SetAttribute("a", "2")
	require.Equal(t, "1", e.Attribute("a"))
}

func TestElement_ImmutableIdentity(t *testing.T) {
	var e interface{} = New("transport", "urn:xmpp:jingle:transports:ice-udp:1")

	_, renamable := e.(interface{ SetName(string) })
	_, rebindable := e.(interface{ SetNamespace(string) })

	require.False(t, renamable)
	require.False(t, rebindable)
}

func TestElement_Serialize(t *testing.T) {
	e := New("group", "urn:xmpp:jingle:apps:grouping:0")
	e.SetAttribute("semantics", "BUNDLE")
	require.Equal(t, `<group xmlns="urn:xmpp:jingle:apps:grouping:0" semantics="BUNDLE"/>`, e.String())

	c := New("content", "")
	c.SetAttribute("name", "audio")
	e.AddChild(c)
	require.Equal(t, `<group xmlns="urn:xmpp:jingle:apps:grouping:0" semantics="BUNDLE"><content name="audio"/></group>`, e.String())

	txt := New("text", "")
	txt.SetText("a < b")
	require.Equal(t, `<text>a &lt; b</text>`, txt.String())
}

func TestFromXElement(t *testing.T) {
	src := `<transfer xmlns="urn:xmpp:jingle:transfer:0" from="a@atalk.org" sid="s1"><inner/><other xmlns="urn:example">x</other></transfer>`
	p := xmpp.NewParser(strings.NewReader(src), xmpp.DefaultMode, 0)
	elem, err := p.ParseElement()
	require.Nil(t, err)

	e := FromXElement(elem)
	require.Equal(t, "transfer", e.Name())
	require.Equal(t, "urn:xmpp:jingle:transfer:0", e.Namespace())
	require.Equal(t, "a@atalk.org", e.Attribute("from"))
	require.False(t, e.HasAttribute("xmlns"))
	require.Equal(t, 2, len(e.Children()))
	require.Equal(t, "", e.FirstChild("inner").Namespace())
	require.Equal(t, "urn:example", e.FirstChild("other").Namespace())
	require.Equal(t, src, e.String())
}

func TestAttributeHelpers(t *testing.T) {
	el := xmpp.NewElementName("channel")
	el.SetAttribute("last-n", "5")
	el.SetAttribute("initiator", "true")
	el.SetAttribute("expire", "soon")
	require.Equal(t, 5, IntAttribute(el, "last-n", -1))
	require.Equal(t, -1, IntAttribute(el, "expire", -1))
	require.True(t, BoolAttribute(el, "initiator"))
	require.False(t, BoolAttribute(el, "missing"))
}
