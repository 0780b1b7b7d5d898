/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jingle

import (
	"testing"

	"github.com/atalk/xmppcore/extension"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/stretchr/testify/require"
)

var (
	alice = jid.MustParse("alice@atalk.org/phone")
	bob   = jid.MustParse("bob@atalk.org/tablet")
)

func audioContent() *Content {
	c := NewContent(CreatorInitiator, "audio")
	c.Description = NewRTPDescription("audio")
	c.Description.PayloadTypes = []*PayloadType{{ID: 0, Name: "PCMU", ClockRate: 8000}}
	c.Transports = append(c.Transports, &IceUDPTransport{Ufrag: "u", Pwd: "p", RTCPMux: true})
	return c
}

func TestFactory_SessionInitiateAndAccept(t *testing.T) {
	sid := NewSID()
	initiate := NewSessionInitiate(alice, bob, sid, []*Content{audioContent()})
	require.True(t, initiate.IsSet())
	require.NotEmpty(t, initiate.ID())
	j := initiate.Payload.(*Jingle)
	require.Equal(t, SessionInitiate, j.Action)
	require.True(t, j.Initiator.Equal(alice))

	group := extension.New("group", GroupingNamespace)
	group.SetAttribute("semantics", "BUNDLE")
	j.AddExtension(group)

	accept := NewSessionAccept(bob, j, []*Content{audioContent()})
	aj := accept.Payload.(*Jingle)
	require.Equal(t, SessionAccept, aj.Action)
	require.Equal(t, sid, aj.SID)
	require.True(t, aj.Responder.Equal(bob))
	require.Equal(t, "alice@atalk.org/phone", accept.To())
	require.Equal(t, "bob@atalk.org/tablet", accept.From())
	require.NotNil(t, aj.Extension("group", GroupingNamespace))
}

func TestFactory_Ringing(t *testing.T) {
	initiate := New(SessionInitiate, "s1")
	initiate.Initiator = alice
	ringing := NewRinging(bob, initiate)
	j := ringing.Payload.(*Jingle)
	require.Equal(t, SessionInfo, j.Action)
	require.Equal(t, RingingInfo, j.SessionInfo.Type)
	require.Equal(t, "alice@atalk.org/phone", ringing.To())

	el := ringing.Stanza().Elements().ChildNamespace("jingle", Namespace)
	require.NotNil(t, el.Elements().ChildNamespace("ringing", SessionInfoNamespace))
}

func TestFactory_Terminate(t *testing.T) {
	bye := NewBye(alice, bob, "s1").Payload.(*Jingle)
	require.Equal(t, SessionTerminate, bye.Action)
	require.Equal(t, Success, bye.Reason.Condition)
	require.Equal(t, "Nice talking to you!", bye.Reason.Text)

	cancel := NewCancel(alice, bob, "s1").Payload.(*Jingle)
	require.Equal(t, Cancel, cancel.Reason.Condition)
	require.Equal(t, "Oops!", cancel.Reason.Text)

	busy := NewBusy(alice, bob, "s1")
	require.Equal(t, `<jingle xmlns="urn:xmpp:jingle:1" action="session-terminate" sid="s1"><reason><busy/></reason></jingle>`,
		busy.Payload.Element().String())
}

func TestFactory_Mute(t *testing.T) {
	mute := NewMute(alice, bob, "s1", true, "audio")
	require.Equal(t, `<jingle xmlns="urn:xmpp:jingle:1" action="session-info" sid="s1"><mute xmlns="urn:xmpp:jingle:apps:rtp:info:1" name="audio"/></jingle>`,
		mute.Payload.Element().String())
	unmute := NewMute(alice, bob, "s1", false, "audio").Payload.(*Jingle)
	require.Equal(t, UnmuteInfo, unmute.SessionInfo.Type)
}

func TestFactory_ContentActions(t *testing.T) {
	c := audioContent()
	require.Equal(t, ContentAdd, NewContentAdd(alice, bob, "s1", []*Content{c}).Payload.(*Jingle).Action)
	require.Equal(t, ContentAccept, NewContentAccept(alice, bob, "s1", []*Content{c}).Payload.(*Jingle).Action)
	require.Equal(t, ContentRemove, NewContentRemove(alice, bob, "s1", []*Content{c}).Payload.(*Jingle).Action)

	reject := NewContentReject(alice, bob, "s1", nil).Payload.(*Jingle)
	require.Equal(t, ContentReject, reject.Action)
	require.Equal(t, 0, len(reject.Contents))

	modify := NewContentModify(alice, bob, "s1", c).Payload.(*Jingle)
	require.Equal(t, ContentModify, modify.Action)
	require.Equal(t, 1, len(modify.Contents))

	ti := NewTransportInfo(alice, bob, "s1", []*Content{c}).Payload.(*Jingle)
	require.True(t, ti.Initiator.Equal(alice))

	initiate := New(SessionInitiate, "s1")
	initiate.Initiator = alice
	di := NewDescriptionInfo(bob, initiate, []*Content{c})
	require.Equal(t, DescriptionInfo, di.Payload.(*Jingle).Action)
	require.Equal(t, "alice@atalk.org/phone", di.To())
}

func TestFactory_ContentElement(t *testing.T) {
	el := audioContent().Element()
	require.Equal(t, `<content creator="initiator" name="audio">`+
		`<description xmlns="urn:xmpp:jingle:apps:rtp:1" media="audio"><payload-type id="0" name="PCMU" clockrate="8000"/></description>`+
		`<transport xmlns="urn:xmpp:jingle:transports:ice-udp:1" pwd="p" ufrag="u"><rtcp-mux/></transport>`+
		`</content>`, el.String())
	require.Equal(t, xmpp.SetType, NewContentAdd(alice, bob, "s1", nil).Type())
}

func TestErrorConditions(t *testing.T) {
	require.Equal(t, `<unknown-session xmlns="urn:xmpp:jingle:errors:1"/>`, UnknownSessionError().String())
	require.Equal(t, "out-of-order", OutOfOrderError().Name())
	require.Equal(t, ErrorsNamespace, TieBreakError().Namespace())
	require.Equal(t, "unsupported-info", UnsupportedInfoError().Name())
}
