/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0199

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pborman/uuid"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func parseIQ(t *testing.T, src string) *provider.IQ {
	p := xmpp.NewParser(strings.NewReader(src), xmpp.DefaultMode, 0)
	elem, err := p.ParseElement()
	require.Nil(t, err)
	iq, err := provider.NewManager().ParseIQ(elem)
	require.Nil(t, err)
	return iq
}

func TestXEP0199_Config(t *testing.T) {
	cfg := Config{}
	require.Nil(t, yaml.Unmarshal([]byte("send: true\nsend_interval: 15"), &cfg))
	require.True(t, cfg.Send)
	require.Equal(t, time.Second*15, cfg.SendInterval)

	require.NotNil(t, yaml.Unmarshal([]byte("send: true\nsend_interval: 0"), &Config{}))
}

func TestXEP0199_Matching(t *testing.T) {
	x := New(Config{}, nil, nil)
	require.Equal(t, ModuleName, x.Name())

	require.True(t, x.MatchesIQ(parseIQ(t, `<iq id="p1" type="get"><ping xmlns="urn:xmpp:ping"/></iq>`)))
	require.False(t, x.MatchesIQ(parseIQ(t, `<iq id="p1" type="get"><query xmlns="jabber:iq:version"/></iq>`)))
	require.False(t, x.MatchesIQ(parseIQ(t, `<iq id="p1" type="result"/>`)))
}

func TestXEP0199_ReceivePing(t *testing.T) {
	j := jid.MustParse("romeo@montague.lit/orchard")
	stm := stream.NewMockStream(uuid.New(), j)
	x := New(Config{}, stm, nil)

	// set is not allowed
	_ = x.ProcessIQ(context.Background(), parseIQ(t, `<iq id="p1" type="set" from="juliet@capulet.lit/balcony"><ping xmlns="urn:xmpp:ping"/></iq>`))
	elem := stm.FetchElement()
	require.Equal(t, xmpp.ErrBadRequest.Error(), elem.Error().Elements().All()[0].Name())

	// ping must be empty
	_ = x.ProcessIQ(context.Background(), parseIQ(t, `<iq id="p2" type="get" from="juliet@capulet.lit/balcony"><ping xmlns="urn:xmpp:ping"><x/></ping></iq>`))
	elem = stm.FetchElement()
	require.Equal(t, xmpp.ErrBadRequest.Error(), elem.Error().Elements().All()[0].Name())

	// pong
	_ = x.ProcessIQ(context.Background(), parseIQ(t, `<iq id="p3" type="get" from="juliet@capulet.lit/balcony"><ping xmlns="urn:xmpp:ping"/></iq>`))
	elem = stm.FetchElement()
	require.Equal(t, "p3", elem.ID())
	require.Equal(t, xmpp.ResultType, elem.Type())
	require.Equal(t, "juliet@capulet.lit/balcony", elem.To())
}

func TestXEP0199_SendPing(t *testing.T) {
	// given
	j := jid.MustParse("romeo@montague.lit/orchard")
	stm := stream.NewMockStream(uuid.New(), j)

	sentCh := make(chan *provider.IQ, 2)
	senderMock := &iqSenderMock{}
	senderMock.SendFunc = func(iq *provider.IQ, handler func(*provider.IQ)) error {
		sentCh <- iq
		if len(senderMock.SendCalls()) == 1 {
			handler(&provider.IQ{IQ: iq.ResultIQ()})
		} else {
			handler(&provider.IQ{IQ: xmpp.NewTimeoutIQ(iq.IQ)})
		}
		return nil
	}
	x := New(Config{Send: true, SendInterval: time.Millisecond * 20}, stm, senderMock)

	// when
	require.Nil(t, x.Start(context.Background()))
	defer func() { _ = x.Stop(context.Background()) }()

	// then
	first := <-sentCh
	require.Equal(t, "montague.lit", first.ToJID().String())
	require.NotNil(t, first.Stanza().Elements().ChildNamespace("ping", pingNamespace))

	// a second ping follows the pong and times out
	<-sentCh
	err := stm.WaitDisconnection()
	require.Equal(t, ErrConnectionTimeout, err)
}

func TestXEP0199_StopCancelsPing(t *testing.T) {
	senderMock := &iqSenderMock{}
	senderMock.SendFunc = func(iq *provider.IQ, handler func(*provider.IQ)) error { return nil }

	x := New(Config{Send: true, SendInterval: time.Millisecond * 20}, nil, senderMock)
	require.Nil(t, x.Start(context.Background()))
	require.Nil(t, x.Stop(context.Background()))

	time.Sleep(time.Millisecond * 60)
	require.Len(t, senderMock.SendCalls(), 0)
}
