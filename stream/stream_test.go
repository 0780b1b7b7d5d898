/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pborman/uuid"
	"github.com/stretchr/testify/require"
)

func TestMockStream(t *testing.T) {
	j1, _ := jid.NewWithString("romeo@montague.lit/orchard", false)
	j2, _ := jid.NewWithString("juliet@capulet.lit/balcony", false)
	id := uuid.New()
	stm := NewMockStream(id, j1)
	require.Equal(t, id, stm.ID())
	require.Equal(t, "romeo@montague.lit/orchard", stm.JID().String())

	stm.SetJID(j2)
	require.Equal(t, "juliet@capulet.lit/balcony", stm.JID().String())

	stm.SendElement(xmpp.NewElementName("elem1234"))
	fetch := stm.FetchElement()
	require.NotNil(t, fetch)
	require.Equal(t, "elem1234", fetch.Name())

	discErr := errors.New("closed")
	stm.Disconnect(discErr)
	stm.Disconnect(nil)
	require.True(t, stm.IsDisconnected())
	require.Equal(t, discErr, stm.WaitDisconnection())
}

func TestWriterStream(t *testing.T) {
	// given
	buf := bytes.NewBuffer(nil)
	j, _ := jid.NewWithString("romeo@montague.lit/orchard", false)
	stm := NewWriter("s1", j, buf)

	// when
	stm.SendElement(xmpp.NewIQType("iq1", xmpp.ResultType))
	stm.Disconnect(nil)
	stm.SendElement(xmpp.NewIQType("iq2", xmpp.ResultType))
	stm.Disconnect(nil)

	// then
	require.Equal(t, "<iq id=\"iq1\" type=\"result\"/>\n</stream:stream>\n", buf.String())
	select {
	case <-stm.Done():
	default:
		require.Fail(t, "stream not done")
	}
	require.Equal(t, "s1", stm.ID())
	require.Equal(t, j, stm.JID())
}
