/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp_test

import (
	"testing"

	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pborman/uuid"
	"github.com/stretchr/testify/require"
)

func TestMessageBuild(t *testing.T) {
	j, _ := jid.New("alice", "atalk.org", "phone", false)

	elem := xmpp.NewElementName("iq")
	_, err := xmpp.NewMessageFromElement(elem, j, j) // wrong name...
	require.NotNil(t, err)

	elem.SetName("message")
	elem.SetType("invalid")
	_, err = xmpp.NewMessageFromElement(elem, j, j) // invalid type...
	require.NotNil(t, err)

	elem.SetType(xmpp.ChatType)
	body := xmpp.NewElementName("body").SetText("hi")
	elem.AppendElement(body)
	msg, err := xmpp.NewMessageFromElement(elem, j, j)
	require.Nil(t, err)
	require.Equal(t, "hi", msg.Body())
}

func TestMessageType(t *testing.T) {
	msg := xmpp.NewMessageType(uuid.New(), xmpp.HeadlineType)
	require.Equal(t, xmpp.HeadlineType, msg.Type())
	require.Equal(t, "", msg.Body())
}
