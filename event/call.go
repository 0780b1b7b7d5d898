/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package event

import (
	"github.com/atalk/xmppcore/xmpp/jid"
)

// EndAction is the action of a call ended by a Rayo <end/> presence.
const EndAction = "end"

// CallEvent contains all information associated to an accepted Jingle action
// or to a Rayo call end notification.
type CallEvent struct {
	// SID is the Jingle session identifier.
	SID string

	// Action is the Jingle action name.
	Action string

	// Peer is the remote party of the session.
	Peer *jid.JID

	// Incoming tells whether the session was initiated by the remote party.
	Incoming bool

	// State is the session state after the action has been applied.
	State string

	// Reason is the termination reason of an ended session.
	Reason string
}
