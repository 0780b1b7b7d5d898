/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xep0166

import (
	"time"

	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/xep/jingle"
	"github.com/atalk/xmppcore/xmpp/jid"
)

// Session represents a snapshot of a Jingle session.
type Session struct {
	SID       string
	Peer      *jid.JID
	Initiator *jid.JID
	Incoming  bool
	State     history.State
	StartedAt time.Time
}

type session struct {
	Session
	offer *jingle.Jingle
}

func (s *Session) matchesPeer(from *jid.JID) bool {
	if from == nil {
		return false
	}
	if s.Peer.IsBare() {
		return s.Peer.Matches(from, jid.MatchesBare)
	}
	return s.Peer.Equal(from)
}

func (s *Session) record(reason string, endedAt time.Time) *history.Record {
	direction := history.Outgoing
	if s.Incoming {
		direction = history.Incoming
	}
	return &history.Record{
		SID:       s.SID,
		Peer:      s.Peer,
		Initiator: s.Initiator,
		Direction: direction,
		State:     s.State,
		Reason:    reason,
		StartedAt: s.StartedAt,
		EndedAt:   endedAt,
	}
}
