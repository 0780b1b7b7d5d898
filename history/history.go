/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package history

import (
	"context"
	"time"

	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when a call session is not stored.
var ErrNotFound = errors.New("history: session not found")

// Direction tells which party initiated a call.
type Direction string

const (
	// Incoming calls were initiated by the peer.
	Incoming Direction = "in"

	// Outgoing calls were initiated locally.
	Outgoing Direction = "out"
)

// State represents the state of a call session.
type State string

const (
	// Pending sessions have been initiated but not yet accepted.
	Pending State = "pending"

	// Active sessions have been accepted.
	Active State = "active"

	// Ended sessions have been terminated.
	Ended State = "ended"
)

// Record represents a call history entry.
type Record struct {
	SID       string
	Peer      *jid.JID
	Initiator *jid.JID
	Direction Direction
	State     State
	Reason    string
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the elapsed time between session start and end.
// Zero is returned for sessions that have not ended.
func (r *Record) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Repository defines call history storage operations.
type Repository interface {
	// UpsertSession inserts a new call record or updates an existing one.
	UpsertSession(ctx context.Context, r *Record) error

	// FetchSession retrieves the call record identified by sid.
	// ErrNotFound is returned if the session is not stored.
	FetchSession(ctx context.Context, sid string) (*Record, error)

	// FetchPeerSessions retrieves every call held with peer bare JID, newest first.
	FetchPeerSessions(ctx context.Context, peer *jid.JID) ([]*Record, error)

	// DeleteSession removes the call record identified by sid.
	DeleteSession(ctx context.Context, sid string) error

	// Start initializes the repository.
	Start(ctx context.Context) error

	// Stop releases repository resources.
	Stop(ctx context.Context) error
}
