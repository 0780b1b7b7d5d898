/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package history

import (
	"context"
	"time"

	"github.com/atalk/xmppcore/event"
	"github.com/atalk/xmppcore/log"
	"github.com/pkg/errors"
)

// Recorder is a call listener storing calls ended by a Rayo <end/> presence.
// Jingle sessions are recorded by their session manager as they change state.
type Recorder struct {
	owner string
	d     *event.Dispatcher
	rep   Repository
}

// NewRecorder returns a call history recorder registering its listener on behalf of owner.
func NewRecorder(owner string, d *event.Dispatcher, rep Repository) *Recorder {
	return &Recorder{owner: owner, d: d, rep: rep}
}

// Start registers the call listener.
func (r *Recorder) Start(_ context.Context) error {
	r.d.AddListener(r.owner, event.CallClass, r.onCall)
	return nil
}

// Stop unregisters the call listener and waits for already dispatched events to be stored.
func (r *Recorder) Stop(ctx context.Context) error {
	r.d.RemoveOwner(r.owner)
	return r.d.Sync(ctx)
}

func (r *Recorder) onCall(ev interface{}) error {
	ce, ok := ev.(*event.CallEvent)
	if !ok || ce.Action != event.EndAction {
		return nil
	}
	ctx := context.Background()
	now := time.Now()

	rec, err := r.rep.FetchSession(ctx, ce.SID)
	switch err {
	case nil:
	case ErrNotFound:
		direction := Outgoing
		if ce.Incoming {
			direction = Incoming
		}
		rec = &Record{SID: ce.SID, Direction: direction, StartedAt: now}
	default:
		return errors.Wrapf(err, "history: fetching call %s", ce.SID)
	}
	rec.Peer = ce.Peer
	rec.State = Ended
	rec.Reason = ce.Reason
	rec.EndedAt = now

	if err := r.rep.UpsertSession(ctx, rec); err != nil {
		return errors.Wrapf(err, "history: recording call %s", ce.SID)
	}
	log.Debugf("history: call %s ended (reason: %s)", ce.SID, ce.Reason)
	return nil
}
