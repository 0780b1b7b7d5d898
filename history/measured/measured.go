/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package measuredhistory

import (
	"context"
	"time"

	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/xmpp/jid"
)

// Measured is a call history repository that reports operation metrics.
type Measured struct {
	rep history.Repository
}

// New returns a measured call history repository wrapping rep.
func New(rep history.Repository) *Measured {
	return &Measured{rep: rep}
}

// UpsertSession satisfies history.Repository interface.
func (m *Measured) UpsertSession(ctx context.Context, rec *history.Record) (err error) {
	t0 := time.Now()
	err = m.rep.UpsertSession(ctx, rec)
	reportOpMetric(upsertOp, time.Since(t0).Seconds(), err == nil)
	return
}

// FetchSession satisfies history.Repository interface.
func (m *Measured) FetchSession(ctx context.Context, sid string) (rec *history.Record, err error) {
	t0 := time.Now()
	rec, err = m.rep.FetchSession(ctx, sid)
	reportOpMetric(fetchOp, time.Since(t0).Seconds(), err == nil || err == history.ErrNotFound)
	return
}

// FetchPeerSessions satisfies history.Repository interface.
func (m *Measured) FetchPeerSessions(ctx context.Context, peer *jid.JID) (recs []*history.Record, err error) {
	t0 := time.Now()
	recs, err = m.rep.FetchPeerSessions(ctx, peer)
	reportOpMetric(fetchOp, time.Since(t0).Seconds(), err == nil)
	return
}

// DeleteSession satisfies history.Repository interface.
func (m *Measured) DeleteSession(ctx context.Context, sid string) (err error) {
	t0 := time.Now()
	err = m.rep.DeleteSession(ctx, sid)
	reportOpMetric(deleteOp, time.Since(t0).Seconds(), err == nil)
	return
}

// Start satisfies history.Repository interface.
func (m *Measured) Start(ctx context.Context) (err error) {
	t0 := time.Now()
	err = m.rep.Start(ctx)
	reportOpMetric(startOp, time.Since(t0).Seconds(), err == nil)
	return
}

// Stop satisfies history.Repository interface.
func (m *Measured) Stop(ctx context.Context) (err error) {
	t0 := time.Now()
	err = m.rep.Stop(ctx)
	reportOpMetric(stopOp, time.Since(t0).Seconds(), err == nil)
	return
}
