/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package memoryhistory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/atalk/xmppcore/history"
	"github.com/atalk/xmppcore/xmpp/jid"
	"github.com/pkg/errors"
)

// ErrMocked represents a mocked storage error.
var ErrMocked = errors.New("memoryhistory: storage error")

// Repository represents an in-memory call history repository.
type Repository struct {
	mu          sync.RWMutex
	records     map[string]history.Record
	mockedError int32
}

// New returns an empty in-memory call history repository.
func New() *Repository {
	return &Repository{records: make(map[string]history.Record)}
}

// EnableMockedError makes every subsequent operation fail with ErrMocked.
func (m *Repository) EnableMockedError() { atomic.StoreInt32(&m.mockedError, 1) }

// DisableMockedError disables mocked storage errors.
func (m *Repository) DisableMockedError() { atomic.StoreInt32(&m.mockedError, 0) }

// UpsertSession satisfies history.Repository interface.
func (m *Repository) UpsertSession(_ context.Context, r *history.Record) error {
	if m.mocked() {
		return ErrMocked
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := *r
	if prev, ok := m.records[r.SID]; ok {
		// a session keeps its origin, only its progress is updated
		rec.Initiator = prev.Initiator
		rec.Direction = prev.Direction
		rec.StartedAt = prev.StartedAt
	}
	m.records[r.SID] = rec
	return nil
}

// FetchSession satisfies history.Repository interface.
func (m *Repository) FetchSession(_ context.Context, sid string) (*history.Record, error) {
	if m.mocked() {
		return nil, ErrMocked
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[sid]
	if !ok {
		return nil, history.ErrNotFound
	}
	return &r, nil
}

// FetchPeerSessions satisfies history.Repository interface.
func (m *Repository) FetchPeerSessions(_ context.Context, peer *jid.JID) ([]*history.Record, error) {
	if m.mocked() {
		return nil, ErrMocked
	}
	m.mu.RLock()
	var res []*history.Record
	for _, r := range m.records {
		if r.Peer != nil && r.Peer.Matches(peer, jid.MatchesBare) {
			rc := r
			res = append(res, &rc)
		}
	}
	m.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].StartedAt.After(res[j].StartedAt) })
	return res, nil
}

// DeleteSession satisfies history.Repository interface.
func (m *Repository) DeleteSession(_ context.Context, sid string) error {
	if m.mocked() {
		return ErrMocked
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, sid)
	return nil
}

// Start satisfies history.Repository interface.
func (m *Repository) Start(_ context.Context) error { return nil }

// Stop satisfies history.Repository interface.
func (m *Repository) Stop(_ context.Context) error { return nil }

func (m *Repository) mocked() bool {
	return atomic.LoadInt32(&m.mockedError) == 1
}
