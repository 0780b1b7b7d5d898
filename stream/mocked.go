/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
)

const mockFetchTimeout = 3 * time.Second

// MockStream is an in-memory Stream capturing every sent element.
type MockStream struct {
	id       string
	mu       sync.RWMutex
	jid      *jid.JID
	sent     chan xmpp.XElement
	discOnce sync.Once
	disc     int32
	discErr  chan error
}

// NewMockStream returns a new mocked stream instance.
func NewMockStream(id string, j *jid.JID) *MockStream {
	return &MockStream{
		id:      id,
		jid:     j,
		sent:    make(chan xmpp.XElement, 16),
		discErr: make(chan error, 1),
	}
}

// ID satisfies Stream interface.
func (m *MockStream) ID() string { return m.id }

// JID satisfies Stream interface.
func (m *MockStream) JID() *jid.JID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jid
}

// SetJID replaces the stream local address.
func (m *MockStream) SetJID(j *jid.JID) {
	m.mu.Lock()
	m.jid = j
	m.mu.Unlock()
}

// SendElement satisfies Stream interface.
func (m *MockStream) SendElement(elem xmpp.XElement) { m.sent <- elem }

// FetchElement returns the next sent element.
// An empty element is returned if nothing is sent within three seconds.
func (m *MockStream) FetchElement() xmpp.XElement {
	select {
	case e := <-m.sent:
		return e
	case <-time.After(mockFetchTimeout):
		return &xmpp.Element{}
	}
}

// Disconnect satisfies Stream interface. Only the first call is recorded.
func (m *MockStream) Disconnect(err error) {
	m.discOnce.Do(func() {
		atomic.StoreInt32(&m.disc, 1)
		m.discErr <- err
	})
}

// IsDisconnected reports whether Disconnect has been called.
func (m *MockStream) IsDisconnected() bool { return atomic.LoadInt32(&m.disc) == 1 }

// WaitDisconnection blocks until the stream is disconnected and returns the reported error.
func (m *MockStream) WaitDisconnection() error { return <-m.discErr }
