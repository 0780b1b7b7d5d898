/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

import (
	"bufio"
	"io"
	"sync"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/atalk/xmppcore/xmpp/jid"
)

// Stream represents an XMPP stream modules answer through.
type Stream interface {
	// ID returns stream identifier.
	ID() string

	// JID returns the local entity address.
	JID() *jid.JID

	// SendElement writes an XML element to the stream.
	SendElement(elem xmpp.XElement)

	// Disconnect closes the stream, optionally reporting err.
	Disconnect(err error)
}

// Writer is a Stream serializing outgoing elements to an io.Writer.
type Writer struct {
	id     string
	jid    *jid.JID
	mu     sync.Mutex
	bw     *bufio.Writer
	closed bool
	doneCh chan struct{}
}

// NewWriter returns a stream writing to w on behalf of j.
func NewWriter(id string, j *jid.JID, w io.Writer) *Writer {
	return &Writer{
		id:     id,
		jid:    j,
		bw:     bufio.NewWriter(w),
		doneCh: make(chan struct{}),
	}
}

// ID satisfies Stream interface.
func (s *Writer) ID() string { return s.id }

// JID satisfies Stream interface.
func (s *Writer) JID() *jid.JID { return s.jid }

// SendElement satisfies Stream interface.
// Elements sent after disconnection are discarded.
func (s *Writer) SendElement(elem xmpp.XElement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		log.Warnf("stream %s: discarding element <%s/> sent after disconnection", s.id, elem.Name())
		return
	}
	elem.ToXML(s.bw, true)
	if err := s.bw.WriteByte('\n'); err != nil {
		log.Errorf("stream %s: %v", s.id, err)
		return
	}
	if err := s.bw.Flush(); err != nil {
		log.Errorf("stream %s: %v", s.id, err)
	}
}

// Disconnect satisfies Stream interface.
func (s *Writer) Disconnect(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err != nil {
		log.Errorf("stream %s: disconnected: %v", s.id, err)
	}
	_, _ = s.bw.WriteString("</stream:stream>\n")
	_ = s.bw.Flush()

	s.closed = true
	close(s.doneCh)
}

// Done returns a channel closed once the stream has been disconnected.
func (s *Writer) Done() <-chan struct{} {
	return s.doneCh
}
