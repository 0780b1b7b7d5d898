/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package module

import (
	"sync"
	"time"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/provider"
	"github.com/atalk/xmppcore/stream"
	"github.com/atalk/xmppcore/xmpp"
	"github.com/pkg/errors"
)

// DefaultResponseTimeout is the time a request waits for its answer when no timeout is configured.
const DefaultResponseTimeout = time.Second * 20

// ErrCollectorStopped is returned when sending a request through a stopped collector.
var ErrCollectorStopped = errors.New("module: response collector stopped")

type pendingRequest struct {
	req     *provider.IQ
	timer   *time.Timer
	handler func(response *provider.IQ)
}

// ResponseCollector sends get and set requests and matches their answers.
// A request not answered in time is completed with a locally synthesized timeout IQ.
type ResponseCollector struct {
	stm     stream.Stream
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]*pendingRequest
	stopped bool
}

// NewResponseCollector returns a collector writing requests to stm.
func NewResponseCollector(stm stream.Stream, timeout time.Duration) *ResponseCollector {
	if timeout <= 0 {
		timeout = DefaultResponseTimeout
	}
	return &ResponseCollector{
		stm:     stm,
		timeout: timeout,
		pending: make(map[string]*pendingRequest),
	}
}

// Send writes iq to the stream using the collector timeout.
// handler is invoked exactly once with the answer or a timeout IQ.
func (c *ResponseCollector) Send(iq *provider.IQ, handler func(response *provider.IQ)) error {
	return c.SendWithTimeout(iq, c.timeout, handler)
}

// SendWithTimeout writes iq to the stream waiting at most timeout for its answer.
func (c *ResponseCollector) SendWithTimeout(iq *provider.IQ, timeout time.Duration, handler func(response *provider.IQ)) error {
	if !iq.IsGet() && !iq.IsSet() {
		return errors.Errorf("module: cannot collect response for %s iq", iq.Type())
	}
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrCollectorStopped
	}
	if _, ok := c.pending[iq.ID()]; ok {
		c.mu.Unlock()
		return errors.Errorf("module: request %s already pending", iq.ID())
	}
	pr := &pendingRequest{req: iq, handler: handler}
	id := iq.ID()
	pr.timer = time.AfterFunc(timeout, func() { c.expire(id) })
	c.pending[id] = pr
	c.mu.Unlock()

	c.stm.SendElement(iq.Stanza())
	return nil
}

// Collect completes the pending request iq answers.
// It returns false if iq does not answer any pending request.
func (c *ResponseCollector) Collect(iq *provider.IQ) bool {
	c.mu.Lock()
	pr := c.pending[iq.ID()]
	if pr == nil || !answers(pr.req, iq) {
		c.mu.Unlock()
		return false
	}
	delete(c.pending, iq.ID())
	c.mu.Unlock()

	pr.timer.Stop()
	pr.handler(iq)
	return true
}

// Pending returns the number of requests waiting for an answer.
func (c *ResponseCollector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Stop discards every pending request.
// Discarded handlers are never invoked.
func (c *ResponseCollector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, pr := range c.pending {
		pr.timer.Stop()
		delete(c.pending, id)
	}
	c.stopped = true
}

func (c *ResponseCollector) expire(id string) {
	c.mu.Lock()
	pr := c.pending[id]
	if pr == nil {
		c.mu.Unlock()
		return
	}
	delete(c.pending, id)
	c.mu.Unlock()

	log.Warnf("request timed out... id: %s", id)
	pr.handler(&provider.IQ{IQ: xmpp.NewTimeoutIQ(pr.req.IQ)})
}

func answers(req, resp *provider.IQ) bool {
	if resp.IQType() != xmpp.ResultIQ && resp.IQType() != xmpp.ErrorIQ {
		return false
	}
	to, from := req.ToJID(), resp.FromJID()
	if to == nil || to.IsEmpty() || from == nil || from.IsEmpty() {
		return true
	}
	return to.Equal(from)
}
