/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package runqueue

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/util/runqueue/mpsc"
	"github.com/pkg/errors"
)

// ErrStopped is returned when submitting an operation to a stopped queue.
var ErrStopped = errors.New("runqueue: queue stopped")

const (
	idle int32 = iota
	running
)

// RunQueue represents an operation queue.
// Operations are executed one at a time in submission order.
type RunQueue struct {
	name         string
	queue        *mpsc.Queue
	messageCount int32
	state        int32

	mu      sync.RWMutex
	stopped bool
}

type funcMessage struct{ fn func() }
type stopMessage struct{ stopCb func() }

// New returns an initialized lock-free operation queue.
func New(name string) *RunQueue {
	return &RunQueue{
		name:  name,
		queue: mpsc.New(),
	}
}

// Name returns the queue name.
func (m *RunQueue) Name() string { return m.name }

// Len returns the number of operations waiting to be executed.
func (m *RunQueue) Len() int { return int(atomic.LoadInt32(&m.messageCount)) }

// Run pushes a new operation function into the queue.
// ErrStopped is returned once the queue has been stopped.
func (m *RunQueue) Run(fn func()) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stopped {
		return ErrStopped
	}
	m.push(&funcMessage{fn: fn})
	return nil
}

// Stop signals the queue to stop running.
//
// Operations scheduled before Stop are executed first, then stopCb is invoked.
func (m *RunQueue) Stop(stopCb func()) {
	m.mu.Lock()
	if !m.stopped {
		m.stopped = true
		m.push(&stopMessage{stopCb: stopCb})
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	if stopCb != nil {
		stopCb()
	}
}

func (m *RunQueue) push(msg interface{}) {
	atomic.AddInt32(&m.messageCount, 1)
	m.queue.Push(msg)
	m.schedule()
}

func (m *RunQueue) schedule() {
	if atomic.CompareAndSwapInt32(&m.state, idle, running) {
		go m.drain()
	}
}

// drain executes queued operations until the queue is empty or stopped.
// Only the goroutine holding the running state may touch the queue consumer side.
func (m *RunQueue) drain() {
	for {
		if stopped := m.runPending(); stopped {
			return
		}
		atomic.StoreInt32(&m.state, idle)
		if atomic.LoadInt32(&m.messageCount) == 0 {
			return
		}
		// a producer is still linking its message in
		if !atomic.CompareAndSwapInt32(&m.state, idle, running) {
			return
		}
		runtime.Gosched()
	}
}

func (m *RunQueue) runPending() (stopped bool) {
	for {
		switch msg := m.queue.Pop().(type) {
		case *funcMessage:
			m.safeExec(msg.fn)
			atomic.AddInt32(&m.messageCount, -1)
		case *stopMessage:
			atomic.AddInt32(&m.messageCount, -1)
			if msg.stopCb != nil {
				msg.stopCb()
			}
			return true
		default:
			return false
		}
	}
}

func (m *RunQueue) safeExec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			log.Errorf("runqueue %s: recovered from panic: %v\n%s", m.name, r, stack[:n])
		}
	}()
	fn()
}
