/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package event

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/atalk/xmppcore/log"
	"github.com/atalk/xmppcore/util/runqueue"
	"github.com/pkg/errors"
)

// ErrDispatcherClosed is returned when dispatching through a shut down dispatcher.
var ErrDispatcherClosed = errors.New("event: dispatcher closed")

// Class identifies a family of listeners.
type Class string

const (
	// BundleClass listeners receive BundleEvent values.
	BundleClass Class = "bundle"

	// ServiceClass listeners receive ServiceEvent values.
	ServiceClass Class = "service"

	// CallClass listeners receive CallEvent values.
	CallClass Class = "call"
)

// Listener handles a dispatched event.
type Listener func(ev interface{}) error

type registration struct {
	owner string
	l     Listener
}

// Dispatcher delivers events asynchronously to the listeners registered for their class.
// Events are delivered one at a time in submission order.
type Dispatcher struct {
	name string
	mu   sync.RWMutex
	regs map[Class][]registration
	rq   *runqueue.RunQueue
}

// NewDispatcher returns an initialized event dispatcher.
func NewDispatcher(name string) *Dispatcher {
	return &Dispatcher{
		name: name,
		regs: make(map[Class][]registration),
		rq:   runqueue.New(name),
	}
}

// AddListener registers l for class on behalf of owner.
func (d *Dispatcher) AddListener(owner string, class Class, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.regs[class] = append(d.regs[class], registration{owner: owner, l: l})
	log.Debugf("event: %s registered %s listener", owner, class)
}

// RemoveListener unregisters a listener previously registered by owner.
func (d *Dispatcher) RemoveListener(owner string, class Class, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.regs[class]
	for i, reg := range regs {
		if reg.owner != owner || reflect.ValueOf(reg.l).Pointer() != reflect.ValueOf(l).Pointer() {
			continue
		}
		d.regs[class] = append(regs[:i:i], regs[i+1:]...)
		return
	}
}

// RemoveOwner unregisters every listener registered by owner.
func (d *Dispatcher) RemoveOwner(owner string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for class, regs := range d.regs {
		var kept []registration
		for _, reg := range regs {
			if reg.owner != owner {
				kept = append(kept, reg)
			}
		}
		if len(kept) == 0 {
			delete(d.regs, class)
			continue
		}
		d.regs[class] = kept
	}
}

// Listeners returns the number of listeners owner registered for class.
func (d *Dispatcher) Listeners(owner string, class Class) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var n int
	for _, reg := range d.regs[class] {
		if reg.owner == owner {
			n++
		}
	}
	return n
}

// Dispatch enqueues ev for delivery to the current listeners of class and returns immediately.
// Once the dispatcher is shut down the event is logged and dropped.
func (d *Dispatcher) Dispatch(class Class, ev interface{}) error {
	d.mu.RLock()
	regs := make([]registration, len(d.regs[class]))
	copy(regs, d.regs[class])
	d.mu.RUnlock()

	if len(regs) == 0 {
		return nil
	}
	enqueuedAt := time.Now()
	err := d.rq.Run(func() {
		eventQueueWait.WithLabelValues(d.name).Observe(time.Since(enqueuedAt).Seconds())
		d.deliver(class, ev, regs)
	})
	if err != nil {
		log.Warnf("event: %s dropped %s event %T: dispatcher closed", d.name, class, ev)
		eventsRejected.WithLabelValues(d.name, string(class)).Inc()
		return ErrDispatcherClosed
	}
	return nil
}

// Sync waits until every event dispatched before the call has been delivered.
func (d *Dispatcher) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if err := d.rq.Run(func() { close(done) }); err != nil {
		return ErrDispatcherClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting events and waits until every pending event has been delivered.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	d.rq.Stop(func() { close(done) })

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) deliver(class Class, ev interface{}, regs []registration) {
	for _, reg := range regs {
		if err := d.invoke(reg, ev); err != nil {
			log.Errorf("event: %s listener of %s failed handling %s event: %v", reg.owner, d.name, class, err)
			listenerFailures.WithLabelValues(d.name, string(class)).Inc()
		}
	}
	eventsDispatched.WithLabelValues(d.name, string(class)).Inc()
}

func (d *Dispatcher) invoke(reg registration, ev interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("listener panicked: %v", r)
		}
	}()
	return reg.l(ev)
}
