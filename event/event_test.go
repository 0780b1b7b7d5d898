/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	seen []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, s)
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

func shutdown(t *testing.T, d *Dispatcher) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.Nil(t, d.Shutdown(ctx))
}

func TestDispatcher_Order(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	r := &recorder{}

	d.AddListener("b1", BundleClass, func(ev interface{}) error {
		r.add("l1:" + ev.(string))
		return nil
	})
	d.AddListener("b2", BundleClass, func(ev interface{}) error {
		r.add("l2:" + ev.(string))
		return nil
	})

	// when
	require.Nil(t, d.Dispatch(BundleClass, "a"))
	require.Nil(t, d.Dispatch(BundleClass, "b"))
	shutdown(t, d)

	// then
	require.Equal(t, []string{"l1:a", "l2:a", "l1:b", "l2:b"}, r.values())
}

func TestDispatcher_ClassIsolation(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	r := &recorder{}

	d.AddListener("b1", ServiceClass, func(ev interface{}) error {
		r.add("service")
		return nil
	})

	// when
	require.Nil(t, d.Dispatch(BundleClass, "ignored"))
	require.Nil(t, d.Dispatch(ServiceClass, "ok"))
	shutdown(t, d)

	// then
	require.Equal(t, []string{"service"}, r.values())
}

func TestDispatcher_ListenerFailure(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	r := &recorder{}

	d.AddListener("b1", CallClass, func(ev interface{}) error {
		return errors.New("listener failed")
	})
	d.AddListener("b2", CallClass, func(ev interface{}) error {
		panic("boom")
	})
	d.AddListener("b3", CallClass, func(ev interface{}) error {
		r.add("b3")
		return nil
	})

	// when
	require.Nil(t, d.Dispatch(CallClass, &CallEvent{SID: "s1"}))
	require.Nil(t, d.Dispatch(CallClass, &CallEvent{SID: "s2"}))
	shutdown(t, d)

	// then
	require.Equal(t, []string{"b3", "b3"}, r.values())
}

func TestDispatcher_RemoveListener(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	r := &recorder{}

	var l1 Listener = func(ev interface{}) error { r.add("l1"); return nil }
	var l2 Listener = func(ev interface{}) error { r.add("l2"); return nil }

	d.AddListener("b1", BundleClass, l1)
	d.AddListener("b1", BundleClass, l2)
	d.AddListener("b2", ServiceClass, l1)

	// when
	d.RemoveListener("b1", BundleClass, l1)

	// then
	require.Equal(t, 1, d.Listeners("b1", BundleClass))
	require.Equal(t, 1, d.Listeners("b2", ServiceClass))

	// when
	d.RemoveOwner("b1")

	// then
	require.Equal(t, 0, d.Listeners("b1", BundleClass))
	require.Equal(t, 1, d.Listeners("b2", ServiceClass))

	require.Nil(t, d.Dispatch(BundleClass, "x"))
	require.Nil(t, d.Dispatch(ServiceClass, "y"))
	shutdown(t, d)
	require.Equal(t, []string{"l1"}, r.values())
}

func TestDispatcher_Shutdown(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	r := &recorder{}

	d.AddListener("b1", BundleClass, func(ev interface{}) error {
		time.Sleep(time.Millisecond * 50)
		r.add(ev.(string))
		return nil
	})
	require.Nil(t, d.Dispatch(BundleClass, "pending"))

	// when
	shutdown(t, d)
	err := d.Dispatch(BundleClass, "late")

	// then
	require.Equal(t, ErrDispatcherClosed, err)
	require.Equal(t, []string{"pending"}, r.values())
}

func TestDispatcher_ShutdownTimeout(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	release := make(chan struct{})

	d.AddListener("b1", BundleClass, func(ev interface{}) error {
		<-release
		return nil
	})
	require.Nil(t, d.Dispatch(BundleClass, "blocked"))

	// when
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
	defer cancel()
	err := d.Shutdown(ctx)

	// then
	require.Equal(t, context.DeadlineExceeded, err)
	close(release)
}

func TestDispatcher_Sync(t *testing.T) {
	// given
	d := NewDispatcher(uuid.New())
	r := &recorder{}

	d.AddListener("b1", CallClass, func(ev interface{}) error {
		time.Sleep(time.Millisecond * 20)
		r.add(ev.(*CallEvent).SID)
		return nil
	})
	require.Nil(t, d.Dispatch(CallClass, &CallEvent{SID: "s1"}))
	require.Nil(t, d.Dispatch(CallClass, &CallEvent{SID: "s2"}))

	// when
	d.RemoveOwner("b1")
	err := d.Sync(context.Background())

	// then
	require.Nil(t, err)
	require.Equal(t, []string{"s1", "s2"}, r.values())

	shutdown(t, d)
	require.Equal(t, ErrDispatcherClosed, d.Sync(context.Background()))
}

func TestEventTypeStrings(t *testing.T) {
	require.Equal(t, "installed", BundleInstalled.String())
	require.Equal(t, "uninstalled", BundleUninstalled.String())
	require.Equal(t, "unregistering", ServiceUnregistering.String())
	require.Equal(t, "unknown", BundleEventType(42).String())
}
