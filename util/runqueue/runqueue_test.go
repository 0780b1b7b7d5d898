/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package runqueue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitClosed(t *testing.T, c <-chan struct{}) {
	t.Helper()
	select {
	case <-c:
	case <-time.After(2 * time.Second):
		require.Fail(t, "timed out waiting for run queue")
	}
}

func TestRunQueue_ConcurrentProducers(t *testing.T) {
	// given
	rq := New("producers")
	var count int
	var wg sync.WaitGroup

	// when
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				if err := rq.Run(func() { count++ }); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	done := make(chan struct{})
	rq.Stop(func() { close(done) })
	waitClosed(t, done)

	// then
	require.Equal(t, 2000, count)
	require.Equal(t, 0, rq.Len())
}

func TestRunQueue_SubmissionOrder(t *testing.T) {
	// given
	rq := New("order")
	var seq []int

	// when
	for i := 0; i < 100; i++ {
		n := i
		require.Nil(t, rq.Run(func() { seq = append(seq, n) }))
		if i%10 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	done := make(chan struct{})
	rq.Stop(func() { close(done) })
	waitClosed(t, done)

	// then
	require.Len(t, seq, 100)
	for i, n := range seq {
		require.Equal(t, i, n)
	}
}

func TestRunQueue_RecoversFromPanic(t *testing.T) {
	rq := New("panic")

	done := make(chan struct{})
	require.Nil(t, rq.Run(func() { panic("listener failure") }))
	require.Nil(t, rq.Run(func() { close(done) }))

	waitClosed(t, done)
}

func TestRunQueue_Stop(t *testing.T) {
	// given
	rq := New("stop")
	var ran bool
	require.Nil(t, rq.Run(func() {
		time.Sleep(100 * time.Millisecond)
		ran = true
	}))

	// when
	done := make(chan struct{})
	rq.Stop(func() { close(done) })
	waitClosed(t, done)

	// then
	require.True(t, ran)
	require.Equal(t, ErrStopped, rq.Run(func() {}))

	second := make(chan struct{})
	rq.Stop(func() { close(second) })
	waitClosed(t, second)
	require.Equal(t, "stop", rq.Name())
}

func TestRunQueue_RunConcurrentWithStop(t *testing.T) {
	for round := 0; round < 20; round++ {
		// given
		rq := New("run-stop")
		var accepted, executed int32
		var wg sync.WaitGroup
		start := make(chan struct{})

		for p := 0; p < 4; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for i := 0; i < 100; i++ {
					if rq.Run(func() { atomic.AddInt32(&executed, 1) }) == nil {
						atomic.AddInt32(&accepted, 1)
					}
				}
			}()
		}

		// when
		close(start)
		done := make(chan struct{})
		rq.Stop(func() { close(done) })
		wg.Wait()
		waitClosed(t, done)

		// then
		require.Equal(t, atomic.LoadInt32(&accepted), atomic.LoadInt32(&executed))
		require.Equal(t, 0, rq.Len())
	}
}
