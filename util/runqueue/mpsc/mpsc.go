/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

// Package mpsc implements a lock-free multi-producer single-consumer queue.
package mpsc

import (
	"sync/atomic"
	"unsafe"
)

type node struct {
	next *node
	val  interface{}
}

// Queue is an intrusive Vyukov MPSC queue. Push may be called from any
// goroutine, Pop only from the consumer.
type Queue struct {
	head, tail *node
	stub       node
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	q.head = &q.stub
	q.tail = &q.stub
	return q
}

// Push adds x to the back of the queue.
func (q *Queue) Push(x interface{}) {
	n := &node{val: x}
	prev := (*node)(atomic.SwapPointer((*unsafe.Pointer)(unsafe.Pointer(&q.head)), unsafe.Pointer(n)))
	atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(&prev.next)), unsafe.Pointer(n))
}

// Pop removes the item from the front of the queue or nil if the queue is empty.
func (q *Queue) Pop() interface{} {
	tail := q.tail
	next := (*node)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&tail.next))))
	if next != nil {
		q.tail = next
		v := next.val
		next.val = nil
		return v
	}
	return nil
}

// Empty tells whether the queue has no pending items.
// Like Pop, it must only be called from the consumer.
func (q *Queue) Empty() bool {
	tail := q.tail
	next := atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&tail.next)))
	return next == nil
}
