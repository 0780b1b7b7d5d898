/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package event

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmppcore",
			Subsystem: "event",
			Name:      "dispatched_total",
			Help:      "The total number of delivered events.",
		},
		[]string{"dispatcher", "class"},
	)
	eventsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmppcore",
			Subsystem: "event",
			Name:      "rejected_total",
			Help:      "The total number of events dropped after shutdown.",
		},
		[]string{"dispatcher", "class"},
	)
	listenerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmppcore",
			Subsystem: "event",
			Name:      "listener_failures_total",
			Help:      "The total number of failed listener invocations.",
		},
		[]string{"dispatcher", "class"},
	)
	eventQueueWait = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "xmppcore",
			Subsystem: "event",
			Name:      "queue_wait_seconds",
			Help:      "Time spent by events waiting to be delivered.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
		},
		[]string{"dispatcher"},
	)
)

func init() {
	prometheus.MustRegister(eventsDispatched)
	prometheus.MustRegister(eventsRejected)
	prometheus.MustRegister(listenerFailures)
	prometheus.MustRegister(eventQueueWait)
}
