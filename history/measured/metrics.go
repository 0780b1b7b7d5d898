/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package measuredhistory

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	upsertOp = "upsert"
	fetchOp  = "fetch"
	deleteOp = "delete"
	startOp  = "start"
	stopOp   = "stop"
)

var (
	historyOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmppcore",
			Subsystem: "history",
			Name:      "operations_total",
			Help:      "The total number of call history operations.",
		},
		[]string{"type", "success"},
	)
	historyOperationDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "xmppcore",
			Subsystem: "history",
			Name:      "operations_duration_bucket",
			Help:      "Bucketed histogram of call history operation duration.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 24),
		},
		[]string{"type", "success"},
	)
)

func init() {
	prometheus.MustRegister(historyOperations)
	prometheus.MustRegister(historyOperationDurationBucket)
}

func reportOpMetric(opType string, durationInSecs float64, success bool) {
	successStr := strconv.FormatBool(success)
	historyOperations.WithLabelValues(opType, successStr).Inc()
	historyOperationDurationBucket.WithLabelValues(opType, successStr).Observe(durationInSecs)
}
