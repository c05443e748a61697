package utils

import (
	"sync/atomic"
	"time"
)

type MongoMetrics struct {
	ActiveConnections int64
	CASConflicts      int64
	CASRetries        int64
	LastCheckTime     time.Time
}

var metrics MongoMetrics

func IncrementActiveConnections() {
	atomic.AddInt64(&metrics.ActiveConnections, 1)
}

func DecrementActiveConnections() {
	atomic.AddInt64(&metrics.ActiveConnections, -1)
}

// IncrementCASConflicts counts optimistic writes that lost their race.
func IncrementCASConflicts() {
	atomic.AddInt64(&metrics.CASConflicts, 1)
}

// IncrementCASRetries counts read-modify-write attempts re-run after a conflict.
func IncrementCASRetries() {
	atomic.AddInt64(&metrics.CASRetries, 1)
}

func GetMongoMetrics() MongoMetrics {
	return MongoMetrics{
		ActiveConnections: atomic.LoadInt64(&metrics.ActiveConnections),
		CASConflicts:      atomic.LoadInt64(&metrics.CASConflicts),
		CASRetries:        atomic.LoadInt64(&metrics.CASRetries),
		LastCheckTime:     time.Now(),
	}
}
