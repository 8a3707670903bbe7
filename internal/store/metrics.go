package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkeep_store_saves_total",
		Help: "Collection saves queued, by collection key.",
	}, []string{"key"})
	flushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkeep_store_flushes_total",
		Help: "Collection writes flushed to the backend, by collection key.",
	}, []string{"key"})
	loadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkeep_store_load_failures_total",
		Help: "Loads that fell back to an empty collection, by collection key.",
	}, []string{"key"})
	writeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkeep_store_write_failures_total",
		Help: "Backend writes that failed, by collection key.",
	}, []string{"key"})
)
