package insights

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "farmkeep_insight_requests_total",
	Help: "AI insight requests, by kind and outcome.",
}, []string{"kind", "outcome"})
