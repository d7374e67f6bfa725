// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

var (
	// generationsTotal counts generation calls by outcome ("ok", "aborted").
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlist_generations_total",
		Help: "Generation calls by outcome",
	}, []string{"outcome"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlist_generation_duration_seconds",
		Help:    "Generation latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	})

	candidatesPerGeneration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlist_candidates_per_generation",
		Help:    "Candidate count produced per generation call",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10), // 10 to ~2.6M
	})

	// stageAdditions counts candidates added per stage.
	stageAdditions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlist_stage_candidates_total",
		Help: "Candidates added by each generation stage",
	}, []string{"stage"})

	runAuditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordlist_run_audit_dropped_total",
		Help: "Run audit records dropped because the queue was full",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlist_http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordlist_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveGeneration records one generation call.
func ObserveGeneration(st generator.Stats, d time.Duration, aborted bool) {
	outcome := "ok"
	if aborted {
		outcome = "aborted"
	}
	generationsTotal.WithLabelValues(outcome).Inc()
	generationDuration.Observe(d.Seconds())
	if !aborted {
		candidatesPerGeneration.Observe(float64(st.Total))
	}
	for stage, n := range map[string]int{
		"seeds":          st.Seeds,
		"combinations":   st.Combinations,
		"numbers":        st.Numbers,
		"special_chars":  st.SpecialChars,
		"capitalization": st.Capitalization,
		"substitutions":  st.Substitutions,
	} {
		if n > 0 {
			stageAdditions.WithLabelValues(stage).Add(float64(n))
		}
	}
}

func RunAuditDropped() { runAuditDropped.Inc() }

func ObserveHTTP(route string, code int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
