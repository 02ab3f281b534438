package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rmp_rag"

// request outcomes recorded by the chat handler
const (
	OutcomeOK           = "ok"
	OutcomeBadRequest   = "bad_request"
	OutcomeUpstream     = "upstream_error"
	OutcomeAborted      = "aborted"
	OutcomeDisconnected = "client_disconnected"
)

// pipeline stages timed by the agent
const (
	StageEmbed  = "embed"
	StageSearch = "search"
	StageRank   = "rank"
	StageStream = "stream"
)

var (
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Chat requests by outcome.",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each recommendation pipeline stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	RelayedChunks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relayed_chunks_total",
		Help:      "Completion chunks written to clients.",
	})

	CandidatesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_candidates",
		Help:      "Candidates returned per vector search.",
		Buckets:   prometheus.LinearBuckets(0, 2, 11),
	})
)

// exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
