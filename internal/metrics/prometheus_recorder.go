package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration    prom.Histogram
	reloads         *prom.CounterVec
	issueCount      *prom.GaugeVec
	includeDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the loader metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "booknav",
			Name:      "load_duration_seconds",
			Help:      "Duration of full book load (parse + resolve + validate)",
			Buckets:   prom.DefBuckets,
		}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "booknav",
			Name:      "reloads_total",
			Help:      "Book reloads by outcome",
		}, []string{"outcome"}),
		issueCount: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "booknav",
			Name:      "issues",
			Help:      "Validation issues in the current tree by severity",
		}, []string{"severity"}),
		includeDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "booknav",
			Name:      "include_fetch_duration_seconds",
			Help:      "Duration of individual include fragment fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}
	reg.MustRegister(pr.loadDuration, pr.reloads, pr.issueCount, pr.includeDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil || p.loadDuration == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncReload(outcome OutcomeLabel) {
	if p == nil || p.reloads == nil {
		return
	}
	p.reloads.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetIssueCount(severity string, n int) {
	if p == nil || p.issueCount == nil {
		return
	}
	p.issueCount.WithLabelValues(severity).Set(float64(n))
}

func (p *PrometheusRecorder) ObserveIncludeFetch(d time.Duration, success bool) {
	if p == nil || p.includeDuration == nil {
		return
	}
	result := "failed"
	if success {
		result = "success"
	}
	p.includeDuration.WithLabelValues(result).Observe(d.Seconds())
}
