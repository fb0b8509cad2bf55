// Package metrics records layout sampling results in a Prometheus registry
// and writes them out in the text exposition format.
package metrics

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/blockpath/internal/layout"
)

const namespace = "blockpath"

// Recorder collects per-level layout metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	mu      sync.Mutex
	maxRuns map[int]int

	layouts    *prometheus.CounterVec
	failures   *prometheus.CounterVec
	blocks     *prometheus.HistogramVec
	doubles    *prometheus.CounterVec
	longestRun *prometheus.GaugeVec
}

// NewRecorder creates a recorder whose block histogram covers 0..maxBlocks.
func NewRecorder(maxBlocks int) *Recorder {
	if maxBlocks < 1 {
		maxBlocks = 1
	}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		maxRuns:  make(map[int]int),
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layouts produced, by level.",
		}, []string{"level"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_failures_total",
			Help:      "Layouts that ended in an error, by level.",
		}, []string{"level"}),
		blocks: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_blocks",
			Help:      "Visible ordinary blocks per layout.",
			Buckets:   prometheus.LinearBuckets(0, 5, maxBlocks/5+1),
		}, []string{"level"}),
		doubles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "double_steps_total",
			Help:      "Steps that placed two blocks, by level.",
		}, []string{"level"}),
		longestRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "longest_double_run",
			Help:      "Longest run of consecutive double steps seen, by level.",
		}, []string{"level"}),
	}
	r.registry.MustRegister(r.layouts, r.failures, r.blocks, r.doubles, r.longestRun)
	return r
}

// Observe records one successful layout of lvl.
func (r *Recorder) Observe(lvl int, snap layout.Snapshot) {
	label := strconv.Itoa(lvl)
	r.layouts.WithLabelValues(label).Inc()
	r.blocks.WithLabelValues(label).Observe(float64(snap.BlockCount()))
	r.doubles.WithLabelValues(label).Add(float64(snap.Doubles()))

	run := snap.LongestDoubleRun()
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.maxRuns[lvl]; !ok || run > prev {
		r.maxRuns[lvl] = run
		r.longestRun.WithLabelValues(label).Set(float64(run))
	}
}

// Fail records a layout of lvl that returned an error.
func (r *Recorder) Fail(lvl int) {
	r.failures.WithLabelValues(strconv.Itoa(lvl)).Inc()
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes all metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
