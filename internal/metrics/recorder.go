// Package metrics collects latency and outcome statistics for outbound
// upstream calls using HDR histograms.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range: 1 microsecond to 1 minute, 3 significant figures.
const (
	histogramMin     = int64(1)
	histogramMax     = int64(60_000_000)
	histogramSigFigs = 3
)

// Recorder aggregates per-endpoint latency histograms and counters.
//
// Recorder is safe for concurrent use. Counters use atomic operations
// and histograms are mutex protected.
type Recorder struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats

	totalCalls  atomic.Int64
	totalErrors atomic.Int64
}

type endpointStats struct {
	hist   *hdrhistogram.Histogram
	calls  int64
	errors int64
}

// EndpointSnapshot is a point-in-time view of one endpoint's stats.
type EndpointSnapshot struct {
	Endpoint string
	Calls    int64
	Errors   int64
	P50      time.Duration
	P95      time.Duration
	P99      time.Duration
	Max      time.Duration
}

// Snapshot is a point-in-time view of all recorded stats.
type Snapshot struct {
	TotalCalls  int64
	TotalErrors int64
	Endpoints   []EndpointSnapshot
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		endpoints: make(map[string]*endpointStats),
	}
}

// Record adds one outbound call observation for the named endpoint.
// Failed calls are counted but their latency still contributes to the
// histogram; a slow failure is as real as a slow success.
func (r *Recorder) Record(endpoint string, latency time.Duration, failed bool) {
	r.totalCalls.Add(1)
	if failed {
		r.totalErrors.Add(1)
	}

	micros := latency.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.endpoints[endpoint]
	if !ok {
		stats = &endpointStats{
			hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		}
		r.endpoints[endpoint] = stats
	}

	// RecordValue only fails for out-of-range values, which are clamped above
	_ = stats.hist.RecordValue(micros)
	stats.calls++
	if failed {
		stats.errors++
	}
}

// Snapshot returns the current aggregated view, endpoints sorted by name.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		TotalCalls:  r.totalCalls.Load(),
		TotalErrors: r.totalErrors.Load(),
	}

	for name, stats := range r.endpoints {
		snap.Endpoints = append(snap.Endpoints, EndpointSnapshot{
			Endpoint: name,
			Calls:    stats.calls,
			Errors:   stats.errors,
			P50:      time.Duration(stats.hist.ValueAtQuantile(50)) * time.Microsecond,
			P95:      time.Duration(stats.hist.ValueAtQuantile(95)) * time.Microsecond,
			P99:      time.Duration(stats.hist.ValueAtQuantile(99)) * time.Microsecond,
			Max:      time.Duration(stats.hist.Max()) * time.Microsecond,
		})
	}

	sort.Slice(snap.Endpoints, func(i, j int) bool {
		return snap.Endpoints[i].Endpoint < snap.Endpoints[j].Endpoint
	})

	return snap
}
