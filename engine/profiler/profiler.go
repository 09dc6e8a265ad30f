package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks update rate, per-update latency, and memory statistics for
// performance monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	updateCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// Per-update latency accumulated since the last report.
	totalLatency time.Duration
	maxLatency   time.Duration
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
}

// Observe records the wall-clock duration of one rig update cycle.
// Feeds the avg/max latency figures in the next report.
//
// Parameters:
//   - d: the duration of the update cycle
func (p *Profiler) Observe(d time.Duration) {
	p.totalLatency += d
	if d > p.maxLatency {
		p.maxLatency = d
	}
}

// Tick should be called once per update cycle to track timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: updates/sec, avg/max update latency, heap usage,
// allocation rate, GC count, and total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.updateCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	ups := float64(p.updateCount) / elapsed.Seconds()

	var avgLatencyUs, maxLatencyUs int64
	if p.updateCount > 0 {
		avgLatencyUs = p.totalLatency.Microseconds() / int64(p.updateCount)
		maxLatencyUs = p.maxLatency.Microseconds()
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	gcDelta := gcCount - p.lastGCCount

	log.Printf("[Profiler] Updates: %.2f/s | Latency avg: %d µs, max: %d µs | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (+%d) | Sys: %.2f MB",
		ups, avgLatencyUs, maxLatencyUs, allocMB, allocRateMB, gcCount, gcDelta, sysMB)

	p.updateCount = 0
	p.totalLatency = 0
	p.maxLatency = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
