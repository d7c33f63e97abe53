package arena

import (
	"github.com/detailyang/fastrand-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var stats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "arena_stats",
	Help: "Stats about usage of bump arenas",
}, []string{"metric", "name"})

const samplerate = 1024

func shouldReport() bool {
	return fastrand.FastRand()&(samplerate-1) == 0
}

type counters struct {
	allocs   uint64
	failures uint64
	resets   uint64
	bytes    uint64
}

// Stats is a snapshot of arena counters.
type Stats struct {
	Allocs   uint64
	Failures uint64
	Resets   uint64
	Bytes    uint64
	Used     int
	Limit    int
}

func (a *Arena) Stats() Stats {
	return Stats{
		Allocs:   a.stats.allocs,
		Failures: a.stats.failures,
		Resets:   a.stats.resets,
		Bytes:    a.stats.bytes,
		Used:     a.pos,
		Limit:    a.limit,
	}
}

// ReportStats publishes counters of this arena to prometheus. Alloc already
// does this for a sample of calls; owners call it directly at scope end.
func (a *Arena) ReportStats() {
	s := a.Stats()
	stats.WithLabelValues("allocs", a.name).Set(float64(s.Allocs))
	stats.WithLabelValues("failures", a.name).Set(float64(s.Failures))
	stats.WithLabelValues("resets", a.name).Set(float64(s.Resets))
	stats.WithLabelValues("allocated_bytes", a.name).Set(float64(s.Bytes))
	stats.WithLabelValues("used_bytes", a.name).Set(float64(s.Used))
	stats.WithLabelValues("limit_bytes", a.name).Set(float64(s.Limit))
}
