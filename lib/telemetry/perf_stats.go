package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var perfMeter = otel.Meter("vahan.perf")

var (
	cpuPercentGauge, _  = perfMeter.Float64Gauge("cpu_percent")
	heapMbGauge, _      = perfMeter.Int64Gauge("heap_alloc_mb")
	liveObjectsGauge, _ = perfMeter.Int64Gauge("live_objects")
	goroutinesGauge, _  = perfMeter.Int64Gauge("goroutines")
)

const perfSampleInterval = time.Second * 30

// InstrumentPerfStats samples process health for the long-running
// dashboard server until the context is cancelled. The cpu reading
// averages over a full minute, the serve workload is bursty around
// refreshes and an instant reading would mostly capture idle time.
func InstrumentPerfStats(ctx context.Context) {
	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(perfSampleInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)
				heapMbGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
				liveObjectsGauge.Record(ctx, int64(memStats.Mallocs-memStats.Frees))
				goroutinesGauge.Record(ctx, int64(runtime.NumGoroutine()))

				usage, err := cpu.Percent(time.Minute, false)
				if err != nil || len(usage) == 0 {
					slog.Warn("could not read cpu usage", "err", err)
					continue
				}
				cpuPercentGauge.Record(ctx, usage[0])
			case <-ctx.Done():
				return
			}
		}
	}()
}
