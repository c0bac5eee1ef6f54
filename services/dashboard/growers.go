package dashboard

import (
	"context"
	"net/http"
	"sort"
	"vahan-dashboard/services/registry"

	"log/slog"
)

// growerEntry ranks a manufacturer by its average growth across the
// quarters of one year, the "top performers" view of /api/top.
type growerEntry struct {
	Manufacturer string  `json:"manufacturer"`
	AvgGrowthPct float64 `json:"avg_growth_pct"`
	MaxGrowthPct float64 `json:"max_growth_pct"`
}

func (s Service) handleTopGrowers(ctx context.Context, w http.ResponseWriter, metric string, limit int64) {
	summary, _ := s.summary(ctx)
	year := int(summary.LatestYear)

	out, err := s.topGrowers(ctx, metric, year, limit)
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"metric":        metric,
			"year":          year,
			"degraded":      false,
			"manufacturers": out,
		})
		return
	}
	slog.WarnContext(ctx, "store read failed, ranking growth from last fetched batch", "err", err)

	out = memoryTopGrowers(s.ingestion.LastBatch(), metric, year, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"metric":        metric,
		"year":          year,
		"degraded":      true,
		"manufacturers": out,
	})
}

func (s Service) topGrowers(ctx context.Context, metric string, year int, limit int64) ([]growerEntry, error) {
	out := []growerEntry{}
	if metric == "qoq" {
		rows, err := s.registry.TopQoqGrowers(ctx, year, limit)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			out = append(out, growerEntry{
				Manufacturer: row.Manufacturer,
				AvgGrowthPct: row.AvgQoqGrowth.Float64,
				MaxGrowthPct: row.MaxQoqGrowth.Float64,
			})
		}
		return out, nil
	}

	rows, err := s.registry.TopYoyGrowers(ctx, year, limit)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out = append(out, growerEntry{
			Manufacturer: row.Manufacturer,
			AvgGrowthPct: row.AvgYoyGrowth.Float64,
			MaxGrowthPct: row.MaxYoyGrowth.Float64,
		})
	}
	return out, nil
}

// memoryTopGrowers approximates the persisted ranking from the last
// fetched batch. It averages per-manufacturer growth points of the
// given year, summed across categories rather than per category like
// the growth_metrics table, which is close enough for a degraded view.
func memoryTopGrowers(batch []registry.Record, metric string, year int, limit int64) []growerEntry {
	var points []registry.Growth
	if metric == "qoq" {
		points = registry.ComputeQoQ(batch, registry.GroupByManufacturer)
	} else {
		points = registry.ComputeYoY(batch, registry.GroupByManufacturer)
	}

	type acc struct {
		sum   float64
		max   float64
		count int
	}
	byName := map[string]*acc{}
	for _, p := range points {
		if p.Year != year || !p.GrowthPct.Valid {
			continue
		}
		a := byName[p.GroupKey]
		if a == nil {
			a = &acc{max: p.GrowthPct.Float64}
			byName[p.GroupKey] = a
		}
		a.sum += p.GrowthPct.Float64
		a.count++
		if p.GrowthPct.Float64 > a.max {
			a.max = p.GrowthPct.Float64
		}
	}

	out := []growerEntry{}
	for name, a := range byName {
		out = append(out, growerEntry{
			Manufacturer: name,
			AvgGrowthPct: a.sum / float64(a.count),
			MaxGrowthPct: a.max,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgGrowthPct != out[j].AvgGrowthPct {
			return out[i].AvgGrowthPct > out[j].AvgGrowthPct
		}
		return out[i].Manufacturer < out[j].Manufacturer
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}
