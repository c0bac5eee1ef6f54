package dashboard

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/services/ingestion"
	"vahan-dashboard/services/registry"

	"log/slog"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("could not encode response", "err", err)
	}
}

func filterFromQuery(r *http.Request) registry.Filter {
	q := r.URL.Query()
	startYear, _ := strconv.Atoi(q.Get("start_year"))
	endYear, _ := strconv.Atoi(q.Get("end_year"))
	return registry.Filter{
		StartYear:    startYear,
		EndYear:      endYear,
		Category:     q.Get("category"),
		Manufacturer: q.Get("manufacturer"),
	}
}

func (s Service) handleTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleTrends")
	defer span.End()

	filter := filterFromQuery(r)

	// the unfiltered feed is the common case, let sqlite aggregate it
	if filter == (registry.Filter{}) {
		rows, err := s.registry.CategoryTotals(ctx)
		if err == nil {
			points := make([]trendPoint, 0, len(rows))
			for _, row := range rows {
				points = append(points, trendPoint{
					Period:   registry.Growth{Year: int(row.Year), Quarter: int(row.Quarter)}.Period(),
					Category: row.VehicleCategory,
					Total:    row.Total,
				})
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"degraded": false,
				"points":   points,
			})
			return
		}
		slog.WarnContext(ctx, "store read failed, serving last fetched batch", "err", err)
	}

	records, degraded := s.records(ctx, filter)
	writeJSON(w, http.StatusOK, map[string]any{
		"degraded": degraded,
		"points":   trendSeries(records),
	})
}

// growthPoint is the wire shape of one period-over-period comparison.
// Prior and GrowthPct are null when the prior period is missing or had
// no registrations.
type growthPoint struct {
	GroupKey  string   `json:"group_key"`
	Period    string   `json:"period"`
	Current   int64    `json:"current"`
	Prior     *int64   `json:"prior"`
	GrowthPct *float64 `json:"growth_pct"`
}

func growthPoints(in []registry.Growth) []growthPoint {
	out := make([]growthPoint, 0, len(in))
	for _, g := range in {
		p := growthPoint{
			GroupKey: g.GroupKey,
			Period:   g.Period(),
			Current:  g.Current,
		}
		if g.Prior.Valid {
			prior := g.Prior.Int64
			p.Prior = &prior
		}
		if g.GrowthPct.Valid {
			pct := g.GrowthPct.Float64
			p.GrowthPct = &pct
		}
		out = append(out, p)
	}
	return out
}

func (s Service) handleGrowth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleGrowth")
	defer span.End()

	q := r.URL.Query()

	metric := q.Get("metric")
	if metric != "yoy" && metric != "qoq" {
		metric = "yoy"
	}
	groupBy := registry.GroupByCategory
	if q.Get("group_by") == string(registry.GroupByManufacturer) {
		groupBy = registry.GroupByManufacturer
	}

	points, degraded := s.growth(ctx, metric, groupBy)
	writeJSON(w, http.StatusOK, map[string]any{
		"metric":   metric,
		"group_by": string(groupBy),
		"degraded": degraded,
		"points":   growthPoints(points),
	})
}

func (s Service) handleTop(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleTop")
	defer span.End()

	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit <= 0 {
		limit = 10
	}

	// metric=yoy|qoq ranks by average growth instead of raw volume
	if metric := q.Get("metric"); metric == "yoy" || metric == "qoq" {
		s.handleTopGrowers(ctx, w, metric, limit)
		return
	}

	type entry struct {
		Manufacturer string `json:"manufacturer"`
		Total        int64  `json:"total"`
	}

	rows, err := s.registry.TopManufacturers(ctx, limit)
	if err == nil {
		out := make([]entry, 0, len(rows))
		for _, row := range rows {
			out = append(out, entry{Manufacturer: row.Manufacturer, Total: row.Total})
		}
		writeJSON(w, http.StatusOK, map[string]any{"degraded": false, "manufacturers": out})
		return
	}
	slog.WarnContext(ctx, "store read failed, serving last fetched batch", "err", err)

	totals := manufacturerTotals(s.ingestion.LastBatch())
	if int64(len(totals)) > limit {
		totals = totals[:limit]
	}
	out := make([]entry, 0, len(totals))
	for _, t := range totals {
		out = append(out, entry{Manufacturer: t.name, Total: t.total})
	}
	writeJSON(w, http.StatusOK, map[string]any{"degraded": true, "manufacturers": out})
}

func (s Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleSummary")
	defer span.End()

	summary, degraded := s.summary(ctx)
	status := s.ingestion.Status()
	writeJSON(w, http.StatusOK, summaryResponse{
		Degraded:           degraded,
		Origin:             string(status.Origin),
		RefreshedAt:        status.RefreshedAt,
		TotalRecords:       summary.TotalRecords,
		TotalRegistrations: summary.TotalRegistrations,
		Manufacturers:      summary.Manufacturers,
		Categories:         summary.Categories,
		EarliestYear:       summary.EarliestYear,
		LatestYear:         summary.LatestYear,
	})
}

func (s Service) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleExport")
	defer span.End()

	records, _ := s.records(ctx, filterFromQuery(r))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="vahan_registrations.csv"`)
	err := ingestion.WriteCSV(csv.NewWriter(w), records)
	if err != nil {
		slog.WarnContext(ctx, "could not stream csv export", "err", err)
	}
}

func (s Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleRefresh")
	defer span.End()

	q := r.URL.Query()
	startYear, _ := strconv.Atoi(q.Get("start_year"))
	endYear, _ := strconv.Atoi(q.Get("end_year"))

	status, err := s.ingestion.Refresh(ctx, vahan.Range{StartYear: startYear, EndYear: endYear})
	if err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"origin":         string(status.Origin),
		"rows":           status.Rows,
		"store_degraded": status.StoreDegraded,
		"refreshed_at":   status.RefreshedAt,
	})
}
