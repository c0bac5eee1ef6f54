package dashboard

import (
	"context"
	"net/http"
	"sort"
	"vahan-dashboard/services/ingestion"
	"vahan-dashboard/services/registry"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/dashboard")

// Service renders the investor dashboard over whatever data the registry
// holds. Every read degrades to the last fetched in-memory batch when
// the store is unavailable, the page never surfaces a fatal error.
type Service struct {
	registry  registry.Service
	ingestion *ingestion.Service
}

func NewService(reg registry.Service, ing *ingestion.Service) Service {
	return Service{
		registry:  reg,
		ingestion: ing,
	}
}

func (s Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/api/trends", s.handleTrends)
	r.Get("/api/growth", s.handleGrowth)
	r.Get("/api/top", s.handleTop)
	r.Get("/api/summary", s.handleSummary)
	r.Get("/export.csv", s.handleExport)
	r.Post("/refresh", s.handleRefresh)

	return r
}

// records reads the filtered batch from the store, or from the last
// fetched batch if the store cannot serve it. The bool reports whether
// the degraded path was taken.
func (s Service) records(ctx context.Context, f registry.Filter) ([]registry.Record, bool) {
	records, err := s.registry.Query(ctx, f)
	if err == nil {
		return records, false
	}
	slog.WarnContext(ctx, "store read failed, serving last fetched batch", "err", err)

	var out []registry.Record
	for _, r := range s.ingestion.LastBatch() {
		if f.StartYear != 0 && r.Year() < f.StartYear {
			continue
		}
		if f.EndYear != 0 && r.Year() > f.EndYear {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Manufacturer != "" && r.Manufacturer != f.Manufacturer {
			continue
		}
		out = append(out, r)
	}
	return out, true
}

func (s Service) growth(ctx context.Context, metric string, groupBy registry.GroupBy) ([]registry.Growth, bool) {
	var points []registry.Growth
	var err error
	if metric == "qoq" {
		points, err = s.registry.QoQGrowth(ctx, groupBy)
	} else {
		points, err = s.registry.YoYGrowth(ctx, groupBy)
	}
	if err == nil {
		return points, false
	}
	slog.WarnContext(ctx, "store growth query failed, computing in memory", "err", err)

	batch := s.ingestion.LastBatch()
	if metric == "qoq" {
		return registry.ComputeQoQ(batch, groupBy), true
	}
	return registry.ComputeYoY(batch, groupBy), true
}

// trendPoint is one period's total for one category, the feed behind the
// registrations-over-time chart.
type trendPoint struct {
	Period   string `json:"period"`
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

func trendSeries(records []registry.Record) []trendPoint {
	type key struct {
		year     int
		quarter  int
		category string
	}
	totals := map[key]int64{}
	for _, r := range records {
		totals[key{r.Year(), r.Quarter(), r.Category}] += r.Count
	}

	points := make([]trendPoint, 0, len(totals))
	for k, total := range totals {
		points = append(points, trendPoint{
			Period:   registry.Growth{Year: k.year, Quarter: k.quarter}.Period(),
			Category: k.category,
			Total:    total,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Period != points[j].Period {
			return points[i].Period < points[j].Period
		}
		return points[i].Category < points[j].Category
	})
	return points
}
