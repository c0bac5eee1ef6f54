package dashboard

import (
	"context"
	"sort"
	"time"
	"vahan-dashboard/services/registry"

	"log/slog"
)

// Summary is the headline-numbers block at the top of the page.
type Summary struct {
	TotalRecords       int64
	TotalRegistrations int64
	Manufacturers      int64
	Categories         int64
	EarliestYear       int64
	LatestYear         int64
}

type summaryResponse struct {
	Degraded           bool      `json:"degraded"`
	Origin             string    `json:"origin"`
	RefreshedAt        time.Time `json:"refreshed_at"`
	TotalRecords       int64     `json:"total_records"`
	TotalRegistrations int64     `json:"total_registrations"`
	Manufacturers      int64     `json:"manufacturers"`
	Categories         int64     `json:"categories"`
	EarliestYear       int64     `json:"earliest_year"`
	LatestYear         int64     `json:"latest_year"`
}

func (s Service) summary(ctx context.Context) (Summary, bool) {
	row, err := s.registry.Summary(ctx)
	if err == nil {
		return Summary{
			TotalRecords:       row.TotalRecords,
			TotalRegistrations: row.TotalRegistrations,
			Manufacturers:      row.Manufacturers,
			Categories:         row.Categories,
			EarliestYear:       row.EarliestYear,
			LatestYear:         row.LatestYear,
		}, false
	}
	slog.WarnContext(ctx, "store read failed, summarizing last fetched batch", "err", err)
	return summarize(s.ingestion.LastBatch()), true
}

func summarize(records []registry.Record) Summary {
	var out Summary
	manufacturers := map[string]bool{}
	categories := map[string]bool{}
	for _, r := range records {
		out.TotalRecords++
		out.TotalRegistrations += r.Count
		manufacturers[r.Manufacturer] = true
		categories[r.Category] = true

		year := int64(r.Year())
		if out.EarliestYear == 0 || year < out.EarliestYear {
			out.EarliestYear = year
		}
		if year > out.LatestYear {
			out.LatestYear = year
		}
	}
	out.Manufacturers = int64(len(manufacturers))
	out.Categories = int64(len(categories))
	return out
}

type manufacturerTotal struct {
	name  string
	total int64
}

func manufacturerTotals(records []registry.Record) []manufacturerTotal {
	totals := map[string]int64{}
	for _, r := range records {
		totals[r.Manufacturer] += r.Count
	}

	out := make([]manufacturerTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, manufacturerTotal{name: name, total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].total != out[j].total {
			return out[i].total > out[j].total
		}
		return out[i].name < out[j].name
	})
	return out
}
