package dashboard

import (
	"context"
	"fmt"
	"vahan-dashboard/services/registry"
)

// Insights distills the current dataset into the short investor-facing
// lines the page shows above the tables. Best effort: any metric that
// cannot be computed just drops its line.
func (s Service) insights(ctx context.Context) []string {
	var lines []string

	summary, _ := s.summary(ctx)
	if summary.TotalRecords == 0 {
		return []string{"No registration data loaded yet. Run a refresh to populate the dashboard."}
	}

	if line := s.topGrowerLine(ctx, summary.LatestYear); line != "" {
		lines = append(lines, line)
	}
	if line := overallTrendLine(s.yoyByCategory(ctx), summary.LatestYear); line != "" {
		lines = append(lines, line)
	}
	if line := concentrationLine(ctx, s, summary.TotalRegistrations); line != "" {
		lines = append(lines, line)
	}
	return lines
}

func (s Service) yoyByCategory(ctx context.Context) []registry.Growth {
	points, _ := s.growth(ctx, "yoy", registry.GroupByCategory)
	return points
}

// topGrowerLine prefers the persisted growth_metrics table, which
// averages a manufacturer's quarterly YoY across categories, and falls
// back to yearly growth points when the store cannot serve it.
func (s Service) topGrowerLine(ctx context.Context, latestYear int64) string {
	rows, err := s.registry.TopYoyGrowers(ctx, int(latestYear), 1)
	if err == nil && len(rows) > 0 && rows[0].AvgYoyGrowth.Valid {
		return fmt.Sprintf(
			"%s leads %d YoY growth at %+.1f%%.",
			rows[0].Manufacturer, latestYear, rows[0].AvgYoyGrowth.Float64,
		)
	}

	points, _ := s.growth(ctx, "yoy", registry.GroupByManufacturer)
	return topGrowersLine(points, latestYear)
}

func topGrowersLine(points []registry.Growth, latestYear int64) string {
	type grower struct {
		name string
		pct  float64
	}
	var growers []grower
	for _, p := range points {
		if int64(p.Year) == latestYear && p.GrowthPct.Valid {
			growers = append(growers, grower{name: p.GroupKey, pct: p.GrowthPct.Float64})
		}
	}
	if len(growers) == 0 {
		return ""
	}

	best := growers[0]
	for _, g := range growers[1:] {
		if g.pct > best.pct {
			best = g
		}
	}
	return fmt.Sprintf(
		"%s leads %d YoY growth at %+.1f%%.",
		best.name, latestYear, best.pct,
	)
}

func overallTrendLine(points []registry.Growth, latestYear int64) string {
	var current, prior int64
	for _, p := range points {
		if int64(p.Year) == latestYear && p.Prior.Valid {
			current += p.Current
			prior += p.Prior.Int64
		}
	}
	if prior == 0 {
		return ""
	}

	pct := float64(current-prior) * 100 / float64(prior)
	direction := "grew"
	if pct < 0 {
		direction = "declined"
	}
	return fmt.Sprintf(
		"Overall registrations %s %+.1f%% year over year in %d.",
		direction, pct, latestYear,
	)
}

func concentrationLine(ctx context.Context, s Service, totalRegistrations int64) string {
	if totalRegistrations == 0 {
		return ""
	}

	var topTotal int64
	rows, err := s.registry.TopManufacturers(ctx, 3)
	if err == nil {
		for _, row := range rows {
			topTotal += row.Total
		}
	} else {
		totals := manufacturerTotals(s.ingestion.LastBatch())
		if len(totals) > 3 {
			totals = totals[:3]
		}
		for _, t := range totals {
			topTotal += t.total
		}
	}

	share := float64(topTotal) * 100 / float64(totalRegistrations)
	return fmt.Sprintf(
		"The top 3 manufacturers account for %.1f%% of all registrations.",
		share,
	)
}
