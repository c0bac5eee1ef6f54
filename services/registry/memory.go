package registry

import (
	"database/sql"
	"math"
	"sort"
)

// The functions in this file mirror the growth CTEs in db/query.sql over
// an in-memory batch. They exist so the dashboard can keep computing
// growth from the last fetched rows when the sqlite store cannot be
// opened, and they must produce the same numbers as the SQL path.

func groupKeyOf(r Record, groupBy GroupBy) string {
	if groupBy == GroupByManufacturer {
		return r.Manufacturer
	}
	return r.Category
}

func growthPct(current, prior int64) sql.NullFloat64 {
	if prior <= 0 {
		return sql.NullFloat64{}
	}
	pct := float64(current-prior) * 100.0 / float64(prior)
	// match ROUND(x, 2) on the sql side
	return sql.NullFloat64{Float64: math.Round(pct*100) / 100, Valid: true}
}

func sortedGroups(totals map[string]map[int]int64) []string {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPeriods(periods map[int]int64) []int {
	out := make([]int, 0, len(periods))
	for p := range periods {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// ComputeYoY aggregates the batch into yearly totals per group and
// compares each year against the previous one.
func ComputeYoY(records []Record, groupBy GroupBy) []Growth {
	totals := map[string]map[int]int64{}
	for _, r := range records {
		key := groupKeyOf(r, groupBy)
		if totals[key] == nil {
			totals[key] = map[int]int64{}
		}
		totals[key][r.Year()] += r.Count
	}

	var out []Growth
	for _, key := range sortedGroups(totals) {
		for _, year := range sortedPeriods(totals[key]) {
			g := Growth{
				GroupKey: key,
				Year:     year,
				Current:  totals[key][year],
			}
			if prior, ok := totals[key][year-1]; ok {
				g.Prior = sql.NullInt64{Int64: prior, Valid: true}
				g.GrowthPct = growthPct(g.Current, prior)
			}
			out = append(out, g)
		}
	}
	return out
}

// ComputeQoQ aggregates the batch into quarterly totals per group and
// compares each quarter against its immediate predecessor. Q1's
// predecessor is Q4 of the previous year.
func ComputeQoQ(records []Record, groupBy GroupBy) []Growth {
	totals := map[string]map[int]int64{}
	for _, r := range records {
		key := groupKeyOf(r, groupBy)
		if totals[key] == nil {
			totals[key] = map[int]int64{}
		}
		// quarters indexed continuously so the previous quarter is
		// always period-1 across year boundaries
		totals[key][r.Year()*4+r.Quarter()-1] += r.Count
	}

	var out []Growth
	for _, key := range sortedGroups(totals) {
		for _, period := range sortedPeriods(totals[key]) {
			g := Growth{
				GroupKey: key,
				Year:     period / 4,
				Quarter:  period%4 + 1,
				Current:  totals[key][period],
			}
			if prior, ok := totals[key][period-1]; ok {
				g.Prior = sql.NullInt64{Int64: prior, Valid: true}
				g.GrowthPct = growthPct(g.Current, prior)
			}
			out = append(out, g)
		}
	}
	return out
}
