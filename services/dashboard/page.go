package dashboard

import (
	"html/template"
	"net/http"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/services/registry"

	"log/slog"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Vahan Registration Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 64rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
.note { background: #fff3cd; border: 1px solid #ffe69c; padding: 0.5rem 1rem; }
.metrics { display: flex; gap: 2rem; }
.insight { font-style: italic; }
.neg { color: #b02a37; }
.pos { color: #146c43; }
</style>
</head>
<body>
<h1>Vehicle Registration Dashboard</h1>

{{if .SourceNote}}<p class="note">{{.SourceNote}}</p>{{end}}

<div class="metrics">
<p><strong>{{.Summary.TotalRegistrations}}</strong> registrations</p>
<p><strong>{{.Summary.Manufacturers}}</strong> manufacturers</p>
<p><strong>{{.Summary.Categories}}</strong> categories</p>
<p>{{.Summary.EarliestYear}}&ndash;{{.Summary.LatestYear}}</p>
</div>

{{range .Insights}}<p class="insight">{{.}}</p>
{{end}}

<form method="get" action="/">
<label>From <input type="number" name="start_year" value="{{.Filter.StartYear}}"></label>
<label>To <input type="number" name="end_year" value="{{.Filter.EndYear}}"></label>
<label>Category
<select name="category">
<option value="">All</option>
{{range .Categories}}<option value="{{.}}" {{if eq . $.Filter.Category}}selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
<label>Manufacturer <input name="manufacturer" value="{{.Filter.Manufacturer}}"></label>
<button type="submit">Apply</button>
</form>

<h2>Quarterly registrations</h2>
<table>
<tr><th>Period</th><th>Category</th><th>Registrations</th></tr>
{{range .Trends}}<tr><td>{{.Period}}</td><td>{{.Category}}</td><td>{{.Total}}</td></tr>
{{end}}</table>

<h2>Year-over-year growth by category</h2>
<table>
<tr><th>Category</th><th>Year</th><th>Registrations</th><th>YoY</th></tr>
{{range .YoY}}<tr>
<td>{{.GroupKey}}</td><td>{{.Period}}</td><td>{{.Current}}</td>
<td>{{if .GrowthPct.Valid}}<span class="{{if lt .GrowthPct.Float64 0.0}}neg{{else}}pos{{end}}">{{printf "%+.1f%%" .GrowthPct.Float64}}</span>{{else}}&mdash;{{end}}</td>
</tr>
{{end}}</table>

<h2>Top manufacturers</h2>
<table>
<tr><th>Manufacturer</th><th>Registrations</th></tr>
{{range .Top}}<tr><td>{{.Manufacturer}}</td><td>{{.Total}}</td></tr>
{{end}}</table>

<p>
<a href="/export.csv">Export CSV</a> &middot;
<a href="/api/growth?metric=qoq">QoQ feed</a> &middot;
<a href="/api/summary">Summary feed</a>
</p>
</body>
</html>
`))

type topRow struct {
	Manufacturer string
	Total        int64
}

type pageData struct {
	SourceNote string
	Summary    Summary
	Insights   []string
	Filter     registry.Filter
	Categories []string
	Trends     []trendPoint
	YoY        []registry.Growth
	Top        []topRow
}

func (s Service) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handlePage")
	defer span.End()

	filter := filterFromQuery(r)
	records, degradedRecords := s.records(ctx, filter)
	yoy, _ := s.growth(ctx, "yoy", registry.GroupByCategory)
	summary, degradedSummary := s.summary(ctx)

	var top []topRow
	rows, err := s.registry.TopManufacturers(ctx, 10)
	if err == nil {
		for _, row := range rows {
			top = append(top, topRow{Manufacturer: row.Manufacturer, Total: row.Total})
		}
	} else {
		totals := manufacturerTotals(s.ingestion.LastBatch())
		if len(totals) > 10 {
			totals = totals[:10]
		}
		for _, t := range totals {
			top = append(top, topRow{Manufacturer: t.name, Total: t.total})
		}
	}

	data := pageData{
		SourceNote: s.sourceNote(degradedRecords || degradedSummary),
		Summary:    summary,
		Insights:   s.insights(ctx),
		Filter:     filter,
		Categories: registry.Categories,
		Trends:     trendSeries(records),
		YoY:        yoy,
		Top:        top,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, data)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "could not render dashboard page", "err", err)
	}
}

func (s Service) sourceNote(storeDegraded bool) string {
	status := s.ingestion.Status()
	switch {
	case status.Origin == vahan.OriginFallback:
		return "The Vahan portal could not be reached. Showing bundled sample data."
	case storeDegraded || status.StoreDegraded:
		return "The local store is unavailable. Showing the last fetched data from memory."
	}
	return ""
}
