package vahan

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"vahan-dashboard/lib/htmlutil"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/registry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/scrapers/vahan")

// header labels the portal has used for each column we care about,
// lowercased and cleaned
var (
	dateHeaders         = []string{"date", "registration date", "month"}
	categoryHeaders     = []string{"vehicle category", "vehicle class", "category"}
	manufacturerHeaders = []string{"maker", "manufacturer", "maker name"}
	countHeaders        = []string{"registrations", "count", "total", "no. of vehicles"}
)

type columnIndexes struct {
	date         int
	category     int
	manufacturer int
	count        int
}

// ParseReport extracts registration rows from a rendered report page.
// The portal renders JSF datatables, so rather than pin a css selector
// to generated ids we look for any table whose header row carries the
// four columns we need.
func ParseReport(ctx context.Context, page []byte) ([]registry.Record, error) {
	_, span := tracer.Start(ctx, "ParseReport")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrSourceStructureChanged, err)
	}

	var records []registry.Record
	var parseErr error
	found := false

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols, ok := headerColumns(table)
		if !ok {
			return true
		}
		found = true
		records, parseErr = parseRows(table, cols)
		return false
	})

	if !found {
		err := fmt.Errorf("%w: no table with the expected report columns", ErrSourceStructureChanged)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if parseErr != nil {
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, parseErr.Error())
		return nil, parseErr
	}

	span.SetAttributes(attribute.Int("rows", len(records)))
	return records, nil
}

func headerColumns(table *goquery.Selection) (columnIndexes, bool) {
	cols := columnIndexes{date: -1, category: -1, manufacturer: -1, count: -1}

	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = table.Find("tr").First()
	}

	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		label := strings.ToLower(htmlutil.CellText(cell))
		switch {
		case matchesHeader(label, dateHeaders):
			cols.date = i
		case matchesHeader(label, categoryHeaders):
			cols.category = i
		case matchesHeader(label, manufacturerHeaders):
			cols.manufacturer = i
		case matchesHeader(label, countHeaders):
			cols.count = i
		}
	})

	ok := cols.date >= 0 && cols.category >= 0 && cols.manufacturer >= 0 && cols.count >= 0
	return cols, ok
}

func matchesHeader(label string, candidates []string) bool {
	for _, c := range candidates {
		if label == c {
			return true
		}
	}
	return false
}

func parseRows(table *goquery.Selection, cols columnIndexes) ([]registry.Record, error) {
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		// no tbody means the header row is the first tr, skip it
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	var records []registry.Record
	var parseErr error
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true
		}

		record, err := parseRow(cells, cols)
		if err != nil {
			parseErr = fmt.Errorf("%w: row %d: %w", ErrSourceStructureChanged, i, err)
			return false
		}
		records = append(records, record)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return records, nil
}

func parseRow(cells *goquery.Selection, cols columnIndexes) (registry.Record, error) {
	max := cols.date
	for _, idx := range []int{cols.category, cols.manufacturer, cols.count} {
		if idx > max {
			max = idx
		}
	}
	if cells.Length() <= max {
		return registry.Record{}, fmt.Errorf("expected at least %d cells, got %d", max+1, cells.Length())
	}

	date, err := ParseDate(htmlutil.CellText(cells.Eq(cols.date)))
	if err != nil {
		return registry.Record{}, err
	}
	count, err := ParseCount(htmlutil.CellText(cells.Eq(cols.count)))
	if err != nil {
		return registry.Record{}, err
	}

	return registry.Record{
		Date:         date,
		Category:     normalizeCategory(htmlutil.CellText(cells.Eq(cols.category))),
		Manufacturer: htmlutil.CellText(cells.Eq(cols.manufacturer)),
		Count:        count,
	}, nil
}

// the portal is inconsistent about date rendering across report types
var dateLayouts = []string{
	"2006-01-02",
	"02-Jan-2006",
	"02/01/2006",
	"Jan-2006",
}

func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, timezone.Location)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// ParseCount reads an indian-formatted integer like "12,34,567".
func ParseCount(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable count %q", s)
	}
	return n, nil
}

func normalizeCategory(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2W", "TWO WHEELER", "TWO-WHEELER":
		return registry.CategoryTwoWheeler
	case "3W", "THREE WHEELER", "THREE-WHEELER":
		return registry.CategoryThreeWheeler
	case "4W", "FOUR WHEELER", "FOUR-WHEELER", "LMV":
		return registry.CategoryFourWheeler
	}
	return strings.ToUpper(strings.TrimSpace(s))
}
