package registry

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	CategoryTwoWheeler   = "2W"
	CategoryThreeWheeler = "3W"
	CategoryFourWheeler  = "4W"
)

var Categories = []string{
	CategoryTwoWheeler,
	CategoryThreeWheeler,
	CategoryFourWheeler,
}

// Record is one registration count for a (date, category, manufacturer)
// cell of the Vahan report. Year and quarter are derived from the date,
// never stored independently of it.
type Record struct {
	Date         time.Time
	Category     string
	Manufacturer string
	Count        int64
}

func (r Record) Year() int {
	return r.Date.Year()
}

func (r Record) Quarter() int {
	return QuarterOf(r.Date)
}

func (r Record) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("record has no date")
	}
	if r.Manufacturer == "" {
		return fmt.Errorf("record has no manufacturer")
	}
	if r.Count < 0 {
		return fmt.Errorf("negative registration count %d for %q", r.Count, r.Manufacturer)
	}
	for _, c := range Categories {
		if r.Category == c {
			return nil
		}
	}
	return fmt.Errorf("unknown vehicle category %q", r.Category)
}

// Filter narrows a Query. Zero values mean "everything": an EndYear of 0
// is treated as unbounded, empty strings match all categories and
// manufacturers.
type Filter struct {
	StartYear    int
	EndYear      int
	Category     string
	Manufacturer string
}

type GroupBy string

const (
	GroupByCategory     GroupBy = "category"
	GroupByManufacturer GroupBy = "manufacturer"
)

// Growth is one period-over-period comparison for a group. Quarter is 0
// for year-over-year points. GrowthPct is invalid when the prior period
// is missing or had a zero total, growth against nothing is undefined,
// not infinite.
type Growth struct {
	GroupKey  string
	Year      int
	Quarter   int
	Current   int64
	Prior     sql.NullInt64
	GrowthPct sql.NullFloat64
}

func (g Growth) Period() string {
	if g.Quarter == 0 {
		return fmt.Sprintf("%d", g.Year)
	}
	return fmt.Sprintf("%d-Q%d", g.Year, g.Quarter)
}
