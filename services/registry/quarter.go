package registry

import "time"

// QuarterOf maps a date onto its calendar quarter: Jan-Mar = Q1,
// Apr-Jun = Q2, Jul-Sep = Q3, Oct-Dec = Q4.
//
// The Vahan portal reports on calendar years, so quarters follow the
// calendar as well, NOT the Indian fiscal year (which would start Q1 in
// April). Everything downstream (the store schema, the growth CTEs, the
// dashboard periods) assumes this mapping.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
