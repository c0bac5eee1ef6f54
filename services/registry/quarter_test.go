package registry

import (
	"testing"
	"time"
	"vahan-dashboard/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestQuarterOf(t *testing.T) {
	cases := map[time.Month]int{
		time.January:   1,
		time.March:     1,
		time.April:     2,
		time.June:      2,
		time.July:      3,
		time.September: 3,
		time.October:   4,
		time.December:  4,
	}
	for month, quarter := range cases {
		got := QuarterOf(timezone.Date(2024, month, 15))
		require.Equal(t, quarter, got, "month %s", month)
	}
}
