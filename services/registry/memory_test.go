package registry

import (
	"testing"
	"time"
	"vahan-dashboard/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func rec(year int, quarter int, category, manufacturer string, count int64) Record {
	return Record{
		Date:         timezone.Date(year, time.Month((quarter-1)*3+1), 1),
		Category:     category,
		Manufacturer: manufacturer,
		Count:        count,
	}
}

func TestComputeYoYGrowthPct(t *testing.T) {
	records := []Record{
		rec(2022, 1, CategoryTwoWheeler, "Hero MotoCorp", 100),
		rec(2023, 1, CategoryTwoWheeler, "Hero MotoCorp", 150),
	}

	out := ComputeYoY(records, GroupByCategory)
	require.Len(t, out, 2)

	// first year in the dataset has no prior counterpart
	require.Equal(t, "2W", out[0].GroupKey)
	require.Equal(t, 2022, out[0].Year)
	require.False(t, out[0].Prior.Valid)
	require.False(t, out[0].GrowthPct.Valid)

	require.Equal(t, 2023, out[1].Year)
	require.True(t, out[1].GrowthPct.Valid)
	require.Equal(t, 50.0, out[1].GrowthPct.Float64)
}

func TestComputeYoYZeroPriorIsSentinel(t *testing.T) {
	records := []Record{
		rec(2022, 1, CategoryThreeWheeler, "Piaggio", 0),
		rec(2023, 1, CategoryThreeWheeler, "Piaggio", 20),
	}

	out := ComputeYoY(records, GroupByCategory)
	require.Len(t, out, 2)
	require.True(t, out[1].Prior.Valid)
	require.Equal(t, int64(0), out[1].Prior.Int64)
	require.False(t, out[1].GrowthPct.Valid, "zero prior must stay undefined, not +Inf")
}

func TestComputeQoQZeroPriorIsSentinel(t *testing.T) {
	records := []Record{
		rec(2023, 1, CategoryFourWheeler, "Tata Motors", 0),
		rec(2023, 2, CategoryFourWheeler, "Tata Motors", 20),
	}

	out := ComputeQoQ(records, GroupByCategory)
	require.Len(t, out, 2)
	require.False(t, out[1].GrowthPct.Valid)
}

func TestComputeQoQCrossesYearBoundary(t *testing.T) {
	records := []Record{
		rec(2022, 4, CategoryTwoWheeler, "Honda", 200),
		rec(2023, 1, CategoryTwoWheeler, "Honda", 300),
	}

	out := ComputeQoQ(records, GroupByManufacturer)
	require.Len(t, out, 2)

	q1 := out[1]
	require.Equal(t, 2023, q1.Year)
	require.Equal(t, 1, q1.Quarter)
	require.True(t, q1.Prior.Valid)
	require.Equal(t, int64(200), q1.Prior.Int64)
	require.Equal(t, 50.0, q1.GrowthPct.Float64)
}

func TestComputeGroupByManufacturerSumsCategories(t *testing.T) {
	records := []Record{
		rec(2022, 1, CategoryTwoWheeler, "Bajaj Auto", 60),
		rec(2022, 1, CategoryThreeWheeler, "Bajaj Auto", 40),
		rec(2023, 1, CategoryTwoWheeler, "Bajaj Auto", 120),
		rec(2023, 1, CategoryThreeWheeler, "Bajaj Auto", 30),
	}

	out := ComputeYoY(records, GroupByManufacturer)
	require.Len(t, out, 2)
	require.Equal(t, int64(100), out[0].Current)
	require.Equal(t, int64(150), out[1].Current)
	require.Equal(t, 50.0, out[1].GrowthPct.Float64)
}

func TestComputeIsIdempotent(t *testing.T) {
	records := []Record{
		rec(2022, 1, CategoryTwoWheeler, "Hero MotoCorp", 100),
		rec(2022, 3, CategoryTwoWheeler, "Hero MotoCorp", 110),
		rec(2023, 1, CategoryFourWheeler, "Maruti Suzuki", 90),
		rec(2023, 2, CategoryFourWheeler, "Maruti Suzuki", 95),
	}

	first := ComputeQoQ(records, GroupByCategory)
	second := ComputeQoQ(records, GroupByCategory)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("recompute diverged (-first +second):\n%s", diff)
	}

	firstYoY := ComputeYoY(records, GroupByManufacturer)
	secondYoY := ComputeYoY(records, GroupByManufacturer)
	if diff := cmp.Diff(firstYoY, secondYoY); diff != "" {
		t.Fatalf("recompute diverged (-first +second):\n%s", diff)
	}
}
