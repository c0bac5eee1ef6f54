package ingestion

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/lib/testutil"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/registry"
	"vahan-dashboard/services/registry/db"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type stubFetcher struct {
	records []registry.Record
	origin  vahan.Origin
}

func (f stubFetcher) Fetch(context.Context, vahan.Range) ([]registry.Record, vahan.Origin, error) {
	return f.records, f.origin, nil
}

func rec(date time.Time, category, manufacturer string, count int64) registry.Record {
	return registry.Record{
		Date:         date,
		Category:     category,
		Manufacturer: manufacturer,
		Count:        count,
	}
}

func setupTest(t *testing.T) (registry.Service, *sql.DB, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/ingestion",
		DbSchema: db.Schema,
	})
	return registry.NewService(setup.DB), setup.DB, cleanup
}

func TestRefreshCanonicalizesAndStores(t *testing.T) {
	store, _, cleanup := setupTest(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	date := timezone.Date(2023, time.April, 1)
	fetcher := stubFetcher{
		origin: vahan.OriginLive,
		records: []registry.Record{
			rec(date, registry.CategoryTwoWheeler, "HERO MOTOCORP LTD", 100),
			rec(date, registry.CategoryTwoWheeler, "Hero MotoCorp", 50),
			rec(date, registry.CategoryFourWheeler, "Ola Electric", 10),
		},
	}

	service := NewService(fetcher, store, Options{})
	status, err := service.Refresh(ctx, vahan.Range{})
	require.NoError(t, err)
	require.Equal(t, vahan.OriginLive, status.Origin)
	require.False(t, status.StoreDegraded)
	require.Equal(t, 2, status.Rows, "near-duplicate spellings must merge")

	got, err := store.Query(ctx, registry.Filter{Category: registry.CategoryTwoWheeler})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Hero MotoCorp", got[0].Manufacturer)
	require.Equal(t, int64(150), got[0].Count)

	// a name that matches nothing on the canonical list survives verbatim
	unknown, err := store.Query(ctx, registry.Filter{Category: registry.CategoryFourWheeler})
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	require.Equal(t, "Ola Electric", unknown[0].Manufacturer)
}

func TestRefreshWritesSnapshot(t *testing.T) {
	store, _, cleanup := setupTest(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	dir := t.TempDir()
	fetcher := stubFetcher{
		origin: vahan.OriginFallback,
		records: []registry.Record{
			rec(timezone.Date(2023, time.January, 1), registry.CategoryTwoWheeler, "TVS Motor", 42),
		},
	}

	service := NewService(fetcher, store, Options{SnapshotDir: dir})
	_, err := service.Refresh(ctx, vahan.Range{})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Equal(t,
		"date,year,quarter,vehicle_category,manufacturer,registrations\n"+
			"2023-01-01,2023,1,2W,TVS Motor,42\n",
		string(contents),
	)
}

func TestRefreshDegradesWhenStoreUnavailable(t *testing.T) {
	store, database, cleanup := setupTest(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	require.NoError(t, database.Close())

	fetcher := stubFetcher{
		origin: vahan.OriginLive,
		records: []registry.Record{
			rec(timezone.Date(2023, time.January, 1), registry.CategoryTwoWheeler, "TVS Motor", 42),
		},
	}

	service := NewService(fetcher, store, Options{})
	status, err := service.Refresh(ctx, vahan.Range{})
	require.NoError(t, err, "a dead store must degrade, not fail the refresh")
	require.True(t, status.StoreDegraded)

	batch := service.LastBatch()
	require.Len(t, batch, 1)
	require.Equal(t, "TVS Motor", batch[0].Manufacturer)
}

func TestCanonicalizeBatchPreservesOrder(t *testing.T) {
	date := timezone.Date(2023, time.January, 1)
	out := CanonicalizeBatch([]registry.Record{
		rec(date, registry.CategoryTwoWheeler, "bajaj auto ltd", 10),
		rec(date, registry.CategoryThreeWheeler, "Piaggio", 5),
		rec(date, registry.CategoryTwoWheeler, "BAJAJ AUTO", 20),
	}, DefaultCanonicalManufacturers)

	require.Len(t, out, 2)
	require.Equal(t, "Bajaj Auto", out[0].Manufacturer)
	require.Equal(t, int64(30), out[0].Count)
	require.Equal(t, "Piaggio", out[1].Manufacturer)
}
