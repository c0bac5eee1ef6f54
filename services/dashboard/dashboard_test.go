package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/lib/testutil"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/ingestion"
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

func testRecords() []registry.Record {
	rec := func(year int, month time.Month, category, manufacturer string, count int64) registry.Record {
		return registry.Record{
			Date:         timezone.Date(year, month, 1),
			Category:     category,
			Manufacturer: manufacturer,
			Count:        count,
		}
	}
	return []registry.Record{
		rec(2022, time.January, registry.CategoryTwoWheeler, "Hero MotoCorp", 100),
		rec(2023, time.January, registry.CategoryTwoWheeler, "Hero MotoCorp", 150),
		rec(2022, time.January, registry.CategoryFourWheeler, "Maruti Suzuki", 50),
		rec(2023, time.January, registry.CategoryFourWheeler, "Maruti Suzuki", 40),
	}
}

func setupDashboard(t *testing.T, origin vahan.Origin) (*httptest.Server, *sql.DB, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/dashboard",
		DbSchema: db.Schema,
	})

	store := registry.NewService(setup.DB)
	ing := ingestion.NewService(stubFetcher{records: testRecords(), origin: origin}, store, ingestion.Options{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	_, err := ing.Refresh(ctx, vahan.Range{})
	require.NoError(t, err)

	server := httptest.NewServer(NewService(store, ing).Router())
	return server, setup.DB, func() {
		server.Close()
		cleanup()
	}
}

func getJSON(t *testing.T, url string, out any) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

func TestPageRenders(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	html, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(html), "Hero MotoCorp")
	require.Contains(t, string(html), "+50.0%")
	require.NotContains(t, string(html), "bundled sample data")
}

func TestPageShowsFallbackNote(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginFallback)
	defer cleanup()

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()

	page, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(page), "bundled sample data")
}

func TestGrowthEndpoint(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	var body struct {
		Metric   string `json:"metric"`
		Degraded bool   `json:"degraded"`
		Points   []struct {
			GroupKey  string   `json:"group_key"`
			Period    string   `json:"period"`
			Current   int64    `json:"current"`
			GrowthPct *float64 `json:"growth_pct"`
		} `json:"points"`
	}
	getJSON(t, server.URL+"/api/growth?metric=yoy&group_by=category", &body)

	require.Equal(t, "yoy", body.Metric)
	require.False(t, body.Degraded)
	require.Len(t, body.Points, 4)

	require.Equal(t, "2W", body.Points[0].GroupKey)
	require.Equal(t, "2022", body.Points[0].Period)
	require.Nil(t, body.Points[0].GrowthPct, "first year has no prior, growth must be null")

	require.Equal(t, "2023", body.Points[1].Period)
	require.NotNil(t, body.Points[1].GrowthPct)
	require.Equal(t, 50.0, *body.Points[1].GrowthPct)
}

func TestTrendsEndpointFilters(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	var body struct {
		Points []struct {
			Period   string `json:"period"`
			Category string `json:"category"`
			Total    int64  `json:"total"`
		} `json:"points"`
	}
	getJSON(t, server.URL+"/api/trends?category=4W", &body)

	require.Len(t, body.Points, 2)
	for _, p := range body.Points {
		require.Equal(t, "4W", p.Category)
	}
	require.Equal(t, "2022-Q1", body.Points[0].Period)
}

func TestExportCSV(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	res, err := http.Get(server.URL + "/export.csv")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, "text/csv", res.Header.Get("Content-Type"))

	contents, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	require.Equal(t, "date,year,quarter,vehicle_category,manufacturer,registrations", lines[0])
	require.Len(t, lines, 5)
	require.Contains(t, string(contents), "2023-01-01,2023,1,2W,Hero MotoCorp,150")
}

func TestRefreshEndpoint(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	res, err := http.Post(server.URL+"/refresh", "", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Origin string `json:"origin"`
		Rows   int    `json:"rows"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "live", body.Origin)
	require.Equal(t, 4, body.Rows)
}

func TestTopGrowersEndpoint(t *testing.T) {
	server, _, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	var yoy struct {
		Metric        string `json:"metric"`
		Year          int    `json:"year"`
		Degraded      bool   `json:"degraded"`
		Manufacturers []struct {
			Manufacturer string  `json:"manufacturer"`
			AvgGrowthPct float64 `json:"avg_growth_pct"`
		} `json:"manufacturers"`
	}
	getJSON(t, server.URL+"/api/top?metric=yoy", &yoy)

	require.Equal(t, "yoy", yoy.Metric)
	require.Equal(t, 2023, yoy.Year)
	require.False(t, yoy.Degraded)
	require.Len(t, yoy.Manufacturers, 2)
	require.Equal(t, "Hero MotoCorp", yoy.Manufacturers[0].Manufacturer)
	require.Equal(t, 50.0, yoy.Manufacturers[0].AvgGrowthPct)
	require.Equal(t, "Maruti Suzuki", yoy.Manufacturers[1].Manufacturer)
	require.Equal(t, -20.0, yoy.Manufacturers[1].AvgGrowthPct)

	// the seeded batch only has first-quarter rows, so no quarter has an
	// immediate predecessor and the qoq ranking is empty rather than an error
	var qoq struct {
		Metric        string `json:"metric"`
		Degraded      bool   `json:"degraded"`
		Manufacturers []struct {
			Manufacturer string `json:"manufacturer"`
		} `json:"manufacturers"`
	}
	getJSON(t, server.URL+"/api/top?metric=qoq", &qoq)
	require.Equal(t, "qoq", qoq.Metric)
	require.False(t, qoq.Degraded)
	require.Empty(t, qoq.Manufacturers)
}

func TestServesFromMemoryWhenStoreDies(t *testing.T) {
	server, database, cleanup := setupDashboard(t, vahan.OriginLive)
	defer cleanup()

	require.NoError(t, database.Close())

	var growth struct {
		Degraded bool `json:"degraded"`
		Points   []struct {
			GrowthPct *float64 `json:"growth_pct"`
		} `json:"points"`
	}
	getJSON(t, server.URL+"/api/growth?metric=yoy&group_by=category", &growth)
	require.True(t, growth.Degraded)
	require.Len(t, growth.Points, 4)

	var summary struct {
		Degraded           bool  `json:"degraded"`
		TotalRegistrations int64 `json:"total_registrations"`
	}
	getJSON(t, server.URL+"/api/summary", &summary)
	require.True(t, summary.Degraded)
	require.Equal(t, int64(340), summary.TotalRegistrations)

	// the page itself must still render
	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}
