package vahan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vahan-dashboard/lib/telemetry"
	"vahan-dashboard/services/registry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const reportPage = `
<html><body>
<div id="filters"><table><tr><td>From</td><td>To</td></tr></table></div>
<table id="regReport">
  <thead>
    <tr><th>Date</th><th>Vehicle Category</th><th>Maker</th><th>Registrations</th></tr>
  </thead>
  <tbody>
    <tr><td>01-Apr-2023</td><td>2W</td><td>HERO MOTOCORP</td><td>1,20,450</td></tr>
    <tr><td>2023-04-01</td><td>Three Wheeler</td><td>Bajaj Auto</td><td>8450</td></tr>
  </tbody>
</table>
</body></html>`

func setupTest(t *testing.T) (context.Context, func()) {
	cleanup := telemetry.SetupForTesting("lib/scrapers/vahan")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	return ctx, func() {
		cancel()
		cleanup()
	}
}

func TestFetchParsesLiveReport(t *testing.T) {
	ctx, cleanup := setupTest(t)
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(reportPage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	records, origin, err := client.Fetch(ctx, Range{StartYear: 2023, EndYear: 2023})
	require.NoError(t, err)
	require.Equal(t, OriginLive, origin)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, registry.CategoryTwoWheeler, first.Category)
	require.Equal(t, "HERO MOTOCORP", first.Manufacturer)
	require.Equal(t, int64(120450), first.Count)
	require.Equal(t, 2023, first.Year())
	require.Equal(t, 2, first.Quarter(), "april belongs to the second calendar quarter")

	require.Equal(t, registry.CategoryThreeWheeler, records[1].Category)
	require.Equal(t, int64(8450), records[1].Count)
}

func TestFetchFallsBackWhenUnreachable(t *testing.T) {
	ctx, cleanup := setupTest(t)
	defer cleanup()

	// a server that is already closed refuses connections
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, Timeout: time.Second})
	records, origin, err := client.Fetch(ctx, Range{StartYear: 2022, EndYear: 2024})
	require.NoError(t, err)
	require.Equal(t, OriginFallback, origin)
	require.NotEmpty(t, records)
	for _, r := range records {
		require.NoError(t, r.Validate())
	}
}

func TestFetchFallsBackOnChangedMarkup(t *testing.T) {
	ctx, cleanup := setupTest(t)
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table><tr><th>Totally</th><th>Different</th></tr></table></body></html>`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	records, origin, err := client.Fetch(ctx, Range{StartYear: 2022, EndYear: 2024})
	require.NoError(t, err)
	require.Equal(t, OriginFallback, origin)
	require.NotEmpty(t, records)
}

func TestFetchFallsBackOnServerError(t *testing.T) {
	ctx, cleanup := setupTest(t)
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, origin, err := client.Fetch(ctx, Range{})
	require.NoError(t, err)
	require.Equal(t, OriginFallback, origin)
}

func TestParseReportRejectsMissingColumns(t *testing.T) {
	ctx, cleanup := setupTest(t)
	defer cleanup()

	_, err := ParseReport(ctx, []byte(`<table><tr><th>Date</th><th>Maker</th></tr></table>`))
	require.ErrorIs(t, err, ErrSourceStructureChanged)
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("12,34,567")
	require.NoError(t, err)
	require.Equal(t, int64(1234567), n)

	_, err = ParseCount("n/a")
	require.Error(t, err)
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{"2023-04-01", "01-Apr-2023", "01/04/2023"} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		require.Equal(t, 2023, d.Year())
		require.Equal(t, time.April, d.Month())
	}
}

func TestFallbackRecordsDeterministic(t *testing.T) {
	r := Range{StartYear: 2022, EndYear: 2024}
	first := FallbackRecords(r)
	second := FallbackRecords(r)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("fallback dataset is not deterministic (-first +second):\n%s", diff)
	}

	// 3 categories x 5 manufacturers x 3 years x 4 quarters
	require.Len(t, first, 180)
	for _, rec := range first {
		require.NoError(t, rec.Validate())
		require.Positive(t, rec.Count)
	}
}
