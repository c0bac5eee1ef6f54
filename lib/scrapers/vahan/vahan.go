package vahan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"vahan-dashboard/lib/restyutil"
	"vahan-dashboard/services/registry"

	"github.com/go-resty/resty/v2"
)

// the public report view of the Vahan dashboard
const DefaultBaseUrl = "https://vahan.parivahan.gov.in/vahan4dashboard/vahan/view/reportview.xhtml"

// Both failure modes map to the same recovery, the split only exists so
// logs say whether the portal was down or whether it changed under us.
var (
	ErrSourceUnavailable      = errors.New("vahan portal unavailable")
	ErrSourceStructureChanged = errors.New("vahan report structure changed")
)

type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Range bounds the years a fetch should cover, inclusive.
type Range struct {
	StartYear int
	EndYear   int
}

type ClientOptions struct {
	// if unspecified, defaults to the public report view
	BaseUrl string
	// if unspecified, defaults to 30s
	Timeout time.Duration
	// directory to write per-request http snapshots to,
	// if unspecified snapshots are disabled
	SnapshotDir string
}

type Client struct {
	http    *resty.Client
	baseUrl string
}

func NewClient(opts ClientOptions) Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	http := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	if opts.SnapshotDir != "" {
		restyutil.InstrumentClient(http, tracer, restyutil.NewFilesystemOutput(opts.SnapshotDir))
	}

	return Client{
		http:    http,
		baseUrl: baseUrl,
	}
}

// Fetch retrieves registration rows for the requested year range. On any
// failure, unreachable portal, changed markup, empty result, it
// substitutes the bundled sample dataset so downstream always gets a
// non-empty, well-formed batch. The returned Origin says which one you
// got.
func (c Client) Fetch(ctx context.Context, r Range) ([]registry.Record, Origin, error) {
	records, err := c.scrape(ctx, r)
	if err != nil {
		slog.WarnContext(
			ctx, "live scrape failed, substituting bundled sample data",
			"err", err,
		)
		return FallbackRecords(r), OriginFallback, nil
	}
	if len(records) == 0 {
		slog.WarnContext(ctx, "live scrape returned no rows, substituting bundled sample data")
		return FallbackRecords(r), OriginFallback, nil
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			slog.WarnContext(
				ctx, "live scrape produced a malformed row, substituting bundled sample data",
				"err", err,
			)
			return FallbackRecords(r), OriginFallback, nil
		}
	}

	slog.InfoContext(ctx, "scraped live registration rows", "rows", len(records))
	return records, OriginLive, nil
}

func (c Client) scrape(ctx context.Context, r Range) ([]registry.Record, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("fromYear", fmt.Sprintf("%d", r.StartYear)).
		SetQueryParam("toYear", fmt.Sprintf("%d", r.EndYear)).
		Get(c.baseUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: status %d", ErrSourceUnavailable, res.StatusCode())
	}

	records, err := ParseReport(ctx, res.Body())
	if err != nil {
		return nil, err
	}
	return records, nil
}
