package ingestion

import (
	"context"
	"sync"
	"time"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/lib/textutil"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/registry"

	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/ingestion")

// Fetcher yields a registration batch for a year range along with where
// it came from.
type Fetcher interface {
	Fetch(ctx context.Context, r vahan.Range) ([]registry.Record, vahan.Origin, error)
}

// Canonical manufacturer spellings the portal's free-text maker names
// get folded onto. Names that match nothing here survive verbatim.
var DefaultCanonicalManufacturers = []string{
	"Hero MotoCorp",
	"Honda Motorcycle",
	"TVS Motor",
	"Bajaj Auto",
	"Royal Enfield",
	"Mahindra",
	"Piaggio",
	"Force Motors",
	"Atul Auto",
	"Maruti Suzuki",
	"Hyundai",
	"Tata Motors",
	"Honda Cars",
}

type Options struct {
	// directory csv snapshots of each refreshed batch are written to,
	// if unspecified snapshots are disabled
	SnapshotDir string
	// if unspecified, defaults to DefaultCanonicalManufacturers
	CanonicalManufacturers []string
}

// Status describes the outcome of the most recent refresh.
type Status struct {
	Origin        vahan.Origin
	RefreshedAt   time.Time
	Rows          int
	StoreDegraded bool
}

type Service struct {
	fetcher   Fetcher
	store     registry.Service
	opts      Options
	mutex     sync.RWMutex
	status    Status
	lastBatch []registry.Record
}

func NewService(fetcher Fetcher, store registry.Service, opts Options) *Service {
	if opts.CanonicalManufacturers == nil {
		opts.CanonicalManufacturers = DefaultCanonicalManufacturers
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
	}
}

// Refresh pulls a fresh batch, canonicalizes manufacturer names,
// snapshots the batch to csv, and swaps it into the store. A store
// failure degrades rather than fails: the batch is retained in memory
// so reads can still be served from it.
func (s *Service) Refresh(ctx context.Context, r vahan.Range) (Status, error) {
	ctx, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	records, origin, err := s.fetcher.Fetch(ctx, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Status{}, err
	}
	records = CanonicalizeBatch(records, s.opts.CanonicalManufacturers)

	span.SetAttributes(
		attribute.String("origin", string(origin)),
		attribute.Int("rows", len(records)),
	)

	if s.opts.SnapshotDir != "" {
		err = writeSnapshot(s.opts.SnapshotDir, records)
		if err != nil {
			// snapshots are an audit trail, losing one is not worth
			// failing the refresh over
			span.RecordError(err)
			slog.WarnContext(ctx, "could not write csv snapshot", "err", err)
		}
	}

	status := Status{
		Origin:      origin,
		RefreshedAt: timezone.Now(),
		Rows:        len(records),
	}

	err = s.store.Replace(ctx, records)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(
			ctx, "store rejected batch, serving from memory until it recovers",
			"err", err,
		)
		status.StoreDegraded = true
	}

	s.mutex.Lock()
	s.status = status
	s.lastBatch = records
	s.mutex.Unlock()

	slog.InfoContext(
		ctx, "refreshed registration data",
		"origin", origin,
		"rows", len(records),
		"store_degraded", status.StoreDegraded,
	)
	return status, nil
}

// Status reports the outcome of the last refresh, zero value if none ran.
func (s *Service) Status() Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.status
}

// LastBatch returns a copy of the most recently refreshed batch. The
// dashboard computes metrics from this when the store is degraded.
func (s *Service) LastBatch() []registry.Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]registry.Record, len(s.lastBatch))
	copy(out, s.lastBatch)
	return out
}

// CanonicalizeBatch folds near-duplicate manufacturer spellings onto
// canonical ones and merges rows that collapse onto the same
// (date, category, manufacturer) cell by summing their counts. Input
// order of first appearance is preserved.
func CanonicalizeBatch(records []registry.Record, canonical []string) []registry.Record {
	type cell struct {
		date         string
		category     string
		manufacturer string
	}

	canonicalNames := map[string]string{}
	index := map[cell]int{}
	var out []registry.Record

	for _, r := range records {
		name, ok := canonicalNames[r.Manufacturer]
		if !ok {
			name = textutil.Canonicalize(r.Manufacturer, canonical)
			canonicalNames[r.Manufacturer] = name
		}

		key := cell{
			date:         r.Date.Format("2006-01-02"),
			category:     r.Category,
			manufacturer: name,
		}
		if at, seen := index[key]; seen {
			out[at].Count += r.Count
			continue
		}

		r.Manufacturer = name
		index[key] = len(out)
		out = append(out, r)
	}
	return out
}
