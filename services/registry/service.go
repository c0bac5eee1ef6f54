package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/registry/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/registry")

const dateFormat = "2006-01-02"

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// Replace swaps the whole registrations table for the given batch and
// recomputes the derived growth_metrics table, all inside one
// transaction. Readers see either the previous batch or the new one,
// never a mix.
func (s Service) Replace(ctx context.Context, records []Record) error {
	ctx, span := tracer.Start(ctx, "Replace")
	defer span.End()

	span.SetAttributes(attribute.Int("records", len(records)))

	for _, r := range records {
		if err := r.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("refusing batch: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteRegistrations(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	now := timezone.Now().Unix()
	for _, r := range records {
		err = txqry.CreateRegistration(ctx, db.CreateRegistrationParams{
			Date:            r.Date.Format(dateFormat),
			Year:            int64(r.Year()),
			Quarter:         int64(r.Quarter()),
			VehicleCategory: r.Category,
			Manufacturer:    r.Manufacturer,
			Registrations:   r.Count,
			CreatedAt:       now,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = refreshGrowthMetrics(ctx, txqry, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// recomputes the persisted growth_metrics table from whatever the
// registrations table holds within the current transaction
func refreshGrowthMetrics(ctx context.Context, qry *db.Queries, now int64) error {
	detail, err := qry.GrowthDetail(ctx)
	if err != nil {
		return err
	}
	err = qry.DeleteGrowthMetrics(ctx)
	if err != nil {
		return err
	}
	for _, d := range detail {
		err = qry.CreateGrowthMetric(ctx, db.CreateGrowthMetricParams{
			Manufacturer:    d.Manufacturer,
			VehicleCategory: d.VehicleCategory,
			Year:            d.Year,
			Quarter:         d.Quarter,
			Registrations:   d.Total,
			YoyGrowth:       d.YoyGrowth,
			QoqGrowth:       d.QoqGrowth,
			CalculatedAt:    now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func recordFromRow(row db.Registration) (Record, error) {
	date, err := time.ParseInLocation(dateFormat, row.Date, timezone.Location)
	if err != nil {
		return Record{}, fmt.Errorf("corrupt date %q in store: %w", row.Date, err)
	}
	return Record{
		Date:         date,
		Category:     row.VehicleCategory,
		Manufacturer: row.Manufacturer,
		Count:        row.Registrations,
	}, nil
}

func (s Service) Query(ctx context.Context, f Filter) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "Query")
	defer span.End()

	endYear := int64(f.EndYear)
	if endYear == 0 {
		endYear = 9999
	}
	rows, err := s.qry.GetRegistrations(ctx, db.GetRegistrationsParams{
		StartYear:       int64(f.StartYear),
		EndYear:         endYear,
		VehicleCategory: f.Category,
		Manufacturer:    f.Manufacturer,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		r, err := recordFromRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// YoYGrowth compares yearly totals per group against the previous year.
func (s Service) YoYGrowth(ctx context.Context, groupBy GroupBy) ([]Growth, error) {
	ctx, span := tracer.Start(ctx, "YoYGrowth")
	defer span.End()

	span.SetAttributes(attribute.String("group_by", string(groupBy)))

	var out []Growth
	if groupBy == GroupByManufacturer {
		rows, err := s.qry.YoyGrowthByManufacturer(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		for _, r := range rows {
			out = append(out, Growth{
				GroupKey:  r.GroupKey,
				Year:      int(r.Year),
				Current:   r.Total,
				Prior:     r.PriorTotal,
				GrowthPct: r.GrowthPct,
			})
		}
		return out, nil
	}

	rows, err := s.qry.YoyGrowthByCategory(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, r := range rows {
		out = append(out, Growth{
			GroupKey:  r.GroupKey,
			Year:      int(r.Year),
			Current:   r.Total,
			Prior:     r.PriorTotal,
			GrowthPct: r.GrowthPct,
		})
	}
	return out, nil
}

// QoQGrowth compares quarterly totals per group against the immediately
// preceding quarter.
func (s Service) QoQGrowth(ctx context.Context, groupBy GroupBy) ([]Growth, error) {
	ctx, span := tracer.Start(ctx, "QoQGrowth")
	defer span.End()

	span.SetAttributes(attribute.String("group_by", string(groupBy)))

	var out []Growth
	if groupBy == GroupByManufacturer {
		rows, err := s.qry.QoqGrowthByManufacturer(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		for _, r := range rows {
			out = append(out, Growth{
				GroupKey:  r.GroupKey,
				Year:      int(r.Year),
				Quarter:   int(r.Quarter),
				Current:   r.Total,
				Prior:     r.PriorTotal,
				GrowthPct: r.GrowthPct,
			})
		}
		return out, nil
	}

	rows, err := s.qry.QoqGrowthByCategory(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, r := range rows {
		out = append(out, Growth{
			GroupKey:  r.GroupKey,
			Year:      int(r.Year),
			Quarter:   int(r.Quarter),
			Current:   r.Total,
			Prior:     r.PriorTotal,
			GrowthPct: r.GrowthPct,
		})
	}
	return out, nil
}

func (s Service) CategoryTotals(ctx context.Context) ([]db.GetCategoryTotalsRow, error) {
	ctx, span := tracer.Start(ctx, "CategoryTotals")
	defer span.End()

	rows, err := s.qry.GetCategoryTotals(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

func (s Service) TopManufacturers(ctx context.Context, limit int64) ([]db.GetTopManufacturersRow, error) {
	ctx, span := tracer.Start(ctx, "TopManufacturers")
	defer span.End()

	rows, err := s.qry.GetTopManufacturers(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

func (s Service) Summary(ctx context.Context) (db.GetSummaryStatsRow, error) {
	ctx, span := tracer.Start(ctx, "Summary")
	defer span.End()

	row, err := s.qry.GetSummaryStats(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.GetSummaryStatsRow{}, err
	}
	return row, nil
}

func (s Service) GrowthMetrics(ctx context.Context) ([]db.GrowthMetric, error) {
	ctx, span := tracer.Start(ctx, "GrowthMetrics")
	defer span.End()

	rows, err := s.qry.GetGrowthMetrics(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

func (s Service) TopQoqGrowers(ctx context.Context, year int, limit int64) ([]db.GetTopQoqGrowersRow, error) {
	ctx, span := tracer.Start(ctx, "TopQoqGrowers")
	defer span.End()

	rows, err := s.qry.GetTopQoqGrowers(ctx, db.GetTopQoqGrowersParams{
		Year:  int64(year),
		Limit: limit,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}

func (s Service) TopYoyGrowers(ctx context.Context, year int, limit int64) ([]db.GetTopYoyGrowersRow, error) {
	ctx, span := tracer.Start(ctx, "TopYoyGrowers")
	defer span.End()

	rows, err := s.qry.GetTopYoyGrowers(ctx, db.GetTopYoyGrowersParams{
		Year:  int64(year),
		Limit: limit,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rows, nil
}
