package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/rentals/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SlowQueryThreshold marks database spans that took longer than this
const SlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// InstrumentDB registers otelgorm on db plus callbacks that annotate each
// span with the table, rows affected and slow query marker. It is a no-op
// unless telemetry and DB tracing are both enabled.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger, extra ...otelgorm.Option) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if !cfg.MetricsEnabled {
		opts = append(opts, otelgorm.WithoutMetrics())
	}
	opts = append(opts, extra...)

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := registerQueryCallbacks(db, SlowQueryThreshold); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", dbSystem),
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
	)
	return nil
}

func registerQueryCallbacks(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateQuerySpan(tx, threshold) }

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("rentals:before_create", before),
		cb.Create().After("gorm:create").Register("rentals:after_create", after),
		cb.Query().Before("gorm:query").Register("rentals:before_query", before),
		cb.Query().After("gorm:query").Register("rentals:after_query", after),
		cb.Update().Before("gorm:update").Register("rentals:before_update", before),
		cb.Update().After("gorm:update").Register("rentals:after_update", after),
		cb.Delete().Before("gorm:delete").Register("rentals:before_delete", before),
		cb.Delete().After("gorm:delete").Register("rentals:after_delete", after),
		cb.Row().Before("gorm:row").Register("rentals:before_row", before),
		cb.Row().After("gorm:row").Register("rentals:after_row", after),
		cb.Raw().Before("gorm:raw").Register("rentals:before_raw", before),
		cb.Raw().After("gorm:raw").Register("rentals:after_raw", after),
	)
}

func annotateQuerySpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
