package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rentals/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedVisit struct {
	ID   uint   `gorm:"primaryKey"`
	Note string `gorm:"size:100"`
}

func disabledConfig() config.TelemetryConfig {
	return config.TelemetryConfig{ServiceName: "rentals-test"}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedVisit{}))
	return db
}

func setupRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, sr
}

func TestInstrumentDB_Disabled(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, InstrumentDB(db, disabledConfig(), "sqlite", nil))

	cfg := disabledConfig()
	cfg.Enabled = true
	require.NoError(t, InstrumentDB(db, cfg, "sqlite", zap.NewNop()))
	_, registered := db.Config.Plugins["otelgorm"]
	assert.False(t, registered)
}

func TestInstrumentDB_RecordsQuerySpans(t *testing.T) {
	db := setupTestDB(t)
	tp, sr := setupRecorder(t)

	cfg := disabledConfig()
	cfg.Enabled = true
	cfg.DBTraceEnabled = true
	require.NoError(t, InstrumentDB(db, cfg, "sqlite", zap.NewNop(), otelgorm.WithTracerProvider(tp)))

	ctx, root := tp.Tracer("test").Start(context.Background(), "root")
	require.NoError(t, db.WithContext(ctx).Create(&tracedVisit{Note: "first"}).Error)
	var found tracedVisit
	require.NoError(t, db.WithContext(ctx).First(&found, "note = ?", "first").Error)
	root.End()

	assert.Greater(t, len(sr.Ended()), 1)
}

func TestAnnotateQuerySpan(t *testing.T) {
	db := setupTestDB(t)
	tp, sr := setupRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now().Add(-time.Second))

	tx := db.WithContext(ctx)
	tx.Statement.Table = "bookings"
	tx.Statement.RowsAffected = 3
	tx.Error = errors.New("constraint violated")
	annotateQuerySpan(tx, SlowQueryThreshold)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	attrs := map[attribute.Key]attribute.Value{}
	for _, a := range ended[0].Attributes() {
		attrs[a.Key] = a.Value
	}
	assert.Equal(t, "bookings", attrs["db.sql.table"].AsString())
	assert.Equal(t, int64(3), attrs["db.rows_affected"].AsInt64())
	assert.True(t, attrs["db.slow_query"].AsBool())
	assert.GreaterOrEqual(t, attrs["db.query_duration_ms"].AsInt64(), int64(1000))
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestAnnotateQuerySpan_IgnoresRecordNotFound(t *testing.T) {
	db := setupTestDB(t)
	tp, sr := setupRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "lookup")
	tx := db.WithContext(ctx)
	tx.Error = gorm.ErrRecordNotFound
	annotateQuerySpan(tx, SlowQueryThreshold)
	span.End()

	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
}

func TestAnnotateQuerySpan_NonRecordingSpan(t *testing.T) {
	db := setupTestDB(t)
	tx := db.WithContext(context.Background())
	assert.NotPanics(t, func() { annotateQuerySpan(tx, SlowQueryThreshold) })
}
