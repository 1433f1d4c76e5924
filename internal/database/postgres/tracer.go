package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const defaultSlowQuery = 200 * time.Millisecond

type traceStartKey struct{}

type traceStart struct {
	at  time.Time
	sql string
}

// queryTracer logs failed statements and statements slower than threshold.
type queryTracer struct {
	logger    *zap.Logger
	threshold time.Duration
}

func newQueryTracer(logger *zap.Logger, threshold time.Duration) *queryTracer {
	if threshold <= 0 {
		threshold = defaultSlowQuery
	}
	return &queryTracer{logger: logger, threshold: threshold}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, traceStart{at: time.Now(), sql: data.SQL})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(traceStartKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)

	switch {
	case data.Err != nil:
		t.logger.Warn("query failed",
			zap.String("sql", start.sql),
			zap.Duration("elapsed", elapsed),
			zap.Error(data.Err),
		)
	case elapsed >= t.threshold:
		t.logger.Warn("slow query",
			zap.String("sql", start.sql),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", data.CommandTag.RowsAffected()),
		)
	}
}
