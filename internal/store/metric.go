package store

import (
	"context"
	"database/sql/driver"
	"regexp"
	"strings"
	"time"

	"github.com/ngrok/sqlmw"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	statementRegex = regexp.MustCompile(`^\s*(\w+)`)

	dbOpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "watchair",
		Name:      "db_op_duration_seconds",
		Help:      "Time spent on a database operation",
		Buckets:   []float64{.005, .025, .1, .5, 1, 5},
	},
		[]string{"op", "statement"},
	)
	dbOpTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "watchair",
		Name:      "db_op_total",
		Help:      "Number of database operations",
	},
		[]string{"op", "status"},
	)
)

func init() {
	prometheus.MustRegister(dbOpLatency, dbOpTotal)
}

// metricInterceptor times the calls made through the postgres driver.
// Statement level operations are labelled with the leading SQL keyword.
type metricInterceptor struct {
	sqlmw.NullInterceptor
}

func (mi *metricInterceptor) ConnBeginTx(ctx context.Context, conn driver.ConnBeginTx, opts driver.TxOptions) (context.Context, driver.Tx, error) {
	start := time.Now()
	tx, err := conn.BeginTx(ctx, opts)
	observe("begin", "", start, err)
	return ctx, tx, err
}

func (mi *metricInterceptor) ConnPrepareContext(ctx context.Context, conn driver.ConnPrepareContext, query string) (context.Context, driver.Stmt, error) {
	start := time.Now()
	stmt, err := conn.PrepareContext(ctx, query)
	observe("prepare", statement(query), start, err)
	return ctx, stmt, err
}

func (mi *metricInterceptor) ConnExecContext(ctx context.Context, conn driver.ExecerContext, query string, args []driver.NamedValue) (driver.Result, error) {
	start := time.Now()
	result, err := conn.ExecContext(ctx, query, args)
	observe("exec", statement(query), start, err)
	return result, err
}

func (mi *metricInterceptor) ConnQueryContext(ctx context.Context, conn driver.QueryerContext, query string, args []driver.NamedValue) (context.Context, driver.Rows, error) {
	start := time.Now()
	rows, err := conn.QueryContext(ctx, query, args)
	observe("query", statement(query), start, err)
	return ctx, rows, err
}

func (mi *metricInterceptor) StmtExecContext(ctx context.Context, conn driver.StmtExecContext, query string, args []driver.NamedValue) (driver.Result, error) {
	start := time.Now()
	result, err := conn.ExecContext(ctx, args)
	observe("stmt_exec", statement(query), start, err)
	return result, err
}

func (mi *metricInterceptor) StmtQueryContext(ctx context.Context, conn driver.StmtQueryContext, query string, args []driver.NamedValue) (context.Context, driver.Rows, error) {
	start := time.Now()
	rows, err := conn.QueryContext(ctx, args)
	observe("stmt_query", statement(query), start, err)
	return ctx, rows, err
}

func (mi *metricInterceptor) TxCommit(ctx context.Context, conn driver.Tx) error {
	start := time.Now()
	err := conn.Commit()
	observe("commit", "", start, err)
	return err
}

func (mi *metricInterceptor) TxRollback(ctx context.Context, conn driver.Tx) error {
	start := time.Now()
	err := conn.Rollback()
	observe("rollback", "", start, err)
	return err
}

func statement(query string) string {
	matches := statementRegex.FindStringSubmatch(query)
	if len(matches) < 2 {
		return "unknown"
	}
	return strings.ToLower(matches[1])
}

func observe(op, stmt string, start time.Time, err error) {
	status := "ok"
	if err != nil && err != driver.ErrSkip {
		status = "error"
	}
	dbOpTotal.WithLabelValues(op, status).Inc()
	dbOpLatency.WithLabelValues(op, stmt).Observe(time.Since(start).Seconds())
}
