package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/sql-query-events-go/queryevents"
	"github.com/AntonStoeckl/sql-query-events-go/queryevents/internal/adapters"
)

const (
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgSQLExecuted        = "executed sql for: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrDurationMS        = "duration_ms"
	logActionQuery           = "query"
	logActionExec            = "exec"

	metricQueryDuration = "query_duration_seconds"
	metricExecDuration  = "exec_duration_seconds"
	metricQueryErrors   = "query_errors_total"

	labelOperation = "operation"
	labelStatus    = "status"
	operationQuery = "query"
	operationExec  = "exec"
	statusSuccess  = "success"
	statusError    = "error"
)

type queryDuration = time.Duration

// Rows defines the interface for query result rows returned by the Executor.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// Executor executes SQL statements against a database and emits query
// lifecycle events around every execution. It leverages a database adapter
// and supports customizable dispatching, logging and metrics collection.
type Executor struct {
	db               adapters.DBAdapter
	dispatcher       queryevents.EventDispatcher
	logger           queryevents.Logger
	contextualLogger queryevents.ContextualLogger
	metricsCollector queryevents.MetricsCollector
}

// NewExecutorFromPGXPool creates a new Executor using a pgx Pool with optional configuration.
func NewExecutorFromPGXPool(db *pgxpool.Pool, options ...Option) (Executor, error) {
	if db == nil {
		return Executor{}, queryevents.ErrNilDatabaseConnection
	}

	return newExecutor(adapters.NewPGXAdapter(db), options...)
}

// NewExecutorFromSQLDB creates a new Executor using a sql.DB with optional configuration.
func NewExecutorFromSQLDB(db *sql.DB, options ...Option) (Executor, error) {
	if db == nil {
		return Executor{}, queryevents.ErrNilDatabaseConnection
	}

	return newExecutor(adapters.NewSQLAdapter(db), options...)
}

// NewExecutorFromSQLX creates a new Executor using a sqlx.DB with optional configuration.
func NewExecutorFromSQLX(db *sqlx.DB, options ...Option) (Executor, error) {
	if db == nil {
		return Executor{}, queryevents.ErrNilDatabaseConnection
	}

	return newExecutor(adapters.NewSQLXAdapter(db), options...)
}

func newExecutor(db adapters.DBAdapter, options ...Option) (Executor, error) {
	e := Executor{
		db:         db,
		dispatcher: queryevents.EchoDispatcher{},
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Executor{}, err
		}
	}

	return e, nil
}

// Query executes a SQL query with the given bound parameters and returns the result rows.
//
// It dispatches a queryevents.BeforeQueryEvent immediately before execution and
// exactly one of queryevents.AfterQueryEvent (success, with elapsed time) or
// queryevents.QueryErrorEvent (failure, with the originating error) afterwards.
func (e Executor) Query(ctx context.Context, query queryevents.QueryString, params queryevents.Params) (Rows, error) {
	e.dispatch(queryevents.BuildBeforeQueryEvent(query, params))

	start := time.Now()
	rows, queryErr := e.db.Query(ctx, query, params.Values()...)
	duration := time.Since(start)
	e.logQueryWithDuration(ctx, query, logActionQuery, duration)

	if queryErr != nil {
		e.dispatch(queryevents.BuildQueryErrorEvent(query, params, queryErr))
		e.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, query)
		e.recordDurationMetrics(metricQueryDuration, duration, operationQuery, statusError)
		e.recordErrorMetrics(operationQuery)

		return nil, errors.Join(queryevents.ErrQueryingFailed, queryErr)
	}

	e.dispatch(queryevents.BuildAfterQueryEvent(query, params, duration))
	e.recordDurationMetrics(metricQueryDuration, duration, operationQuery, statusSuccess)

	return rows, nil
}

// Exec executes a SQL statement with the given bound parameters and returns the number of affected rows.
//
// It dispatches a queryevents.BeforeQueryEvent immediately before execution and
// exactly one of queryevents.AfterQueryEvent (success, with elapsed time) or
// queryevents.QueryErrorEvent (failure, with the originating error) afterwards.
func (e Executor) Exec(ctx context.Context, query queryevents.QueryString, params queryevents.Params) (int64, error) {
	e.dispatch(queryevents.BuildBeforeQueryEvent(query, params))

	result, duration, execErr := e.executeStatement(ctx, query, params)
	if execErr != nil {
		e.dispatch(queryevents.BuildQueryErrorEvent(query, params, execErr))
		e.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, query)
		e.recordDurationMetrics(metricExecDuration, duration, operationExec, statusError)
		e.recordErrorMetrics(operationExec)

		return 0, errors.Join(queryevents.ErrExecutingFailed, execErr)
	}

	e.dispatch(queryevents.BuildAfterQueryEvent(query, params, duration))
	e.recordDurationMetrics(metricExecDuration, duration, operationExec, statusSuccess)

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		e.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, errors.Join(queryevents.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// executeStatement executes the SQL statement and returns the result with timing information.
func (e Executor) executeStatement(ctx context.Context, query queryevents.QueryString, params queryevents.Params) (
	adapters.DBResult,
	queryDuration,
	error,
) {

	start := time.Now()
	result, execErr := e.db.Exec(ctx, query, params.Values()...)
	duration := time.Since(start)
	e.logQueryWithDuration(ctx, query, logActionExec, duration)

	if execErr != nil {
		return nil, duration, execErr
	}

	return result, duration, nil
}

// dispatch hands an event to the configured dispatcher.
// The returned event is intentionally discarded: the executor works with the
// snapshot it built, observers cannot rewrite the statement being executed.
func (e Executor) dispatch(event queryevents.Event) {
	_ = e.dispatcher.Dispatch(event)
}
