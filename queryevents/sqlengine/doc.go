// Package sqlengine provides an instrumented SQL query executor that emits
// query lifecycle events around every statement it executes.
//
// The Executor wraps a database connection (pgxpool.Pool, sql.DB, or sqlx.DB)
// through a common adapter interface. For every Query or Exec call it:
//
//  1. dispatches a queryevents.BeforeQueryEvent immediately before execution
//  2. executes the statement, measuring the elapsed time
//  3. dispatches exactly one terminal event: queryevents.AfterQueryEvent on
//     success, or queryevents.QueryErrorEvent carrying the originating error
//     on failure
//
// Dispatching, logging and metrics collection are optional capabilities
// configured via functional options; when absent, events are echoed and
// nothing is logged or recorded.
package sqlengine
