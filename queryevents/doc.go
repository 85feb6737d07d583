// Package queryevents provides core abstractions and types for observing
// the lifecycle of SQL query execution.
//
// This package defines the fundamental contracts and value objects used
// across different execution engines, including the three lifecycle events,
// the event dispatch capability, and the logging capability.
//
// A query executor emits one BeforeQueryEvent immediately before executing
// a statement, and then exactly one of:
//   - AfterQueryEvent: the statement succeeded, carrying the elapsed time
//   - QueryErrorEvent: the statement failed, carrying the originating error
//
// Key types:
//   - BeforeQueryEvent, AfterQueryEvent, QueryErrorEvent: immutable snapshots of one query attempt
//   - Params: the ordered bound parameters of a statement
//   - EventDispatcher: hands events to interested observers
//   - Logger: leveled structured logging contract
//
// Common usage pattern:
//
//	before := queryevents.BuildBeforeQueryEvent(sqlQuery, queryevents.Params{queryevents.P("id", bookID)})
//	dispatcher.Dispatch(before)
//
//	start := time.Now()
//	rows, err := db.QueryContext(ctx, sqlQuery, params.Values()...)
//	if err != nil {
//		dispatcher.Dispatch(queryevents.BuildQueryErrorEvent(sqlQuery, params, err))
//		return err
//	}
//	dispatcher.Dispatch(queryevents.BuildAfterQueryEvent(sqlQuery, params, time.Since(start)))
//
// When no dispatcher or logger is configured, EchoDispatcher and NullLogger
// are the degenerate defaults: both are correct implementations of their
// contracts with no observable effect.
package queryevents
