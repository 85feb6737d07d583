// Package adapters provides database adapter implementations for the instrumented query engine.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the engine and the journal sink to work
// seamlessly with any supported database connection type.
//
// The adapters handle the specifics of each database library while presenting a
// unified interface for statement execution with bound arguments and result handling.
package adapters
