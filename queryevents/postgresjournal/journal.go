// Package postgresjournal provides an EventDispatcher implementation that
// persists query lifecycle events into a Postgres table, for auditing and
// offline analysis of query behavior.
//
// Only terminal events are persisted: AfterQueryEvent rows carry the elapsed
// time, QueryErrorEvent rows carry the error text. BeforeQueryEvent is echoed
// without persistence since its data reappears in the terminal event.
//
// Persistence failures are logged and never propagated, observers must not
// break the query path. Dispatch always returns the incoming event unchanged.
//
// Expected table shape:
//
//	CREATE TABLE query_journal (
//	    id          UUID PRIMARY KEY,
//	    event_type  TEXT NOT NULL,
//	    query       TEXT NOT NULL,
//	    params      JSONB NOT NULL,
//	    status      TEXT NOT NULL,
//	    duration_ms DOUBLE PRECISION,
//	    error       TEXT,
//	    occurred_at TIMESTAMP WITH TIME ZONE NOT NULL
//	);
package postgresjournal

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/sql-query-events-go/queryevents"
	"github.com/AntonStoeckl/sql-query-events-go/queryevents/internal/adapters"
)

const (
	defaultTableName = "query_journal"
	dialectPostgres  = "postgres"

	logMsgBuildInsertFailed  = "failed to build journal insert statement"
	logMsgInsertFailed       = "failed to insert journal row"
	logMsgEncodeParamsFailed = "failed to encode bound parameters"
	logAttrError             = "error"
	logAttrEventType         = "event_type"
	colID                    = "id"
	colEventType             = "event_type"
	colQuery                 = "query"
	colParams                = "params"
	colStatus                = "status"
	colDurationMS            = "duration_ms"
	colError                 = "error"
	colOccurredAt            = "occurred_at"
	statusSuccess            = "success"
	statusError              = "error"
	emptyParamsJSON          = "[]"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// journalParam is the JSON shape of one bound parameter in a journal row.
type journalParam struct {
	Name  string `json:"name,omitempty"`
	Value any    `json:"value"`
}

// Journal is an EventDispatcher that records terminal query lifecycle events
// into a Postgres table. It leverages a database adapter and supports
// customizable logging and table configuration.
type Journal struct {
	db        adapters.DBAdapter
	tableName string
	logger    queryevents.Logger
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithTableName sets the journal table name.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return queryevents.ErrEmptyTableNameSupplied
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
// Persistence failures are reported at error level; they are never propagated
// to the dispatching caller.
func WithLogger(logger queryevents.Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// NewJournalFromPGXPool creates a new Journal using a pgx Pool with optional configuration.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, queryevents.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromSQLDB creates a new Journal using a sql.DB with optional configuration.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, queryevents.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a new Journal using a sqlx.DB with optional configuration.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, queryevents.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options...)
}

func newJournal(db adapters.DBAdapter, options ...Option) (*Journal, error) {
	j := &Journal{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// Dispatch records terminal events into the journal table and returns the
// incoming event unchanged. BeforeQueryEvent is echoed without persistence.
func (j *Journal) Dispatch(event queryevents.Event) queryevents.Event {
	switch ev := event.(type) {
	case queryevents.AfterQueryEvent:
		j.record(ev.EventType(), ev.Query(), ev.Params(), statusSuccess, ev.ElapsedMilliseconds(), nil)

	case queryevents.QueryErrorEvent:
		j.record(ev.EventType(), ev.Query(), ev.Params(), statusError, 0, ev.Err())
	}

	return event
}

// record builds and executes the insert statement for one journal row.
// All failures are logged and swallowed.
func (j *Journal) record(
	eventType queryevents.EventTypeString,
	query queryevents.QueryString,
	params queryevents.Params,
	status string,
	durationMS float64,
	faultErr error,
) {

	row := goqu.Record{
		colID:         uuid.New().String(),
		colEventType:  eventType,
		colQuery:      query,
		colParams:     j.encodeParams(params),
		colStatus:     status,
		colOccurredAt: time.Now().UTC(),
	}

	if status == statusSuccess {
		row[colDurationMS] = durationMS
	}

	if faultErr != nil {
		row[colError] = faultErr.Error()
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(row)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		j.logErrorIfConfigured(logMsgBuildInsertFailed, toSQLErr, logAttrEventType, eventType)
		return
	}

	if _, execErr := j.db.Exec(context.Background(), sqlQuery); execErr != nil {
		j.logErrorIfConfigured(logMsgInsertFailed, execErr, logAttrEventType, eventType)
	}
}

// encodeParams serializes the ordered parameter sequence to JSON.
// Values that cannot be marshaled degrade to an empty sequence with a warning.
func (j *Journal) encodeParams(params queryevents.Params) string {
	encoded := make([]journalParam, len(params))
	for i, p := range params {
		encoded[i] = journalParam{Name: p.Name(), Value: p.Val()}
	}

	paramsJSON, marshalErr := json.MarshalToString(encoded)
	if marshalErr != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgEncodeParamsFailed, logAttrError, marshalErr.Error())
		}

		return emptyParamsJSON
	}

	return paramsJSON
}

// logErrorIfConfigured logs error information at the error level if the logger is configured.
func (j *Journal) logErrorIfConfigured(message string, err error, args ...any) {
	if j.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		j.logger.Error(message, allArgs...)
	}
}

// Ensure Journal implements queryevents.EventDispatcher.
var _ queryevents.EventDispatcher = (*Journal)(nil)
