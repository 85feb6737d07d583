package queryevents

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableNameSupplied = errors.New("empty tableName supplied")
var ErrQueryingFailed = errors.New("executing query failed")
var ErrExecutingFailed = errors.New("executing statement failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
