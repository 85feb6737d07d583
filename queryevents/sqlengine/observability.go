package sqlengine

import (
	"context"
	"math"
	"time"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
// A configured contextual logger takes precedence over the plain logger.
func (e Executor) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)

	case e.logger != nil:
		e.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logError logs error information at the error level if a logger is configured.
// A configured contextual logger takes precedence over the plain logger.
func (e Executor) logError(
	ctx context.Context,
	message string,
	err error,
	args ...any,
) {

	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.ErrorContext(ctx, message, allArgs...)

	case e.logger != nil:
		e.logger.Error(message, allArgs...)
	}
}

// recordDurationMetrics records a duration metric if the metrics collector is configured.
func (e Executor) recordDurationMetrics(metricName string, duration time.Duration, operation, status string) {
	if e.metricsCollector != nil {
		labels := map[string]string{
			labelOperation: operation,
			labelStatus:    status,
		}
		e.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordErrorMetrics records an error counter if the metrics collector is configured.
func (e Executor) recordErrorMetrics(operation string) {
	if e.metricsCollector != nil {
		labels := map[string]string{
			labelOperation: operation,
			labelStatus:    statusError,
		}
		e.metricsCollector.IncrementCounter(metricQueryErrors, labels)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
