package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRunID is the ingestion run ID (UUID)
	FieldRunID = "run_id"

	// FieldStep is the orchestrator step name
	FieldStep = "step"

	// FieldSeason is the season being ingested
	FieldSeason = "season"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldEndpoint is the upstream API endpoint
	FieldEndpoint = "endpoint"

	// FieldTable is the destination table name
	FieldTable = "table"

	// FieldAttempt is the request attempt number
	FieldAttempt = "attempt"

	// FieldStatus is the HTTP status or operation status
	FieldStatus = "status"

	// FieldSleepMS is a computed backoff sleep in milliseconds
	FieldSleepMS = "sleep_ms"

	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"
)
