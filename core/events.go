package core

import "time"

// DatasetEventType defines the possible event types for dataset operations.
type DatasetEventType string

const (
	DatasetLoadStart   DatasetEventType = "dataset:load:start"
	DatasetLoadSuccess DatasetEventType = "dataset:load:success"
	DatasetLoadFailed  DatasetEventType = "dataset:load:failed"

	DatasetQueryStart   DatasetEventType = "dataset:query:start"
	DatasetQuerySuccess DatasetEventType = "dataset:query:success"
	DatasetQueryFailed  DatasetEventType = "dataset:query:failed"
)

// DatasetEvent describes one lifecycle event of a dataset: a load or a
// query, at start, success or failure.
type DatasetEvent struct {
	Type      DatasetEventType `json:"type"`
	DatasetID string           `json:"datasetId"`
	Source    string           `json:"source"`
	Operation string           `json:"operation"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	Error     *string          `json:"error,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Duration  time.Duration    `json:"duration"`
}

// createEvent assembles a DatasetEvent relative to the operation's start time.
func createEvent(t DatasetEventType, id, source, operation string, rows, cols int, errStr *string, start time.Time) DatasetEvent {
	return DatasetEvent{
		Type:      t,
		DatasetID: id,
		Source:    source,
		Operation: operation,
		Rows:      rows,
		Cols:      cols,
		Error:     errStr,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
	}
}
