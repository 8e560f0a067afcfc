package model

import "time"

// StageMetrics represents timing for a single takeoff stage
type StageMetrics struct {
	Stage      string        `json:"stage"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Duration   time.Duration `json:"duration"`
	ItemsCount int           `json:"items_count"`
}

// RunSummary holds the counters and timings of one takeoff run
type RunSummary struct {
	ProductCount int            `json:"product_count"`
	ColumnCount  int            `json:"column_count"`
	RowCount     int            `json:"row_count"`
	Stages       []StageMetrics `json:"stages"`
	Duration     time.Duration  `json:"duration"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	SizeBytes   int64     `json:"size_bytes"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
