package takeoff

import (
	"sync"
	"time"

	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/model"
)

// Stage names recorded in a run summary
const (
	StageIngestion = "ingestion"
	StageSchema    = "schema"
	StageSelection = "selection"
	StagePivot     = "pivot"
	StageExport    = "export"
)

// Tracker collects stage timings and counters for one takeoff run.
type Tracker struct {
	mu      sync.Mutex
	log     *logger.Logger
	start   time.Time
	current *model.StageMetrics
	summary model.RunSummary
}

// NewTracker starts the run clock.
func NewTracker(log *logger.Logger) *Tracker {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Tracker{
		log:   log,
		start: time.Now(),
		summary: model.RunSummary{
			Stages: make([]model.StageMetrics, 0, 5),
		},
	}
}

// StartStage marks the start of a stage. An open stage is closed first.
func (t *Tracker) StartStage(stage string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		t.closeStage(0)
	}
	t.current = &model.StageMetrics{Stage: stage, StartTime: time.Now()}
	t.log.Debugw("stage started", "stage", stage)
}

// EndStage closes the open stage with the number of items it produced.
func (t *Tracker) EndStage(items int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return
	}
	t.closeStage(items)
}

func (t *Tracker) closeStage(items int) {
	stage := *t.current
	stage.EndTime = time.Now()
	stage.Duration = stage.EndTime.Sub(stage.StartTime)
	stage.ItemsCount = items
	t.summary.Stages = append(t.summary.Stages, stage)
	t.current = nil

	t.log.Debugw("stage completed",
		"stage", stage.Stage,
		"items", items,
		"duration_ms", stage.Duration.Milliseconds(),
	)
}

// SetCounts records the size of the run.
func (t *Tracker) SetCounts(products, columns, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.ProductCount = products
	t.summary.ColumnCount = columns
	t.summary.RowCount = rows
}

// Summary closes any open stage and returns a copy of the collected metrics.
func (t *Tracker) Summary() model.RunSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		t.closeStage(0)
	}
	out := t.summary
	out.Stages = append([]model.StageMetrics(nil), t.summary.Stages...)
	out.Duration = time.Since(t.start)
	return out
}
