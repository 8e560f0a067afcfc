package takeoff

import (
	"context"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
)

// Runner drives a takeoff from a spec to pivot rows: load the products,
// derive columns from the representative product, select and order the
// requested columns, pivot, then export.
type Runner struct {
	ingestor *Ingestor
	exporter *Exporter
	log      *logger.Logger
}

// NewRunner wires the stages. A nil exporter skips exports; a nil ingestor
// restricts the runner to inline products.
func NewRunner(ingestor *Ingestor, exporter *Exporter, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Runner{ingestor: ingestor, exporter: exporter, log: log}
}

// Products returns the inline products, or loads them from sources when
// there are none.
func (r *Runner) Products(ctx context.Context, products []*model.Product, sources []model.Source) ([]*model.Product, error) {
	if len(products) > 0 {
		return CompactProducts(products), nil
	}
	if len(sources) == 0 {
		return nil, ierr.NewError("no products").
			WithHint("Either products or a source is required").
			Mark(ierr.ErrValidation)
	}
	if r.ingestor == nil {
		return nil, ierr.NewError("no ingestor configured").
			WithHint("Remote sources are not supported here, pass products inline").
			Mark(ierr.ErrInvalidOperation)
	}
	return r.ingestor.LoadAll(ctx, sources)
}

// Columns lists the column sets the representative product offers.
func (r *Runner) Columns(ctx context.Context, req model.ColumnsRequest) ([]DisplayPropertySet, error) {
	products, err := r.Products(ctx, req.Products, req.AllSources())
	if err != nil {
		return nil, err
	}
	if err := ValidateProducts(products, req.Representative); err != nil {
		return nil, err
	}
	return ProductProperties(products[req.Representative]), nil
}

// Run executes spec and returns the pivot with its run summary. reportID
// names the export directory and tags the logs.
func (r *Runner) Run(ctx context.Context, reportID string, spec model.TakeoffSpec) (*model.TakeoffResult, error) {
	log := r.log.With("report_id", reportID)
	tracker := NewTracker(log)
	log.Infow("starting takeoff", "name", spec.Name, "columns", len(spec.Columns))

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	tracker.StartStage(StageIngestion)
	products, err := r.Products(ctx, spec.Products, spec.AllSources())
	if err != nil {
		return nil, err
	}
	if err := ValidateProducts(products, spec.Representative); err != nil {
		return nil, err
	}
	tracker.EndStage(len(products))

	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	tracker.StartStage(StageSchema)
	available := ProductColumns(products[spec.Representative])
	tracker.EndStage(len(available))

	tracker.StartStage(StageSelection)
	columns, err := SelectColumns(available, spec.Columns)
	if err != nil {
		return nil, err
	}
	for _, move := range spec.Moves {
		columns, err = MoveColumn(columns, move.Index, SortDirection(move.Direction))
		if err != nil {
			return nil, err
		}
	}
	tracker.EndStage(len(columns))

	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	tracker.StartStage(StagePivot)
	rows := Pivot(products, columns)
	tracker.EndStage(len(rows))
	tracker.SetCounts(len(products), len(columns), len(rows))

	result := &model.TakeoffResult{
		Columns: lo.Map(columns, func(c *DisplayProperty, _ int) model.ColumnHeader { return c.Header() }),
		Rows:    rows,
	}

	if spec.Export != nil && r.exporter != nil {
		tracker.StartStage(StageExport)
		result.Exports = r.exporter.Export(reportID, *spec.Export, result.Columns, rows)
		tracker.EndStage(len(lo.Filter(result.Exports, func(e model.ExportResult, _ int) bool { return e.Success })))
	}

	result.Summary = tracker.Summary()
	log.Infow("takeoff completed",
		"products", result.Summary.ProductCount,
		"rows", result.Summary.RowCount,
		"duration_ms", result.Summary.Duration.Milliseconds(),
	)
	return result, nil
}

func cancelled(err error) error {
	return ierr.WithError(err).
		WithHint("The takeoff was cancelled").
		Mark(ierr.ErrInvalidOperation)
}
