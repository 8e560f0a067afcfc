package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
)

// PropertyType is the bimsync value type of a column ("number", "string", ...)
type PropertyType string

const (
	PropertyTypeNumber PropertyType = "number"
	PropertyTypeString PropertyType = "string"
)

func (t PropertyType) IsNumeric() bool {
	return t == PropertyTypeNumber
}

// Source tells the takeoff where to read products from
type Source struct {
	Type string `json:"type" validate:"required,oneof=file url"` // file, url
	URL  string `json:"url" validate:"required"`
}

// ColumnSpec selects one derived column by path and assigns its grouping mode
type ColumnSpec struct {
	Path []string     `json:"path" validate:"required,min=1"`
	Mode GroupingMode `json:"mode,omitempty"`
}

// ColumnMove reorders the selected columns after selection
type ColumnMove struct {
	Index     int    `json:"index" validate:"gte=0"`
	Direction string `json:"direction" validate:"required,oneof=up down top bottom"`
}

// ExportSpec defines export targets for the pivoted rows
type ExportSpec struct {
	CSV  bool `json:"csv"`
	JSON bool `json:"json"`
}

// TakeoffSpec is the body of POST /api/v1/takeoffs
type TakeoffSpec struct {
	Name     string       `json:"name"`
	Source   *Source      `json:"source,omitempty"`
	Sources  []Source     `json:"sources,omitempty" validate:"dive"`
	Products []*Product   `json:"products,omitempty"`
	Columns  []ColumnSpec `json:"columns" validate:"required,min=1,dive"`
	Moves    []ColumnMove `json:"moves,omitempty" validate:"dive"`
	// Index of the product whose schema provides the columns
	Representative int         `json:"representative,omitempty" validate:"gte=0"`
	Export         *ExportSpec `json:"export,omitempty"`
}

// Validate checks the shape of the takeoff request. Whether each column exists on the
// representative product is only known after ingestion.
func (s *TakeoffSpec) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return ierr.WithError(err).
			WithHint("Takeoff spec is invalid: " + strings.TrimSpace(err.Error())).
			Mark(ierr.ErrValidation)
	}
	if len(s.AllSources()) == 0 && len(s.Products) == 0 {
		return ierr.NewError("no products").
			WithHint("Either products or a source is required").
			Mark(ierr.ErrValidation)
	}
	for _, col := range s.Columns {
		if col.Mode == "" {
			continue
		}
		if err := col.Mode.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AllSources returns Source followed by Sources
func (s *TakeoffSpec) AllSources() []Source {
	return joinSources(s.Source, s.Sources)
}

func joinSources(single *Source, many []Source) []Source {
	out := make([]Source, 0, len(many)+1)
	if single != nil {
		out = append(out, *single)
	}
	return append(out, many...)
}

// ColumnsRequest is the body of POST /api/v1/takeoffs/columns
type ColumnsRequest struct {
	Source         *Source    `json:"source,omitempty"`
	Sources        []Source   `json:"sources,omitempty"`
	Products       []*Product `json:"products,omitempty"`
	Representative int        `json:"representative,omitempty"`
}

// AllSources returns Source followed by Sources
func (r *ColumnsRequest) AllSources() []Source {
	return joinSources(r.Source, r.Sources)
}

// TakeoffStatus is the lifecycle state of a stored takeoff report
type TakeoffStatus string

const (
	TakeoffStatusPending   TakeoffStatus = "pending"
	TakeoffStatusRunning   TakeoffStatus = "running"
	TakeoffStatusCompleted TakeoffStatus = "completed"
	TakeoffStatusFailed    TakeoffStatus = "failed"
)

// ColumnHeader describes one pivot column of a report
type ColumnHeader struct {
	ColumnGUID  string       `json:"columnGuid"`
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Type        PropertyType `json:"type"`
	Unit        string       `json:"unit,omitempty"`
	Path        []string     `json:"path"`
	Mode        GroupingMode `json:"mode"`
}

// TakeoffResult is the outcome of one takeoff run
type TakeoffResult struct {
	Columns []ColumnHeader `json:"columns"`
	Rows    []Row          `json:"rows"`
	Summary RunSummary     `json:"summary"`
	Exports []ExportResult `json:"exports,omitempty"`
}

// TakeoffReport is a stored takeoff with its result
type TakeoffReport struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    TakeoffStatus  `json:"status"`
	Spec      TakeoffSpec    `json:"spec"`
	Result    *TakeoffResult `json:"result,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ReportError is one failure recorded against a takeoff report
type ReportError struct {
	ID        int64     `json:"id"`
	ReportID  string    `json:"reportId"`
	Message   string    `json:"message"`
	Hint      string    `json:"hint,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportListItem is the summary returned when listing reports
type ReportListItem struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    TakeoffStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
