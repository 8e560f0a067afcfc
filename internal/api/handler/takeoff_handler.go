package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/kuperiu/bimsyncManager/internal/takeoff"
	"github.com/kuperiu/bimsyncManager/pkg/router"
	"github.com/kuperiu/bimsyncManager/pkg/utils"
)

// ReportStore is the persistence the takeoff handlers need.
type ReportStore interface {
	SaveReport(ctx context.Context, report *model.TakeoffReport) error
	ListReports(ctx context.Context) ([]model.ReportListItem, error)
	GetReport(ctx context.Context, reportID string) (*model.TakeoffReport, error)
	UpdateReportStatus(ctx context.Context, reportID string, status model.TakeoffStatus) error
	SaveReportResult(ctx context.Context, reportID string, result *model.TakeoffResult) error
	SaveReportError(ctx context.Context, reportID string, reportErr error) error
	ListReportErrors(ctx context.Context, reportID string) ([]model.ReportError, error)
	DeleteReport(ctx context.Context, reportID string) error
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint"`
	// Set when the failure was recorded against a stored report
	ReportID string `json:"reportId,omitempty"`
}

// RowsResponse is the body of GET /takeoffs/{id}/rows
type RowsResponse struct {
	Columns []model.ColumnHeader `json:"columns"`
	Rows    []model.Row          `json:"rows"`
}

// ErrorsResponse is the body of GET /takeoffs/{id}/errors
type ErrorsResponse struct {
	ReportID string              `json:"reportId"`
	Errors   []model.ReportError `json:"errors"`
	Count    int                 `json:"count"`
}

type TakeoffHandler struct {
	store  ReportStore
	runner *takeoff.Runner
	output *utils.OutputManager
	log    *logger.Logger
}

func NewTakeoffHandler(store ReportStore, runner *takeoff.Runner, output *utils.OutputManager, log *logger.Logger) *TakeoffHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &TakeoffHandler{store: store, runner: runner, output: output, log: log}
}

// ListColumns derives the selectable columns of a product list
// @Summary List takeoff columns
// @Description Derive the column sets (identification, property sets, quantity sets) offered by the representative product
// @Tags takeoffs
// @Accept json
// @Produce json
// @Param request body model.ColumnsRequest true "Products or product source"
// @Success 200 {array} takeoff.DisplayPropertySet "Column sets"
// @Failure 400 {object} ErrorResponse "Invalid request payload"
// @Failure 502 {object} ErrorResponse "Product source unreachable"
// @Router /takeoffs/columns [post]
func (h *TakeoffHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	var req model.ColumnsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, invalidPayload(err), "")
		return
	}

	sets, err := h.runner.Columns(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

// CreateTakeoff runs a takeoff and stores it as a report
// @Summary Create a takeoff
// @Description Select columns with grouping modes, pivot the products and store the report
// @Tags takeoffs
// @Accept json
// @Produce json
// @Param takeoff body model.TakeoffSpec true "Takeoff configuration"
// @Success 201 {object} model.TakeoffReport "Takeoff report"
// @Failure 400 {object} ErrorResponse "Invalid request payload"
// @Failure 502 {object} ErrorResponse "Product source unreachable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /takeoffs [post]
func (h *TakeoffHandler) CreateTakeoff(w http.ResponseWriter, r *http.Request) {
	var spec model.TakeoffSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		h.writeError(w, invalidPayload(err), "")
		return
	}
	if err := spec.Validate(); err != nil {
		h.writeError(w, err, "")
		return
	}

	ctx := r.Context()
	report := &model.TakeoffReport{
		ID:     uuid.New().String(),
		Name:   spec.Name,
		Status: model.TakeoffStatusRunning,
		Spec:   spec,
	}
	if err := h.store.SaveReport(ctx, report); err != nil {
		h.writeError(w, err, "")
		return
	}

	result, err := h.runner.Run(ctx, report.ID, spec)
	if err != nil {
		h.failReport(ctx, report.ID, err)
		h.writeError(w, err, report.ID)
		return
	}
	if err := h.store.SaveReportResult(ctx, report.ID, result); err != nil {
		h.failReport(ctx, report.ID, err)
		h.writeError(w, err, report.ID)
		return
	}

	stored, err := h.store.GetReport(ctx, report.ID)
	if err != nil {
		h.writeError(w, err, report.ID)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *TakeoffHandler) failReport(ctx context.Context, reportID string, cause error) {
	if err := h.store.UpdateReportStatus(ctx, reportID, model.TakeoffStatusFailed); err != nil {
		h.log.Errorw("failed to mark report failed", "report_id", reportID, "error", err)
	}
	if err := h.store.SaveReportError(ctx, reportID, cause); err != nil {
		h.log.Errorw("failed to record report error", "report_id", reportID, "error", err)
	}
}

// ListTakeoffs lists stored reports
// @Summary List takeoffs
// @Description Get all stored takeoff reports, newest first
// @Tags takeoffs
// @Produce json
// @Success 200 {array} model.ReportListItem "Takeoff reports"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /takeoffs [get]
func (h *TakeoffHandler) ListTakeoffs(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.ListReports(r.Context())
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// GetTakeoff returns one stored report
// @Summary Get takeoff
// @Description Retrieve a takeoff report with its spec, status, columns and run summary
// @Tags takeoffs
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} model.TakeoffReport "Takeoff report"
// @Failure 404 {object} ErrorResponse "Report not found"
// @Router /takeoffs/{id} [get]
func (h *TakeoffHandler) GetTakeoff(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.GetReport(r.Context(), router.Param(r, 0))
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetTakeoffRows returns the pivot rows of a report
// @Summary Get takeoff rows
// @Description Retrieve the pivoted rows of a completed takeoff as JSON, or as CSV with format=csv
// @Tags takeoffs
// @Produce json
// @Produce text/csv
// @Param id path string true "Report ID"
// @Param format query string false "json (default) or csv"
// @Success 200 {object} RowsResponse "Pivot rows"
// @Failure 400 {object} ErrorResponse "Report has no result"
// @Failure 404 {object} ErrorResponse "Report not found"
// @Router /takeoffs/{id}/rows [get]
func (h *TakeoffHandler) GetTakeoffRows(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.GetReport(r.Context(), router.Param(r, 0))
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	if report.Result == nil {
		h.writeError(w, ierr.NewErrorf("report %s has no result", report.ID).
			WithHintf("Takeoff report is %s", report.Status).
			Mark(ierr.ErrInvalidOperation), report.ID)
		return
	}

	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "json":
		writeJSON(w, http.StatusOK, RowsResponse{Columns: report.Result.Columns, Rows: report.Result.Rows})
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+takeoff.CSVFileName+`"`)
		if err := takeoff.WriteCSV(w, report.Result.Columns, report.Result.Rows); err != nil {
			h.log.Errorw("failed to stream csv", "report_id", report.ID, "error", err)
		}
	default:
		h.writeError(w, ierr.NewError("unknown format").
			WithHint("Format must be one of: json, csv").
			Mark(ierr.ErrValidation), report.ID)
	}
}

// GetTakeoffErrors returns the errors recorded for a report
// @Summary Get takeoff errors
// @Description Retrieve all errors recorded while running a takeoff
// @Tags takeoffs
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} ErrorsResponse "Report errors"
// @Failure 404 {object} ErrorResponse "Report not found"
// @Router /takeoffs/{id}/errors [get]
func (h *TakeoffHandler) GetTakeoffErrors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportID := router.Param(r, 0)
	if _, err := h.store.GetReport(ctx, reportID); err != nil {
		h.writeError(w, err, "")
		return
	}

	reportErrors, err := h.store.ListReportErrors(ctx, reportID)
	if err != nil {
		h.writeError(w, err, reportID)
		return
	}
	writeJSON(w, http.StatusOK, ErrorsResponse{
		ReportID: reportID,
		Errors:   reportErrors,
		Count:    len(reportErrors),
	})
}

// DeleteTakeoff removes a report and its exports
// @Summary Delete takeoff
// @Description Delete a takeoff report, its errors and its export files
// @Tags takeoffs
// @Param id path string true "Report ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Report not found"
// @Router /takeoffs/{id} [delete]
func (h *TakeoffHandler) DeleteTakeoff(w http.ResponseWriter, r *http.Request) {
	reportID := router.Param(r, 0)
	if err := h.store.DeleteReport(r.Context(), reportID); err != nil {
		h.writeError(w, err, "")
		return
	}
	if h.output != nil {
		if err := h.output.RemoveReport(reportID); err != nil {
			h.log.Warnw("failed to remove report exports", "report_id", reportID, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TakeoffHandler) writeError(w http.ResponseWriter, err error, reportID string) {
	status := ierr.HTTPStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorw("request failed", "status", status, "report_id", reportID, "error", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:    err.Error(),
		Hint:     ierr.DisplayHint(err),
		ReportID: reportID,
	})
}

func invalidPayload(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid JSON payload").
		Mark(ierr.ErrValidation)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
