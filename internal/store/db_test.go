package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "takeoff.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testReport(id string) *model.TakeoffReport {
	return &model.TakeoffReport{
		ID:   id,
		Name: "walls " + id,
		Spec: model.TakeoffSpec{
			Name:    "walls " + id,
			Source:  &model.Source{Type: "file", URL: "walls.json"},
			Columns: []model.ColumnSpec{{Path: []string{"ifcType"}, Mode: model.GroupingCount}},
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := testReport("r1")
	require.NoError(t, s.SaveReport(ctx, report))
	assert.Equal(t, model.TakeoffStatusPending, report.Status)
	assert.False(t, report.CreatedAt.IsZero())

	got, err := s.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "walls r1", got.Name)
	assert.Equal(t, model.TakeoffStatusPending, got.Status)
	assert.Equal(t, report.Spec.Columns, got.Spec.Columns)
	require.NotNil(t, got.Spec.Source)
	assert.Equal(t, "walls.json", got.Spec.Source.URL)
	assert.Nil(t, got.Result)
}

func TestSaveReportKeepsGivenStatus(t *testing.T) {
	s := openTestStore(t)
	report := testReport("r1")
	report.Status = model.TakeoffStatusRunning
	require.NoError(t, s.SaveReport(context.Background(), report))

	got, err := s.GetReport(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, model.TakeoffStatusRunning, got.Status)
}

func TestSaveReportDuplicateID(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveReport(context.Background(), testReport("r1")))
	err := s.SaveReport(context.Background(), testReport("r1"))
	assert.True(t, ierr.IsDatabase(err))
}

func TestGetReportNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetReport(context.Background(), "missing")
	assert.True(t, ierr.IsNotFound(err))
}

func TestSaveReportResult(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveReport(ctx, testReport("r1")))

	result := &model.TakeoffResult{
		Columns: []model.ColumnHeader{{ColumnGUID: "c1", Name: "Entity", DisplayName: "Count of Entity", Path: []string{"ifcType"}, Mode: model.GroupingCount}},
		Rows:    []model.Row{{"c1": model.NumberValue(3)}},
		Summary: model.RunSummary{ProductCount: 3, ColumnCount: 1, RowCount: 1},
	}
	require.NoError(t, s.SaveReportResult(ctx, "r1", result))

	got, err := s.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, model.TakeoffStatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, result.Columns, got.Result.Columns)
	assert.Equal(t, result.Rows, got.Result.Rows)
	assert.Equal(t, 3, got.Result.Summary.ProductCount)

	assert.True(t, ierr.IsNotFound(s.SaveReportResult(ctx, "missing", result)))
}

func TestUpdateReportStatus(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveReport(ctx, testReport("r1")))

	require.NoError(t, s.UpdateReportStatus(ctx, "r1", model.TakeoffStatusFailed))
	got, err := s.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, model.TakeoffStatusFailed, got.Status)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	assert.True(t, ierr.IsNotFound(s.UpdateReportStatus(ctx, "missing", model.TakeoffStatusFailed)))
}

func TestListReports(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.ListReports(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, s.SaveReport(ctx, testReport(id)))
	}

	reports, err := s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.ElementsMatch(t, []string{"r1", "r2", "r3"},
		lo.Map(reports, func(r model.ReportListItem, _ int) string { return r.ID }))
	for i := 1; i < len(reports); i++ {
		assert.False(t, reports[i].CreatedAt.After(reports[i-1].CreatedAt))
	}
}

func TestReportErrors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveReport(ctx, testReport("r1")))

	require.NoError(t, s.SaveReportError(ctx, "r1", nil))
	require.NoError(t, s.SaveReportError(ctx, "r1",
		ierr.NewError("column missing").WithHint("Column \"x\" does not exist").Mark(ierr.ErrValidation)))
	require.NoError(t, s.SaveReportError(ctx, "r1", errors.New("plain failure")))

	reportErrors, err := s.ListReportErrors(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, reportErrors, 2)
	assert.Equal(t, "column missing", reportErrors[0].Message)
	assert.Equal(t, "Column \"x\" does not exist", reportErrors[0].Hint)
	assert.Equal(t, "plain failure", reportErrors[1].Message)
	assert.Equal(t, "plain failure", reportErrors[1].Hint)
	assert.Less(t, reportErrors[0].ID, reportErrors[1].ID)

	none, err := s.ListReportErrors(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveReport(ctx, testReport("r1")))
	require.NoError(t, s.SaveReportError(ctx, "r1", errors.New("boom")))

	require.NoError(t, s.DeleteReport(ctx, "r1"))

	_, err := s.GetReport(ctx, "r1")
	assert.True(t, ierr.IsNotFound(err))
	reportErrors, err := s.ListReportErrors(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, reportErrors)

	assert.True(t, ierr.IsNotFound(s.DeleteReport(ctx, "r1")))
}
