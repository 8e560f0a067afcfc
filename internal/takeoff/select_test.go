package takeoff

import (
	"testing"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectColumns(t *testing.T) {
	available := ProductColumns(loadWalls(t)[0])

	selected, err := SelectColumns(available, []model.ColumnSpec{
		{Path: pathWallNetArea, Mode: model.GroupingSum},
		{Path: pathEntity},
	})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "NetArea", selected[0].Name)
	assert.Equal(t, model.GroupingSum, selected[0].GroupingMode())
	assert.Equal(t, "Entity", selected[1].Name)
	assert.Equal(t, model.GroupingDontSummarize, selected[1].GroupingMode())
}

func TestSelectColumnsErrors(t *testing.T) {
	tests := []struct {
		name  string
		specs []model.ColumnSpec
	}{
		{"missing column", []model.ColumnSpec{{Path: []string{"attributes", "Tag", "value"}}}},
		{"duplicate column", []model.ColumnSpec{{Path: pathName}, {Path: pathName, Mode: model.GroupingCount}}},
		{"mode not offered for text", []model.ColumnSpec{{Path: pathFireRating, Mode: model.GroupingSum}}},
		{"unknown mode", []model.ColumnSpec{{Path: pathWallLength, Mode: model.GroupingMode("TOTAL")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available := ProductColumns(loadWalls(t)[0])
			selected, err := SelectColumns(available, tt.specs)
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
			assert.Nil(t, selected)
		})
	}
}
