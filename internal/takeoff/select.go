package takeoff

import (
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
)

// SelectColumns picks the columns named by specs out of the derived columns,
// in spec order, and applies each spec's grouping mode. A column may be
// selected once: rows are keyed by column GUID.
func SelectColumns(columns []*DisplayProperty, specs []model.ColumnSpec) ([]*DisplayProperty, error) {
	selected := make([]*DisplayProperty, 0, len(specs))
	seen := make(map[string]bool, len(specs))

	for _, spec := range specs {
		path := Path(spec.Path)
		column, ok := FindColumn(columns, path)
		if !ok {
			return nil, ierr.NewErrorf("column %s not found", path).
				WithHintf("Column %q does not exist on the representative product", path.String()).
				Mark(ierr.ErrValidation)
		}
		if seen[column.ColumnGUID] {
			return nil, ierr.NewErrorf("column %s selected twice", path).
				WithHintf("Column %q can only be selected once", path.String()).
				Mark(ierr.ErrValidation)
		}
		seen[column.ColumnGUID] = true

		mode := spec.Mode
		if mode == "" {
			mode = model.GroupingDontSummarize
		}
		if err := column.SetGroupingMode(mode); err != nil {
			return nil, err
		}
		selected = append(selected, column)
	}
	return selected, nil
}
