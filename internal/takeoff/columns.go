package takeoff

import (
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
)

// SortDirection moves a selected column within the selection.
type SortDirection string

const (
	SortUp       SortDirection = "up"
	SortDown     SortDirection = "down"
	SortToTop    SortDirection = "top"
	SortToBottom SortDirection = "bottom"
)

// MoveColumn returns a new selection with the column at index moved.
// Moving past either end is a no-op.
func MoveColumn(columns []*DisplayProperty, index int, direction SortDirection) ([]*DisplayProperty, error) {
	if index < 0 || index >= len(columns) {
		return nil, ierr.NewErrorf("column index %d out of range", index).
			WithHintf("Column index must be between 0 and %d", len(columns)-1).
			Mark(ierr.ErrValidation)
	}

	target := index
	switch direction {
	case SortUp:
		target = index - 1
	case SortDown:
		target = index + 1
	case SortToTop:
		target = 0
	case SortToBottom:
		target = len(columns) - 1
	default:
		return nil, ierr.NewErrorf("unknown sort direction %q", direction).
			WithHint("Sort direction must be one of: up, down, top, bottom").
			Mark(ierr.ErrValidation)
	}

	out := append([]*DisplayProperty(nil), columns...)
	if target < 0 || target >= len(out) || target == index {
		return out, nil
	}
	moved := out[index]
	out = append(out[:index], out[index+1:]...)
	out = append(out[:target], append([]*DisplayProperty{moved}, out[target:]...)...)
	return out, nil
}
