package takeoff

import (
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
)

// ValueTree is one node of the grouping hierarchy: the grouped value of
// column ColumnNumber plus one child per grouped value of the next column.
// Trees are built once and never modified; rebuild after any change to the
// column selection or grouping modes.
type ValueTree struct {
	Value        model.Value
	ColumnNumber int
	ColumnGUID   string
	Children     []*ValueTree
}

// BuildTree builds the node for value at columnNumber over products, the
// subset of products that belong to this branch.
func BuildTree(value model.Value, columnNumber int, columns []*DisplayProperty, products []*model.Product) *ValueTree {
	node := &ValueTree{
		Value:        value,
		ColumnNumber: columnNumber,
		ColumnGUID:   columns[columnNumber].ColumnGUID,
	}
	next := columnNumber + 1
	if next < len(columns) {
		node.Children = buildLevel(next, columns, products)
	}
	return node
}

// BuildForest builds one root per grouped value of the first column.
func BuildForest(products []*model.Product, columns []*DisplayProperty) []*ValueTree {
	if len(columns) == 0 {
		return nil
	}
	return buildLevel(0, columns, products)
}

// buildLevel creates the nodes for every grouped value of columns[i].
// An unsummarized column splits products by value; a summarized column
// collapses them, so every node keeps the whole subset.
func buildLevel(i int, columns []*DisplayProperty, products []*model.Product) []*ValueTree {
	column := columns[i]
	values := GroupedValues(column, products)
	splits := column.GroupingMode().Normalize() == model.GroupingDontSummarize

	nodes := make([]*ValueTree, 0, len(values))
	for _, value := range values {
		subset := products
		if splits {
			subset = FilterProducts(products, column.Path, value)
		}
		nodes = append(nodes, BuildTree(value, i, columns, subset))
	}
	return nodes
}

// FilterProducts keeps the products whose value at path equals value.
// Null matches null.
func FilterProducts(products []*model.Product, path Path, value model.Value) []*model.Product {
	return lo.Filter(products, func(p *model.Product, _ int) bool {
		return path.Resolve(p) == value
	})
}

// Rows flattens the node into pivot rows, one per leaf below it. Each row
// carries this node's value and those of every descendant on its path.
func (t *ValueTree) Rows() []model.Row {
	if len(t.Children) == 0 {
		return []model.Row{{t.ColumnGUID: t.Value}}
	}
	rows := make([]model.Row, 0, len(t.Children))
	for _, child := range t.Children {
		for _, row := range child.Rows() {
			row[t.ColumnGUID] = t.Value
			rows = append(rows, row)
		}
	}
	return rows
}

// Rows concatenates the rows of every root in forest.
func Rows(forest []*ValueTree) []model.Row {
	rows := make([]model.Row, 0, len(forest))
	for _, root := range forest {
		rows = append(rows, root.Rows()...)
	}
	return rows
}

// Pivot builds the grouping forest for columns over products and flattens it.
func Pivot(products []*model.Product, columns []*DisplayProperty) []model.Row {
	return Rows(BuildForest(products, columns))
}
