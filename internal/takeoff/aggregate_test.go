package takeoff

import (
	"testing"

	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/stretchr/testify/assert"
)

func values(items ...interface{}) []model.Value {
	out := make([]model.Value, len(items))
	for i, item := range items {
		out[i] = model.ValueOf(item)
	}
	return out
}

func TestAggregate(t *testing.T) {
	null := model.NullValue()

	tests := []struct {
		name   string
		mode   model.GroupingMode
		values []model.Value
		want   []model.Value
	}{
		{"dont summarize keeps first seen order", model.GroupingDontSummarize, values(2.0, 1.0, 2.0, nil, 1.0), []model.Value{num(2), num(1), null}},
		{"dont summarize empty", model.GroupingDontSummarize, nil, []model.Value{}},
		{"unknown mode behaves as dont summarize", model.GroupingMode("TOTAL"), values("a", "a"), []model.Value{str("a")}},
		{"count includes nulls", model.GroupingCount, values(1.0, 1.0, nil), []model.Value{num(3)}},
		{"count empty", model.GroupingCount, nil, []model.Value{num(0)}},
		{"count distinct counts null once", model.GroupingCountDistinct, values(1.0, 1.0, 2.0, nil, nil), []model.Value{num(3)}},
		{"sum rounds", model.GroupingSum, values(1.111, 2.222), []model.Value{num(3.33)}},
		{"sum coerces", model.GroupingSum, values(1.0, true, "2.5", "abc", nil), []model.Value{num(4.5)}},
		{"sum empty", model.GroupingSum, nil, []model.Value{num(0)}},
		{"average", model.GroupingAverage, values(1.0, 2.0), []model.Value{num(1.5)}},
		{"average counts nulls as zero", model.GroupingAverage, values(1.0, 2.0, nil), []model.Value{num(1)}},
		{"average empty", model.GroupingAverage, nil, []model.Value{num(0)}},
		{"median even", model.GroupingMedian, values(4.0, 1.0, 3.0, 2.0), []model.Value{num(2.5)}},
		{"median odd", model.GroupingMedian, values(3.0, 1.0, 2.0), []model.Value{num(2)}},
		{"median empty", model.GroupingMedian, nil, []model.Value{num(0)}},
		{"variance is population variance", model.GroupingVariance, values(1.0, 2.0, 3.0, 4.0), []model.Value{num(1.25)}},
		{"standard deviation", model.GroupingStandardDeviation, values(1.0, 2.0, 3.0, 4.0), []model.Value{num(1.12)}},
		{"standard deviation of one value", model.GroupingStandardDeviation, values(7.0), []model.Value{num(0)}},
		{"minimum", model.GroupingMinimum, values(3.0, 1.0, 2.0), []model.Value{num(1)}},
		{"maximum", model.GroupingMaximum, values(3.0, 1.0, 2.0), []model.Value{num(3)}},
		{"minimum puts null last", model.GroupingMinimum, values(nil, 5.0), []model.Value{num(5)}},
		{"maximum of only nulls", model.GroupingMaximum, values(nil, nil), []model.Value{null}},
		{"first text", model.GroupingFirst, values("b", "a", "c"), []model.Value{str("a")}},
		{"last text", model.GroupingLast, values("b", "a", "c"), []model.Value{str("c")}},
		{"first mixed kinds", model.GroupingFirst, values("a", true, 9.0), []model.Value{num(9)}},
		{"first empty", model.GroupingFirst, nil, []model.Value{}},
		{"last empty", model.GroupingLast, []model.Value{}, []model.Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.mode, tt.values))
		})
	}
}

func TestAggregateDontSummarizeIsIdempotent(t *testing.T) {
	in := values("Wall", "Slab", "Wall", nil, "Door", "Slab")
	once := Aggregate(model.GroupingDontSummarize, in)
	twice := Aggregate(model.GroupingDontSummarize, once)
	assert.Equal(t, once, twice)
	assert.Equal(t, []model.Value{str("Wall"), str("Slab"), model.NullValue(), str("Door")}, once)
}

func TestAggregateSummarizedModesYieldOneValue(t *testing.T) {
	in := values(1.0, 2.0, 2.0, nil, "x")
	for _, mode := range model.AllGroupingModes {
		if mode == model.GroupingDontSummarize {
			continue
		}
		assert.Len(t, Aggregate(mode, in), 1, mode.String())
	}
}

func TestGroupedValues(t *testing.T) {
	products := loadWalls(t)

	entity := column(t, "Entity", model.PropertyTypeString, "", pathEntity, model.GroupingDontSummarize, products)
	assert.Equal(t, []model.Value{str("IfcWall"), str("IfcSlab")}, GroupedValues(entity, products))

	area := column(t, "NetArea", model.PropertyTypeNumber, "m2", pathWallNetArea, model.GroupingSum, products)
	assert.Equal(t, []model.Value{num(14.75)}, GroupedValues(area, products))

	fire := column(t, "FireRating", model.PropertyTypeString, "", pathFireRating, model.GroupingCountDistinct, products)
	assert.Equal(t, []model.Value{num(2)}, GroupedValues(fire, products))
}

func TestResolveAll(t *testing.T) {
	products := loadWalls(t)
	assert.Equal(t,
		[]model.Value{num(10.5), num(4.25), model.NullValue()},
		ResolveAll(pathWallNetArea, products))
}
