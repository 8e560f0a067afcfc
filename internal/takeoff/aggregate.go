package takeoff

import (
	"math"
	"sort"

	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
)

// GroupedValues resolves column on every product and summarizes the values
// with the column's grouping mode.
func GroupedValues(column *DisplayProperty, products []*model.Product) []model.Value {
	return Aggregate(column.GroupingMode(), ResolveAll(column.Path, products))
}

// ResolveAll resolves path on each product; absent values are null.
func ResolveAll(path Path, products []*model.Product) []model.Value {
	return lo.Map(products, func(p *model.Product, _ int) model.Value {
		return path.Resolve(p)
	})
}

// Aggregate summarizes values. DontSummarize (and any unknown mode) yields
// the distinct values in first-seen order; every other mode yields at most
// one value.
func Aggregate(mode model.GroupingMode, values []model.Value) []model.Value {
	switch mode {
	case model.GroupingCount:
		return []model.Value{model.NumberValue(float64(len(values)))}
	case model.GroupingCountDistinct:
		return []model.Value{model.NumberValue(float64(len(lo.Uniq(values))))}
	case model.GroupingFirst, model.GroupingMinimum:
		sorted := sortedDistinct(values)
		if len(sorted) == 0 {
			return []model.Value{}
		}
		return []model.Value{sorted[0]}
	case model.GroupingLast, model.GroupingMaximum:
		sorted := sortedDistinct(values)
		if len(sorted) == 0 {
			return []model.Value{}
		}
		return []model.Value{sorted[len(sorted)-1]}
	case model.GroupingSum:
		return rounded(lo.Sum(numbers(values)))
	case model.GroupingAverage:
		return rounded(mean(numbers(values)))
	case model.GroupingStandardDeviation:
		return rounded(math.Sqrt(variance(numbers(values))))
	case model.GroupingVariance:
		return rounded(variance(numbers(values)))
	case model.GroupingMedian:
		return rounded(median(numbers(values)))
	default:
		return lo.Uniq(values)
	}
}

func rounded(f float64) []model.Value {
	return []model.Value{model.NumberValue(model.Round2(f))}
}

func numbers(values []model.Value) []float64 {
	return lo.Map(values, func(v model.Value, _ int) float64 {
		return v.Float()
	})
}

func sortedDistinct(values []model.Value) []model.Value {
	distinct := lo.Uniq(values)
	sort.SliceStable(distinct, func(i, j int) bool {
		return distinct[i].Compare(distinct[j]) < 0
	})
	return distinct
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return lo.Sum(data) / float64(len(data))
}

// variance is the population variance: the mean squared deviation.
func variance(data []float64) float64 {
	avg := mean(data)
	return mean(lo.Map(data, func(v float64, _ int) float64 {
		return (v - avg) * (v - avg)
	}))
}

func median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
