package model

import (
	"strings"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/samber/lo"
)

// GroupingMode is the summarization applied to one takeoff column.
type GroupingMode string

const (
	GroupingDontSummarize     GroupingMode = "DONT_SUMMARIZE"
	GroupingCount             GroupingMode = "COUNT"
	GroupingCountDistinct     GroupingMode = "COUNT_DISTINCT"
	GroupingFirst             GroupingMode = "FIRST"
	GroupingLast              GroupingMode = "LAST"
	GroupingSum               GroupingMode = "SUM"
	GroupingAverage           GroupingMode = "AVERAGE"
	GroupingMinimum           GroupingMode = "MINIMUM"
	GroupingMaximum           GroupingMode = "MAXIMUM"
	GroupingStandardDeviation GroupingMode = "STANDARD_DEVIATION"
	GroupingVariance          GroupingMode = "VARIANCE"
	GroupingMedian            GroupingMode = "MEDIAN"
)

// AllGroupingModes lists every mode in declaration order.
var AllGroupingModes = []GroupingMode{
	GroupingDontSummarize,
	GroupingCount,
	GroupingCountDistinct,
	GroupingFirst,
	GroupingLast,
	GroupingSum,
	GroupingAverage,
	GroupingMinimum,
	GroupingMaximum,
	GroupingStandardDeviation,
	GroupingVariance,
	GroupingMedian,
}

// modes offered for text and other non-numeric columns
var textGroupingModes = []GroupingMode{
	GroupingDontSummarize,
	GroupingCount,
	GroupingCountDistinct,
	GroupingFirst,
	GroupingLast,
}

var numberGroupingModes = []GroupingMode{
	GroupingDontSummarize,
	GroupingSum,
	GroupingAverage,
	GroupingMinimum,
	GroupingMaximum,
	GroupingCountDistinct,
	GroupingCount,
	GroupingStandardDeviation,
	GroupingVariance,
	GroupingMedian,
}

// GroupingModesFor returns a fresh copy of the modes offered for a column
// type. The first entry is always GroupingDontSummarize.
func GroupingModesFor(typ PropertyType) []GroupingMode {
	if typ.IsNumeric() {
		return append([]GroupingMode(nil), numberGroupingModes...)
	}
	return append([]GroupingMode(nil), textGroupingModes...)
}

func (m GroupingMode) String() string {
	return string(m)
}

// Normalize maps unknown modes to GroupingDontSummarize.
func (m GroupingMode) Normalize() GroupingMode {
	if lo.Contains(AllGroupingModes, m) {
		return m
	}
	return GroupingDontSummarize
}

// Label is the human readable name shown in mode pickers.
func (m GroupingMode) Label() string {
	switch m {
	case GroupingCount:
		return "Count"
	case GroupingCountDistinct:
		return "Count (Distinct)"
	case GroupingFirst:
		return "First"
	case GroupingLast:
		return "Last"
	case GroupingSum:
		return "Sum"
	case GroupingAverage:
		return "Average"
	case GroupingMinimum:
		return "Minimum"
	case GroupingMaximum:
		return "Maximum"
	case GroupingStandardDeviation:
		return "Standard Deviation"
	case GroupingVariance:
		return "Variance"
	case GroupingMedian:
		return "Median"
	default:
		return "Don't Summarize"
	}
}

// Prefix is prepended to a column name in table headers, e.g. "Sum of ".
func (m GroupingMode) Prefix() string {
	switch m {
	case GroupingCount, GroupingCountDistinct:
		return "Count of "
	case GroupingFirst:
		return "First "
	case GroupingLast:
		return "Last "
	case GroupingSum:
		return "Sum of "
	case GroupingAverage:
		return "Average of "
	case GroupingMinimum:
		return "Min of "
	case GroupingMaximum:
		return "Max of "
	case GroupingStandardDeviation:
		return "Standard deviation of "
	case GroupingVariance:
		return "Variance of "
	case GroupingMedian:
		return "Median of "
	default:
		return ""
	}
}

// Validate checks that m is a known grouping mode
func (m GroupingMode) Validate() error {
	if lo.Contains(AllGroupingModes, m) {
		return nil
	}
	return ierr.NewErrorf("invalid grouping mode %q", string(m)).
		WithHintf("Grouping mode must be one of: %s", strings.Join(lo.Map(AllGroupingModes, func(m GroupingMode, _ int) string { return string(m) }), ", ")).
		Mark(ierr.ErrValidation)
}

var groupingModeAliases = map[string]GroupingMode{
	"dontsummarize":     GroupingDontSummarize,
	"none":              GroupingDontSummarize,
	"count":             GroupingCount,
	"countdistinct":     GroupingCountDistinct,
	"first":             GroupingFirst,
	"last":              GroupingLast,
	"sum":               GroupingSum,
	"average":           GroupingAverage,
	"avg":               GroupingAverage,
	"minimum":           GroupingMinimum,
	"minimun":           GroupingMinimum,
	"min":               GroupingMinimum,
	"maximum":           GroupingMaximum,
	"maximun":           GroupingMaximum,
	"max":               GroupingMaximum,
	"standarddeviation": GroupingStandardDeviation,
	"stddev":            GroupingStandardDeviation,
	"variance":          GroupingVariance,
	"median":            GroupingMedian,
}

// ParseGroupingMode accepts the enum value ("COUNT_DISTINCT"), its label
// ("Count (Distinct)"), camel case ("CountDistinct") and short forms such
// as "avg" or "stddev". An empty string parses as GroupingDontSummarize.
func ParseGroupingMode(s string) (GroupingMode, error) {
	if strings.TrimSpace(s) == "" {
		return GroupingDontSummarize, nil
	}
	key := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '(', ')', '\'':
			return -1
		}
		return r
	}, strings.ToLower(s))
	if mode, ok := groupingModeAliases[key]; ok {
		return mode, nil
	}
	return "", GroupingMode(s).Validate()
}
