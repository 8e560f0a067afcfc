package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/kuperiu/bimsyncManager/internal/takeoff"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type pivotOptions struct {
	columns        []string
	moves          []string
	representative int
	format         string
}

func newPivotCommand(a *app) *cobra.Command {
	opts := &pivotOptions{}

	cmd := &cobra.Command{
		Use:   "pivot <file|url>...",
		Short: "Group products by the selected columns and print the pivot table",
		Long: `Select columns by path, give each a grouping mode and print one row per
group. Columns without a mode are grouped by value; any other mode
summarizes the column within its group. Several product files are
concatenated in the order given.

Modes: DONT_SUMMARIZE, COUNT, COUNT_DISTINCT, FIRST, LAST, SUM, AVERAGE,
MINIMUM, MAXIMUM, STANDARD_DEVIATION, VARIANCE, MEDIAN

Examples:
  takeoff pivot products.json --column ifcType --column attributes.Name.value=COUNT
  takeoff pivot products.json -c ifcType -c quantitySets.Qto.quantities.NetArea.value.value=sum --format csv
  takeoff pivot products.json -c ifcType -c attributes.Name.value --move 1:top`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPivot(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.columns, "column", "c", nil, "Column as path[=MODE], repeatable, in display order")
	cmd.Flags().StringArrayVar(&opts.moves, "move", nil, "Reorder a selected column as index:up|down|top|bottom, repeatable")
	cmd.Flags().IntVarP(&opts.representative, "representative", "r", 0, "Index of the product whose schema provides the columns")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table, csv or json")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func runPivot(cmd *cobra.Command, a *app, opts *pivotOptions, locations []string) error {
	columns, err := parseColumnFlags(opts.columns)
	if err != nil {
		return err
	}
	moves, err := parseMoveFlags(opts.moves)
	if err != nil {
		return err
	}

	spec := model.TakeoffSpec{
		Name:           strings.Join(locations, ", "),
		Sources:        lo.Map(locations, func(l string, _ int) model.Source { return sourceFor(l) }),
		Columns:        columns,
		Moves:          moves,
		Representative: opts.representative,
	}
	result, err := a.runner.Run(cmd.Context(), uuid.New().String(), spec)
	if err != nil {
		return err
	}

	switch opts.format {
	case "table":
		return printPivot(a, result)
	case "csv":
		return takeoff.WriteCSV(a.out, result.Columns, result.Rows)
	case "json":
		return takeoff.WriteJSON(a.out, result.Columns, result.Rows)
	default:
		return unknownFormat(opts.format, "table, csv, json")
	}
}

// parseColumnFlags reads "path[=MODE]" values. The mode follows the last
// "=" so paths stay free-form.
func parseColumnFlags(values []string) ([]model.ColumnSpec, error) {
	specs := make([]model.ColumnSpec, 0, len(values))
	for _, value := range values {
		path, modeText := value, ""
		if i := strings.LastIndex(value, "="); i >= 0 {
			path, modeText = value[:i], value[i+1:]
		}
		if path == "" {
			return nil, ierr.NewErrorf("empty column path in %q", value).
				WithHint("Columns are given as path[=MODE], e.g. ifcType or attributes.Name.value=COUNT").
				Mark(ierr.ErrValidation)
		}
		mode, err := model.ParseGroupingMode(modeText)
		if err != nil {
			return nil, err
		}
		specs = append(specs, model.ColumnSpec{Path: takeoff.ParsePath(path), Mode: mode})
	}
	return specs, nil
}

func parseMoveFlags(values []string) ([]model.ColumnMove, error) {
	moves := make([]model.ColumnMove, 0, len(values))
	for _, value := range values {
		indexText, direction, ok := strings.Cut(value, ":")
		index, err := strconv.Atoi(indexText)
		if !ok || err != nil {
			return nil, ierr.NewErrorf("invalid move %q", value).
				WithHint("Moves are given as index:direction, e.g. 2:top").
				Mark(ierr.ErrValidation)
		}
		moves = append(moves, model.ColumnMove{Index: index, Direction: strings.ToLower(direction)})
	}
	return moves, nil
}

func printPivot(a *app, result *model.TakeoffResult) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	header := lo.Map(result.Columns, func(c model.ColumnHeader, _ int) string { return c.DisplayName })
	fmt.Fprintln(tw, colorHeader.Sprint(strings.Join(header, "\t")))
	for _, row := range result.Rows {
		cells := lo.Map(result.Columns, func(c model.ColumnHeader, _ int) string {
			return takeoff.FormatCell(row[c.ColumnGUID], "")
		})
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := result.Summary
	fmt.Fprintf(a.errOut, "%d rows from %d products in %v\n", s.RowCount, s.ProductCount, s.Duration)
	return nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
