package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/kuperiu/bimsyncManager/internal/takeoff"
	"github.com/spf13/cobra"
)

type columnsOptions struct {
	representative int
	format         string
}

func newColumnsCommand(a *app) *cobra.Command {
	opts := &columnsOptions{}

	cmd := &cobra.Command{
		Use:   "columns <file|url>",
		Short: "List the columns a product file offers",
		Long: `List the identification, property set and quantity set columns derived
from the representative product. The path of each column is what pivot
--column expects.

Examples:
  takeoff columns products.json
  takeoff columns products.json --representative 3 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.representative, "representative", "r", 0, "Index of the product whose schema provides the columns")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func runColumns(cmd *cobra.Command, a *app, opts *columnsOptions, location string) error {
	source := sourceFor(location)
	sets, err := a.runner.Columns(cmd.Context(), model.ColumnsRequest{
		Source:         &source,
		Representative: opts.representative,
	})
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(sets)
	case "table":
		return printColumnSets(a, sets)
	default:
		return unknownFormat(opts.format, "table, json")
	}
}

func printColumnSets(a *app, sets []takeoff.DisplayPropertySet) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, set := range sets {
		if len(set.Properties) == 0 {
			continue
		}
		fmt.Fprintln(tw, colorSet.Sprint(set.Name))
		fmt.Fprintln(tw, colorHeader.Sprint("  NAME\tTYPE\tVALUE\tPATH"))
		for _, p := range set.Properties {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.Name, p.Type, p.DisplayedValue(), p.Path)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func sourceFor(location string) model.Source {
	if isURL(location) {
		return model.Source{Type: "url", URL: location}
	}
	return model.Source{Type: "file", URL: location}
}

func unknownFormat(format, allowed string) error {
	return ierr.NewErrorf("unknown format %q", format).
		WithHintf("Format must be one of: %s", allowed).
		Mark(ierr.ErrValidation)
}
