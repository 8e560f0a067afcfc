package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/kuperiu/bimsyncManager/internal/config"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/takeoff"
	"github.com/spf13/cobra"
)

var (
	colorHeader = color.New(color.Bold)
	colorError  = color.New(color.FgRed)
	colorSet    = color.New(color.FgCyan, color.Bold)
)

// app carries what every command needs once flags are parsed.
type app struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	noColor bool
	log     *logger.Logger
	runner  *takeoff.Runner
}

// setup builds the logger and runner. Logs go to stderr and stay quiet
// unless --verbose is set.
func (a *app) setup() error {
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := config.NewConfig()
	if err != nil {
		cfg = config.GetDefaultConfig()
	}

	level := "error"
	if a.verbose {
		level = "debug"
	}
	a.log, err = logger.NewLogger(level)
	if err != nil {
		return err
	}

	a.runner = takeoff.NewRunner(takeoff.NewIngestor(cfg, nil, a.log), nil, a.log)
	return nil
}

// NewRootCommand creates the takeoff CLI.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "takeoff",
		Short: "Quantity takeoff over bimsync product exports",
		Long: `Derive takeoff columns from IFC products exported by bimsync, group them
and print pivoted quantity tables.

Examples:
  takeoff columns products.json
  takeoff pivot products.json --column ifcType --column quantitySets.Qto.quantities.NetArea.value.value=SUM`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log ingestion and run details to stderr")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newColumnsCommand(a))
	root.AddCommand(newPivotCommand(a))
	return root
}

// FormatError renders a command error with its hint for the terminal.
func FormatError(err error) string {
	msg := "Error: " + err.Error()
	if hint := ierr.DisplayHint(err); hint != "" && hint != err.Error() {
		msg += "\n  " + hint
	}
	return colorError.Sprint(msg)
}
