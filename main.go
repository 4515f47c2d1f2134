package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nconklindev/sheetjson/internal/converter"
	"github.com/nconklindev/sheetjson/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type flags struct {
	file        string
	start       string
	end         string
	dir         string
	sheetSuffix bool
	logLevel    string
	logFile     string
}

func main() {
	exitCode := 0
	if err := newRootCmd(&exitCode).Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd(exitCode *int) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "sheetjson",
		Short: "Slice spreadsheet rows into JSON files",
		Long: `sheetjson turns a range of spreadsheet rows into a JSON array: the first
row of the range holds the keys, every following row becomes one object.

Run it without flags to be asked for a file name and a row range. Leave the
file name blank to convert every .xlsx/.xls file below the current directory.
Pass --start to skip the questions.`,
		Version:      fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(cmd, f)
			*exitCode = code
			return err
		},
	}
	cmd.SetVersionTemplate("sheetjson {{.Version}}\n")

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "input file name without extension, used with --start (blank: scan the directory)")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "start row, 1-based; setting it skips the questions")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "end row, inclusive (blank: through the last row)")
	cmd.Flags().StringVar(&f.dir, "dir", ".", "directory names are resolved against and scans start from")
	cmd.Flags().BoolVar(&f.sheetSuffix, "sheet-suffix", false, "write <name>.<sheet>.json for each sheet instead of one <name>.json")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "append logs to this file")

	return cmd
}

func run(cmd *cobra.Command, f flags) (int, error) {
	interactive := !cmd.Flags().Changed("start") &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))

	logger, closeLog, err := newLogger(f, interactive)
	if err != nil {
		return 1, err
	}
	defer closeLog()

	opts := converter.Options{
		Root:        f.dir,
		SheetSuffix: f.sheetSuffix,
	}

	if !interactive {
		return ui.RunPlain(os.Stdin, cmd.OutOrStdout(), ui.PlainOptions{
			Pipeline: opts,
			Logger:   logger,
			Prompt:   !cmd.Flags().Changed("start"),
			FileName: f.file,
			Start:    f.start,
			End:      f.end,
		}), nil
	}

	p := tea.NewProgram(ui.InitialModel(opts, logger))
	final, err := p.Run()
	if err != nil {
		return 1, fmt.Errorf("run program: %w", err)
	}
	return final.(ui.Model).ExitCode(), nil
}

// newLogger writes to --log-file when set. Without it, interactive runs log
// nowhere, since stderr shares the terminal with the program.
func newLogger(f flags, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(f.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case f.logFile != "":
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = file
		closeFn = func() { file.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "sheetjson",
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}
