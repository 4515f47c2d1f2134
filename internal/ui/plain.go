package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nconklindev/sheetjson/internal/converter"
	"github.com/nconklindev/sheetjson/internal/rowrange"

	"github.com/charmbracelet/log"
)

// PlainOptions configures a run without the interactive screen.
type PlainOptions struct {
	Pipeline converter.Options
	Logger   *log.Logger

	// Prompt reads the file name, start row and end row as lines from the
	// input. Otherwise the three fields below are used as given.
	Prompt   bool
	FileName string
	Start    string
	End      string
}

// RunPlain asks the same questions as the interactive screen, line by line,
// runs the conversion and prints one line per result. It returns the process
// exit status.
func RunPlain(in io.Reader, out io.Writer, opts PlainOptions) int {
	root := converter.AbsRoot(opts.Pipeline.Root)
	opts.Pipeline.Root = root

	answers := bufio.NewScanner(in)
	ask := func(question, given string) string {
		if !opts.Prompt {
			return strings.TrimSpace(given)
		}
		fmt.Fprint(out, PromptStyle.Render(question+": "))
		if !answers.Scan() {
			fmt.Fprintln(out)
			return ""
		}
		return strings.TrimSpace(answers.Text())
	}

	if opts.Prompt {
		for _, note := range usageNotes {
			fmt.Fprintln(out, note)
		}
		fmt.Fprintln(out)
	}

	fileName := ask(promptFileName, opts.FileName)
	var inputFile string
	if fileName != "" {
		path, err := converter.ResolveNamed(root, fileName)
		if err != nil {
			fmt.Fprintln(out, ErrorStyle.Render("✗ "+err.Error()))
			return 1
		}
		inputFile = path
	}

	start := ask(promptStartRow, opts.Start)
	end := ask(promptEndRow, opts.End)
	r, err := rowrange.Parse(start, end)
	if err != nil {
		fmt.Fprintln(out, ErrorStyle.Render("✗ "+err.Error()))
		return 1
	}
	opts.Pipeline.Range = r

	p := converter.New(opts.Pipeline, opts.Logger)
	results, err := p.Convert(inputFile)
	if err != nil {
		fmt.Fprintln(out, ErrorStyle.Render("✗ "+err.Error()))
		return 0
	}

	fmt.Fprintln(out, formatResults(results, root))
	return 0
}
