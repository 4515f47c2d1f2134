package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nconklindev/sheetjson/internal/converter"
	"github.com/nconklindev/sheetjson/internal/rowrange"
	"github.com/nconklindev/sheetjson/internal/types"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type state int

const (
	stateFileName state = iota
	stateStartRow
	stateEndRow
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	input        textinput.Model
	opts         converter.Options
	logger       *log.Logger
	fileName     string
	inputFile    string
	startText    string
	results      []types.ConversionResult
	err          error
	fatal        bool
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionCompleteMsg
}

type conversionCompleteMsg struct {
	results []types.ConversionResult
	err     error
}

type progressMsg float64

func InitialModel(opts converter.Options, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Root = converter.AbsRoot(opts.Root)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 48
	ti.PromptStyle = PromptStyle
	ti.TextStyle = AnswerStyle
	ti.Focus()

	// Initialize progress bar
	prog := progress.New(progress.WithGradient("#FF8C42", "#FF9F5A"))

	return Model{
		state:    stateFileName,
		input:    ti,
		opts:     opts,
		logger:   logger,
		progress: prog,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ExitCode is the process status once the program has quit: 1 after a fatal
// input error, 0 otherwise.
func (m Model) ExitCode() int {
	if m.fatal {
		return 1
	}
	return 0
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(msg.Width-12, 60), 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFileName, stateStartRow, stateEndRow:
			switch msg.String() {
			case "ctrl+c", "esc":
				return m, tea.Quit
			case "enter":
				return m.submit()
			}

		case stateProcessing:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil

		case stateComplete, stateError:
			return m, tea.Quit
		}

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.results = msg.results
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil
	}

	if m.state <= stateEndRow {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit accepts the answer of the current prompt and moves on.
func (m Model) submit() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	switch m.state {
	case stateFileName:
		m.fileName = value
		if value != "" {
			path, err := converter.ResolveNamed(m.opts.Root, value)
			if err != nil {
				return m.fail(err)
			}
			m.inputFile = path
		}
		m.state = stateStartRow
		return m, nil

	case stateStartRow:
		m.startText = value
		m.state = stateEndRow
		return m, nil

	case stateEndRow:
		r, err := rowrange.Parse(m.startText, value)
		if err != nil {
			return m.fail(err)
		}
		m.opts.Range = r
		return m.convert()
	}

	return m, nil
}

func (m Model) fail(err error) (Model, tea.Cmd) {
	m.logger.Error("invalid input", "err", err)
	m.err = err
	m.fatal = true
	m.state = stateError
	m.input.Blur()
	return m, nil
}

func (m Model) convert() (Model, tea.Cmd) {
	m.state = stateProcessing
	m.input.Blur()
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionCompleteMsg, 1)

	p := converter.New(m.opts, m.logger)
	p.Progress = m.progressChan

	// Capture channels for the goroutine
	progressChan := m.progressChan
	resultChan := m.resultChan
	inputFile := m.inputFile

	go func() {
		results, err := p.Convert(inputFile)

		resultChan <- conversionCompleteMsg{results: results, err: err}

		close(progressChan)
		close(resultChan)
	}()

	return m, tea.Batch(
		waitForProgress(progressChan, resultChan),
		m.progress.Init(), // Start progress bar animation
	)
}

func waitForProgress(progressChan chan float64, resultChan chan conversionCompleteMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			// Progress channel closed, check result
			res, ok := <-resultChan
			if ok {
				return res
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFileName, stateStartRow, stateEndRow:
		return m.viewPrompts()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewPrompts() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(title))
	s.WriteString("\n")
	for _, note := range usageNotes {
		s.WriteString(SubtitleStyle.UnsetMarginBottom().Render(note))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	answered := func(label, answer string) {
		s.WriteString(PromptStyle.Render(label + ": "))
		s.WriteString(AnswerStyle.Render(answer))
		s.WriteString("\n")
	}

	switch m.state {
	case stateFileName:
		s.WriteString(PromptStyle.Render(promptFileName))
	case stateStartRow:
		answered(promptFileName, m.fileName)
		s.WriteString(PromptStyle.Render(promptStartRow))
	case stateEndRow:
		answered(promptFileName, m.fileName)
		answered(promptStartRow, m.startText)
		s.WriteString(PromptStyle.Render(promptEndRow))
	}
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: confirm • esc: quit"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("⇄ Processing..."))
	s.WriteString("\n\n")
	if m.inputFile != "" {
		s.WriteString(fmt.Sprintf("Converting %s, rows %s...", relTo(m.opts.Root, m.inputFile), rowrange.String(m.opts.Range)))
	} else {
		s.WriteString(fmt.Sprintf("Converting every spreadsheet under %s, rows %s...", m.opts.Root, rowrange.String(m.opts.Range)))
	}
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Conversion Complete!"))
	s.WriteString("\n\n")
	s.WriteString(formatResults(m.results, m.opts.Root))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	if !m.fatal {
		s.WriteString("\n\n")
		s.WriteString(SubtitleStyle.Render("The run stopped before all files were processed."))
	}
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}
