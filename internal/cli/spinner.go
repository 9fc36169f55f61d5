package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg struct{}
type spinnerStopMsg struct{}

type spinnerModel struct {
	message  string
	frame    int
	stopping bool
}

func (m spinnerModel) Init() tea.Cmd { return spinnerTick() }

func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case spinnerTickMsg:
		m.frame++
		return m, spinnerTick()
	case spinnerStopMsg:
		m.stopping = true
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.stopping {
		return ""
	}
	frame := spinnerFrames[m.frame%len(spinnerFrames)]
	return styleIconSpinner.Render(frame) + " " + StyleDim.Render(m.message)
}

// Spinner shows a progress indicator on stderr while a stage runs.
// When stderr is not a terminal the spinner is inert.
type Spinner struct {
	prog *tea.Program
	done chan struct{}
}

func newSpinner(message string) *Spinner {
	if !isTerminal(os.Stderr) {
		return &Spinner{}
	}
	prog := tea.NewProgram(
		spinnerModel{message: message},
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	return &Spinner{prog: prog, done: make(chan struct{})}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if s.prog == nil {
		return
	}
	go func() {
		defer close(s.done)
		_, _ = s.prog.Run()
	}()
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	if s.prog == nil {
		return
	}
	s.prog.Send(spinnerStopMsg{})
	<-s.done
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
