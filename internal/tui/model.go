package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flightchat/internal/session"
)

// Model is the Bubble Tea chat shell around the session engine. It shows
// the running transcript in a viewport and feeds each submitted line to the
// engine, one reply per line, same as the plain shell.
type Model struct {
	engine     *session.Engine
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	ready      bool
	quitting   bool
}

// New creates a new TUI model around the engine.
func New(engine *session.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "You: "
	ti.Placeholder = "Type a message and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:     engine,
		input:      ti,
		viewport:   vp,
		transcript: []string{botStyle.Render("Chatbot: ") + engine.Greeting()},
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + ih + 1 // header, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.quitting {
			line := m.input.Value()
			m.input.SetValue("")
			return m.submit(line)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	who := m.engine.Name()
	if who == "" {
		who = "You"
	}
	m.transcript = append(m.transcript, userStyle.Render(who+": ")+line)
	reply, done := m.engine.Handle(line)
	for _, l := range strings.Split(reply, "\n") {
		m.transcript = append(m.transcript, botStyle.Render("Chatbot: ")+l)
	}
	if name := m.engine.Name(); name != "" {
		m.input.Prompt = name + ": "
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
	if done {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the transcript above the input line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Flight Chat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	return header + "\n" + transcript + "\n" + input
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
