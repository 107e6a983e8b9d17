package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recurag/internal/domain"
)

// AnswerPort is the TUI-facing subset of the QA service.
type AnswerPort interface {
	Answer(query string) (domain.Answer, error)
	CorpusSize() int
}

// Model is the Bubble Tea model for the interactive chat.
type Model struct {
	service  AnswerPort
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates a new chat model instance.
func New(service AnswerPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Context ready (%d chunks). Ask away.", service.CorpusSize()),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			answer, err := m.service.Answer(q)
			if err != nil {
				m.status = errorStyle.Render("Error: " + err.Error())
				return m, nil
			}
			m.status = fmt.Sprintf("depth=%d complexity=%d citations=%d",
				answer.Routing.Depth, answer.Routing.Complexity, len(answer.Citations))
			m.viewport.SetContent(renderAnswer(q, answer))
			m.viewport.GotoTop()
			m.input.SetValue("")
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Recursive Retrieval Chat")
	answer := answerBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + answer + "\n" + input + "\n" + status
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func renderAnswer(query string, answer domain.Answer) string {
	var b strings.Builder
	b.WriteString(questionStyle.Render(query))
	b.WriteString("\n\n")
	if !answer.Found() {
		b.WriteString(answer.Text)
		return b.String()
	}
	for _, c := range answer.Citations {
		b.WriteString("- " + c.Sentence + "\n")
		b.WriteString("  " + sourceStyle.Render(fmt.Sprintf("%s (%s)", c.Source, c.ChunkID)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
