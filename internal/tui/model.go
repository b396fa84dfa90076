package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"marketcheck/internal/domain"
)

// pipelineMsg carries the outcome of one pipeline run back into Update.
// runID ties it to the submission that started it; a late result from a
// superseded run is dropped.
type pipelineMsg struct {
	runID       int
	competitors []domain.ScoredCandidate
	report      string
	err         error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service     domain.MarketService
	topN        int
	input       textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	competitors []domain.ScoredCandidate
	report      string
	status      string
	busy        bool
	runID       int
	ready       bool
}

// New creates a new TUI model instance.
func New(service domain.MarketService, topN int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe your business idea and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{
		service:  service,
		topN:     topN,
		input:    ti,
		viewport: vp,
		spinner:  sp,
		status:   "Enter an idea to check the market.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and pipeline events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 1
		totalFooterLines := 1
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case pipelineMsg:
		if msg.runID != m.runID {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.competitors = nil
			m.report = ""
		} else if len(msg.competitors) == 0 {
			m.status = "No results found."
			m.competitors = nil
			m.report = ""
		} else {
			m.status = fmt.Sprintf("%d similar businesses found.", len(msg.competitors))
			m.competitors = msg.competitors
			m.report = msg.report
		}
		m.viewport.SetContent(m.renderResults())
		m.viewport.GotoTop()
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			idea := strings.TrimSpace(m.input.Value())
			if idea == "" {
				// Blank input never reaches the pipeline.
				m.status = "Please enter an idea!"
				return m, nil
			}
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.runID++
			m.status = "Searching for similar businesses..."
			return m, tea.Batch(m.spinner.Tick, runPipeline(m.service, idea, m.topN, m.runID))
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

// runPipeline runs the whole request off the UI loop: competitor ranking
// first, then the market report when anything was found.
func runPipeline(service domain.MarketService, idea string, topN, runID int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		competitors, err := service.FindCompetitors(ctx, idea, topN)
		if err != nil {
			return pipelineMsg{runID: runID, err: err}
		}
		if len(competitors) == 0 {
			return pipelineMsg{runID: runID}
		}
		report, err := service.GenerateReport(ctx, idea, competitors)
		if err != nil {
			return pipelineMsg{runID: runID, err: err}
		}
		return pipelineMsg{runID: runID, competitors: competitors, report: report}
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Market Validator")
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.competitors) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Top Similar Businesses"))
	b.WriteString("\n\n")
	for i, c := range m.competitors {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%d. %s", i+1, c.Title)))
		b.WriteString("\n")
		if c.Link != "" {
			b.WriteString("   " + linkStyle.Render(c.Link) + "\n")
		}
		b.WriteString(scoreStyle.Render(fmt.Sprintf("   similarity %.2f", c.Score)))
		b.WriteString("\n")
		if c.Snippet != "" {
			b.WriteString("   " + c.Snippet + "\n")
		}
		b.WriteString("\n")
	}
	if m.report != "" {
		b.WriteString(sectionStyle.Render("Market Validation Report"))
		b.WriteString("\n\n")
		b.WriteString(m.report)
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	linkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)
	scoreStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
