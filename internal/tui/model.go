package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"manualrag/internal/domain"
)

// SearchPort is the TUI-facing subset of the retrieval service.
type SearchPort interface {
	SearchScored(query string) ([]domain.ScoredChunk, error)
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   SearchPort
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.ScoredChunk
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance. The summary is shown under the header.
func New(service SearchPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "例：勤怠 打刻"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Type a question and press Enter."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.search(q)
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) search(q string) Model {
	res, err := m.service.SearchScored(q)
	switch {
	case err != nil:
		// the raw error stays in the log; the screen gets a short notice
		m.status = "Manuals could not be read."
		m.results = nil
	case len(res) == 0:
		m.status = fmt.Sprintf("No passages for %q", q)
		m.results = nil
	default:
		m.status = fmt.Sprintf("%d passages for %q", len(res), q)
		m.results = res
	}
	m.cursor = 0
	m.lastQuery = q
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Manual Search")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  score=%.3f  %s#%d",
		m.cursor+1, len(m.results), r.Score, r.Chunk.DocumentID, r.Chunk.Index)
	return title + "\n\n" + highlightQueryWords(r.Chunk.Text, m.lastQuery)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightQueryWords marks every occurrence of each whitespace-separated
// query word. Longer words are marked first so they are not split by shorter ones.
func highlightQueryWords(text, query string) string {
	words := uniqueWords(query)
	if len(words) == 0 || text == "" {
		return text
	}
	var b strings.Builder
	for i := 0; i < len(text); {
		matched := ""
		for _, w := range words {
			if strings.HasPrefix(text[i:], w) {
				matched = w
				break
			}
		}
		if matched == "" {
			j := i + 1
			for j < len(text) && !startsAny(text[j:], words) {
				j++
			}
			b.WriteString(text[i:j])
			i = j
			continue
		}
		b.WriteString(highlightStyle.Render(matched))
		i += len(matched)
	}
	return b.String()
}

func uniqueWords(query string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Fields(query) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	return words
}

func startsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(s, w) {
			return true
		}
	}
	return false
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
