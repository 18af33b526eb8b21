package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pager styles
var (
	pagerHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	pagerFooterStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// pagerChrome is the number of lines used by the header and footer.
const pagerChrome = 4

// =============================================================================
// PagerModel - Scrollable view over rendered rows
// =============================================================================

// PagerModel is the bubbletea model behind `gitlanes view`. Lines already
// carry their own color escapes; the pager only windows them.
type PagerModel struct {
	Title  string
	Status string
	Lines  []string
	Offset int
	Height int
}

// NewPagerModel creates a pager showing lines from the top.
func NewPagerModel(title, status string, lines []string) PagerModel {
	return PagerModel{
		Title:  title,
		Status: status,
		Lines:  lines,
		Height: 20,
	}
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Offset--
		case "down", "j", "enter":
			m.Offset++
		case "pgup", "b":
			m.Offset -= m.Height
		case "pgdown", " ", "f":
			m.Offset += m.Height
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - pagerChrome
		if m.Height < 1 {
			m.Height = 1
		}
	}
	m.Offset = min(max(m.Offset, 0), m.maxOffset())
	return m, nil
}

// maxOffset is the offset that shows the last page.
func (m PagerModel) maxOffset() int {
	return max(len(m.Lines)-m.Height, 0)
}

func (m PagerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	if m.Status != "" {
		b.WriteString("  ")
		b.WriteString(m.Status)
	}
	b.WriteString("\n")
	b.WriteString(pagerHelpStyle.Render("↑/↓ scroll  space/b page  g/G top/bottom  q quit"))
	b.WriteString("\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.Lines[i])
		b.WriteString("\n")
	}
	for i := end - m.Offset; i < m.Height; i++ {
		b.WriteString("\n")
	}

	b.WriteString(pagerFooterStyle.Render(m.position()))
	return b.String()
}

// position describes the visible window, e.g. "[1-20/64]".
func (m PagerModel) position() string {
	if len(m.Lines) == 0 {
		return "[empty]"
	}
	end := min(m.Offset+m.Height, len(m.Lines))
	return fmt.Sprintf("[%d-%d/%d]", m.Offset+1, end, len(m.Lines))
}
