package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proofgraph/proofgraph/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FilterOptionsModel - Interactive filter option selection
// =============================================================================

// filterToggle is one switchable filter pass in the interactive picker.
type filterToggle struct {
	label   string
	detail  string
	enabled bool
}

// FilterOptionsModel is the bubbletea model for picking filter options
// before a run. Space toggles the highlighted pass, enter starts the run.
type FilterOptionsModel struct {
	Toggles  []filterToggle
	Cursor   int
	Accepted bool
}

// NewFilterOptionsModel creates a picker pre-set from the given options.
func NewFilterOptionsModel(opts pipeline.Options) FilterOptionsModel {
	return FilterOptionsModel{
		Toggles: []filterToggle{
			{
				label:   "Hide technical nodes",
				detail:  "elide instances and compiler-generated helpers, rewiring around them",
				enabled: opts.HideTechnical,
			},
			{
				label:   "Prune orphaned nodes",
				detail:  "drop nodes left without any edges",
				enabled: opts.HideOrphaned,
			},
			{
				label:   "Transitive reduction",
				detail:  "remove edges implied by a longer path",
				enabled: opts.TransitiveReduction,
			},
		},
	}
}

// Apply writes the chosen toggles back onto opts.
func (m FilterOptionsModel) Apply(opts *pipeline.Options) {
	opts.HideTechnical = m.Toggles[0].enabled
	opts.HideOrphaned = m.Toggles[1].enabled
	opts.TransitiveReduction = m.Toggles[2].enabled
}

func (m FilterOptionsModel) Init() tea.Cmd {
	return nil
}

func (m FilterOptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Toggles)-1 {
				m.Cursor++
			}
		case " ":
			m.Toggles[m.Cursor].enabled = !m.Toggles[m.Cursor].enabled
		case "enter":
			m.Accepted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FilterOptionsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Filter Options"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ run  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.Toggles {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		box := "[ ]"
		if t.enabled {
			box = StyleSuccess.Render("[x]")
		}

		line := cursor + box + " " + t.label
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
			b.WriteString("\n")
			b.WriteString(listDimStyle.Render("      " + t.detail))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
