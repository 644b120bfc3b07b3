// Package tui implements the interactive statement-review screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkotecha/fireplan/internal/cli"
	"github.com/rkotecha/fireplan/internal/model"
)

// KeyMap defines the review-screen key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Accept key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Accept, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Accept, k.Quit}}
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle keep"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "abort"),
		),
	}
}

var (
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	selectedStyle = lipgloss.NewStyle().Foreground(cli.SuccessColor)
	flaggedStyle  = lipgloss.NewStyle().Foreground(cli.WarningColor)
)

// ReviewModel drives the duplicate-review screen. The user walks the batch,
// toggles which assets to keep, and either accepts or aborts.
type ReviewModel struct {
	help     help.Model
	keymap   KeyMap
	assets   []model.ReviewAsset
	cursor   int
	accepted bool
	aborted  bool
}

// NewReviewModel creates a review screen over a detected batch.
func NewReviewModel(assets []model.ReviewAsset) ReviewModel {
	return ReviewModel{
		help:   help.New(),
		keymap: DefaultKeyMap(),
		assets: assets,
	}
}

// Init implements tea.Model.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keymap.Down):
			if m.cursor < len(m.assets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keymap.Toggle):
			if len(m.assets) > 0 {
				m.assets[m.cursor].IsSelected = !m.assets[m.cursor].IsSelected
			}
		case key.Matches(msg, m.keymap.Accept):
			m.accepted = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("Review imported assets"))
	b.WriteString("\n\n")

	for i, a := range m.assets {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		check := "[ ]"
		line := fmt.Sprintf("%s %-40s %15s", check, cli.Truncate(a.Name, 40), cli.FormatCurrency(a.CurrentValue))
		if a.IsSelected {
			line = selectedStyle.Render(strings.Replace(line, "[ ]", "[x]", 1))
		}
		b.WriteString(prefix + line + "\n")

		if i == m.cursor {
			for _, match := range a.DuplicateMatches {
				b.WriteString(flaggedStyle.Render(fmt.Sprintf(
					"      %s %.0f%% similar to %q (%s)",
					cli.WarningIcon, match.SimilarityScore, match.AssetName, match.MatchType)))
				b.WriteString("\n")
			}
		} else if a.IsDuplicate {
			b.WriteString(flaggedStyle.Render(fmt.Sprintf("      %d possible duplicate(s)", len(a.DuplicateMatches))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

// Assets returns the batch with the user's final selection state.
func (m ReviewModel) Assets() []model.ReviewAsset {
	return m.assets
}

// Aborted reports whether the user quit without accepting.
func (m ReviewModel) Aborted() bool {
	return m.aborted
}

// Run launches the review screen and blocks until the user accepts or
// aborts, returning the final selections.
func Run(assets []model.ReviewAsset) ([]model.ReviewAsset, bool, error) {
	program := tea.NewProgram(NewReviewModel(assets))
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("review UI failed: %w", err)
	}

	result, ok := final.(ReviewModel)
	if !ok {
		return nil, false, fmt.Errorf("unexpected review model type %T", final)
	}
	return result.Assets(), result.Aborted(), nil
}
