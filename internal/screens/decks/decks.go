package decks

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/study"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// decksLoadedMsg is sent when deck discovery finishes.
type decksLoadedMsg struct {
	Decks    []*deck.Deck
	Problems []error
}

// DecksScreen lets the learner pick a deck to study.
type DecksScreen struct {
	dir  string
	opts study.Options

	decks    []*deck.Deck
	problems []error
	selected int
	loaded   bool
}

var _ screen.Screen = (*DecksScreen)(nil)
var _ screen.KeyHintProvider = (*DecksScreen)(nil)

// New creates a deck picker over the given deck directory.
func New(dir string, opts study.Options) *DecksScreen {
	return &DecksScreen{dir: dir, opts: opts}
}

func (s *DecksScreen) Init() tea.Cmd {
	dir := s.dir
	return func() tea.Msg {
		decks, problems := deck.Discover(dir)
		return decksLoadedMsg{Decks: decks, Problems: problems}
	}
}

func (s *DecksScreen) Title() string {
	return "Decks"
}

func (s *DecksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DecksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		s.decks = msg.Decks
		s.problems = msg.Problems
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.decks)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= 0 && s.selected < len(s.decks) {
				d := s.decks[s.selected]
				opts := s.opts
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: study.New(d, opts)}
				}
			}
		}
	}
	return s, nil
}

func (s *DecksScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Looking for decks...")
	}
	if len(s.decks) == 0 {
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\n  No decks found in %s", s.dir)))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Drop deck JSON files there, or generate one from the main menu."))
		b.WriteString(s.renderProblems(width))
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, d := range s.decks {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s", prefix, d.Title,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("(%d cards)", len(d.Cards))))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if i == s.selected && d.Description != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+d.Description)))
			b.WriteString("\n")
		}
	}

	b.WriteString(s.renderProblems(width))
	return b.String()
}

// renderProblems lists deck files that failed to load, so a broken deck is
// visible instead of silently missing.
func (s *DecksScreen) renderProblems(width int) string {
	if len(s.problems) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, p := range s.problems {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("  ! "+p.Error())))
		b.WriteString("\n")
	}
	return b.String()
}
