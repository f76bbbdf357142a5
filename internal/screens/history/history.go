package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/store"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// historyLoadedMsg carries the session list once loaded.
type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Hardest  []store.CardStat
	Err      error
}

// HistoryScreen displays past sessions and the most-missed cards.
type HistoryScreen struct {
	sessions store.SessionRepo

	records  []store.SessionRecord
	hardest  []store.CardStat
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a history screen over the session store.
func New(sessions store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{sessions: sessions}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.sessions
	return func() tea.Msg {
		ctx := context.Background()

		records, err := repo.RecentSessions(ctx, 50)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Hardest cards are a bonus panel; a failure there hides the
		// panel, not the history.
		hardest, _ := repo.HardestCards(ctx, 3, 5)

		return historyLoadedMsg{Sessions: records, Hardest: hardest}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Sessions
			s.hardest = msg.Hardest
		}
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
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Go study a deck!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.StartedAt.Format("Jan 02, 2006")
		mins := rec.DurationMs / 60000
		secs := (rec.DurationMs / 1000) % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %d cards  %d%%  %s",
			prefix, dateStr, truncate(rec.DeckTitle, 24), rec.Total, rec.Percentage, durationStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if len(s.hardest) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Toughest cards")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Border).Render(
				strings.Repeat("─", minOf(width-8, 60)))))
		b.WriteString("\n")

		for _, cs := range s.hardest {
			line := fmt.Sprintf("  %-32s  %d/%d correct",
				truncate(cs.Prompt, 32), cs.Correct, cs.Attempts)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}
