package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	sess "github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// SummaryScreen displays the end-of-session tally.
type SummaryScreen struct {
	summary   sess.Summary
	deckTitle string
	outcomes  []sess.Outcome
	saveErr   error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. saveErr, when set, means the session could
// not be written to history; the tally still shows.
func New(summary sess.Summary, deckTitle string, outcomes []sess.Outcome, saveErr error) *SummaryScreen {
	return &SummaryScreen{
		summary:   summary,
		deckTitle: deckTitle,
		outcomes:  outcomes,
		saveErr:   saveErr,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.deckTitle))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	statsLine := fmt.Sprintf("Cards: %d        Correct: %d        Time: %d:%02d",
		sum.Total, sum.Correct, mins, secs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bar := components.NewProgressBar(
		fmt.Sprintf("Score %d%%", sum.Percentage),
		float64(sum.Correct)/float64(maxOf(sum.Total, 1)),
		false,
		minOf(width-8, 50),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if missed := s.missedOutcomes(); len(missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", minOf(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Missed cards")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, o := range missed {
			line := fmt.Sprintf("  %s    %s  (you said: %s)",
				o.Prompt,
				lipgloss.NewStyle().Foreground(theme.Success).Render(o.Answer),
				o.Given)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("Could not save to history: %s", s.saveErr)))
	}

	return b.String()
}

// missedOutcomes returns the incorrectly answered questions in answer order.
func (s *SummaryScreen) missedOutcomes() []sess.Outcome {
	var missed []sess.Outcome
	for _, o := range s.outcomes {
		if !o.IsCorrect {
			missed = append(missed, o)
		}
	}
	return missed
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
