package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/quizgen"
	sess "github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// renderQuestion renders the active question with its input area.
func renderQuestion(snap sess.Snapshot, width int) string {
	q := snap.Question
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	// Progress line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d/%d", snap.Index+1, snap.Total))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			snap.Correct,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			snap.Incorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	// Prompt (centered).
	promptStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(promptStyle.Render(q.Prompt))
	b.WriteString("\n")

	if q.Hint != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Hint: " + q.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Mode == quizgen.ModeMultipleChoice {
		b.WriteString(renderOptions(snap, width))
	} else {
		cursor := lipgloss.NewStyle().Foreground(theme.Primary).Render("▌")
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + snap.TypedAnswer + cursor)
		b.WriteString(answerLine)
	}

	return b.String()
}

// renderOptions renders the multiple-choice option list.
func renderOptions(snap sess.Snapshot, width int) string {
	var b strings.Builder
	for i, opt := range snap.Question.Options {
		prefix := "  "
		if i == snap.SelectedOption {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt.Text)

		if i == snap.SelectedOption {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	selectLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\nSelect (1-4) or use arrows + Enter")
	b.WriteString(selectLine)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderResult renders the graded answer card.
func renderResult(snap sess.Snapshot, width int) string {
	o := snap.LastOutcome
	if o == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if o.IsCorrect {
		headline := "Correct!"
		if o.Match != nil && !o.Match.IsExact {
			headline = fmt.Sprintf("Close enough! (%s)", o.Match.Matched)
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render(headline))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Correct answer: %s", o.Answer)))
	}

	b.WriteString("\n\n")

	if exp := snap.Question.Explanation; exp != "" {
		expStyle := lipgloss.NewStyle().
			Width(minOf(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(exp)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("This session will not be recorded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the pre-session state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Shuffling cards...")
}

// renderSaving renders the brief post-session persist state.
func renderSaving(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Saving session...")
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}
