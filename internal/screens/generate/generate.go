package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/deckgen"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// deckGeneratedMsg is sent when generation and saving finish.
type deckGeneratedMsg struct {
	Deck *deck.Deck
	Path string
	Err  error
}

const (
	fieldTopic = iota
	fieldCount
)

// GenerateScreen drives LLM deck generation: topic in, saved deck out.
type GenerateScreen struct {
	generator *deckgen.Generator
	dir       string

	topic components.TextInput
	count components.TextInput
	focus int

	generating bool
	done       *deck.Deck
	savedPath  string
	errMsg     string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates a deck generation screen. A nil generator means no LLM
// provider is configured; the screen explains instead of failing.
func New(generator *deckgen.Generator, dir string) *GenerateScreen {
	return &GenerateScreen{
		generator: generator,
		dir:       dir,
		topic:     components.NewTextInput("e.g. Spanish kitchen vocabulary", false, 60),
		count:     components.NewTextInput("15", true, 3),
	}
}

func (s *GenerateScreen) Init() tea.Cmd {
	if s.generator == nil {
		return nil
	}
	return s.topic.Init()
}

func (s *GenerateScreen) Title() string {
	return "Generate Deck"
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	if s.generator == nil || s.done != nil || s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckGeneratedMsg:
		s.generating = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.done = msg.Deck
			s.savedPath = msg.Path
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *GenerateScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Terminal states: any confirm key goes back.
	if s.generator == nil || s.done != nil || s.errMsg != "" {
		switch key {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.generating {
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "shift+tab":
		if s.focus == fieldTopic {
			s.focus = fieldCount
		} else {
			s.focus = fieldTopic
		}
		return s, nil
	case "enter":
		return s.startGeneration()
	}

	return s.forwardToInput(msg)
}

func (s *GenerateScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.generator == nil || s.generating || s.done != nil || s.errMsg != "" {
		return s, nil
	}
	var cmd tea.Cmd
	if s.focus == fieldTopic {
		s.topic, cmd = s.topic.Update(msg)
	} else {
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

// startGeneration kicks off the LLM request and deck save.
func (s *GenerateScreen) startGeneration() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		return s, nil
	}
	count, err := s.count.NumericValue()
	if err != nil {
		count = 0 // generator falls back to its default
	}

	s.generating = true
	generator := s.generator
	dir := s.dir

	return s, func() tea.Msg {
		d, err := generator.Generate(context.Background(), topic, count, "")
		if err != nil {
			return deckGeneratedMsg{Err: err}
		}

		path := filepath.Join(dir, slugify(d.Title)+".json")
		if err := deck.Save(d, path); err != nil {
			return deckGeneratedMsg{Err: err}
		}
		d.Path = path
		return deckGeneratedMsg{Deck: d, Path: path}
	}
}

func (s *GenerateScreen) View(width, height int) string {
	if s.generator == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  No LLM provider configured.\n\n" +
				"  Set FLASHIZ_ANTHROPIC_API_KEY, FLASHIZ_OPENAI_API_KEY or\n" +
				"  FLASHIZ_GEMINI_API_KEY to enable deck generation.")
	}
	if s.generating {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n\n  Generating deck... this can take a minute.")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Generation failed: %s\n\n  Press Enter to go back.", s.errMsg))
	}
	if s.done != nil {
		var b strings.Builder
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Success).Bold(true).
			Render(fmt.Sprintf("Created %q with %d cards", s.done.Title, len(s.done.Cards))))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Saved to "+s.savedPath))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Find it under Study on the main menu."))
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render("What should the deck cover?"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		s.renderField("Topic", s.topic.View(), s.focus == fieldTopic)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		s.renderField("Cards", s.count.View(), s.focus == fieldCount)))

	return b.String()
}

func (s *GenerateScreen) renderField(label, input string, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return labelStyle.Render(label+": ") + input
}

// slugify turns a deck title into a safe file name.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "deck"
	}
	return slug
}
