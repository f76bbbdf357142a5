package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/deckgen"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/decks"
	"github.com/abhisek/flashiz/internal/screens/generate"
	"github.com/abhisek/flashiz/internal/screens/history"
	"github.com/abhisek/flashiz/internal/screens/study"
	"github.com/abhisek/flashiz/internal/store"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// Config wires the home screen to the rest of the app.
type Config struct {
	// Study carries session settings plus the history store.
	Study study.Options

	// DecksDir is where decks are discovered and generated decks saved.
	DecksDir string

	// Generator is nil when no LLM provider is configured; the generate
	// entry stays visible but explains itself.
	Generator *deckgen.Generator
}

// totalsLoadedMsg carries lifetime study totals for the stats line.
type totalsLoadedMsg struct {
	Totals store.Totals
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	cfg    Config
	menu   components.Menu
	totals store.Totals
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(cfg Config) *HomeScreen {
	items := []components.MenuItem{
		{Label: "STUDY", Detail: "pick a deck", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: decks.New(cfg.DecksDir, cfg.Study)}
			}
		}},
		{Label: "GENERATE DECK", Detail: generateDetail(cfg.Generator), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: generate.New(cfg.Generator, cfg.DecksDir)}
			}
		}},
		{Label: "HISTORY", Detail: "past sessions", Disabled: cfg.Study.Sessions == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(cfg.Study.Sessions)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		cfg:  cfg,
		menu: components.NewMenu(items),
	}
}

func generateDetail(g *deckgen.Generator) string {
	if g == nil {
		return "needs an API key"
	}
	return "new deck from a topic"
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.cfg.Study.Sessions
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		totals, err := repo.Totals(context.Background())
		if err != nil {
			return totalsLoadedMsg{}
		}
		return totalsLoadedMsg{Totals: totals}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(totalsLoadedMsg); ok {
		h.totals = m.Totals
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("F L A S H I Z")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("flashcards in your terminal")
	sections = append(sections, title+"\n"+subtitle)

	if h.totals.Sessions > 0 {
		accuracy := 0
		if h.totals.Questions > 0 {
			accuracy = h.totals.Correct * 100 / h.totals.Questions
		}
		stats := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d sessions  ·  %d cards answered  ·  %d%% lifetime accuracy",
				h.totals.Sessions, h.totals.Questions, accuracy))
		sections = append(sections, stats)
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
