package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/registry"
	"github.com/vovakirdan/stop-yourself/internal/storage"
)

// menuHistory is how many recent round outcomes each menu entry shows.
const menuHistory = 10

// MenuItem is one playable variant together with its stored history.
type MenuItem struct {
	GameID   string
	Title    string
	Best     int            // High score, 0 when none is stored
	Played   int            // Finished games
	Outcomes map[string]int // Round count per outcome
	Recent   []string       // Latest round outcomes, newest first
}

// MenuModel is the Bubble Tea model for the variant picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, loadMenuItem(store, g))
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// loadMenuItem fills in a variant's history. Storage errors leave the
// history empty; the menu stays usable without a database.
func loadMenuItem(store *storage.Store, g registry.GameInfo) MenuItem {
	item := MenuItem{GameID: g.ID, Title: g.Title}
	if store == nil {
		return item
	}
	if stats, err := store.GetGameStats(g.ID); err == nil {
		item.Best = stats.HighScore
		item.Played = stats.GamesCount
		item.Outcomes = stats.Outcomes
	}
	if rounds, err := store.RecentRounds(g.ID, menuHistory); err == nil {
		for _, r := range rounds {
			item.Recent = append(item.Recent, r.Outcome)
		}
	}
	return item
}

// outcomeMark is the one-letter tag for a round outcome in the history strip.
func outcomeMark(outcome string) byte {
	switch outcome {
	case "survived":
		return 'S'
	case "died":
		return 'x'
	case "defended":
		return 'D'
	case "breached":
		return '!'
	default:
		return '?'
	}
}

// historyStrip renders recent outcomes oldest first so the newest round
// sits at the right edge.
func historyStrip(recent []string) string {
	if len(recent) == 0 {
		return "no rounds yet"
	}
	b := make([]byte, len(recent))
	for i, o := range recent {
		b[len(recent)-1-i] = outcomeMark(o)
	}
	return string(b)
}

// summary is the one-line record shown under the highlighted variant.
func (it MenuItem) summary() string {
	if it.Played == 0 && len(it.Recent) == 0 {
		return "not played yet"
	}
	return fmt.Sprintf("best %d in %d games  |  defended %d  breached %d  |  %s",
		it.Best, it.Played, it.Outcomes["defended"], it.Outcomes["breached"], historyStrip(it.Recent))
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	line := func(text string) {
		b.WriteString(centerText(text, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	line("  S T O P   Y O U R S E L F  ")
	b.WriteString("\n")
	line("Reach the goal, then stop yourself from reaching it")
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		best := ""
		if item.Best > 0 {
			best = fmt.Sprintf("  (best %d)", item.Best)
		}
		line(cursor + item.Title + best)
	}

	if m.cursor < len(m.items) {
		b.WriteString("\n")
		line(m.items[m.cursor].summary())
		line("S survived  x died  D defended  ! breached")
	}

	b.WriteString("\n")
	line("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
	} else {
		result.Quit = true
	}

	return result, nil
}
