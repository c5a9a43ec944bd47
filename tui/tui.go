// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Browses clients, negotiations, products, and schedules with cascade-aware deletes
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/viz"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewConfirmDelete
)

// EntityType represents the tab being browsed
type EntityType int

const (
	EntityClients EntityType = iota
	EntityNegotiations
	EntityProducts
	EntitySchedules
	entityCount
)

// Model is the main bubbletea model
type Model struct {
	state      *crm.State
	labels     viz.Labels
	viewMode   ViewMode
	entityType EntityType

	// List view state
	selectedRow int
	searching   bool
	search      textinput.Model

	// Detail and delete state; the key of the selected record
	selectedID string
	message    string

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(state *crm.State) Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "

	return Model{
		state:      state,
		labels:     viz.LabelsFor(state.Preferences().Language),
		viewMode:   ViewList,
		entityType: EntityClients,
		search:     search,
		width:      100,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)
