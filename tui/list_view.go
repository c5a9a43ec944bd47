// ABOUTME: List view for the TUI
// ABOUTME: Tabbed tables with search filtering and row selection
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ostwick/crm/viz"
)

// listing is one tab's rows together with the key of each row.
type listing struct {
	columns []table.Column
	rows    []table.Row
	keys    []string
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CRM"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")
	if m.searching || m.search.Value() != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	}
	s.WriteString(m.renderTable())
	s.WriteString("\n")
	if m.message != "" {
		s.WriteString("\n")
		s.WriteString(messageStyle.Render(m.message))
	}
	s.WriteString("\n")
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Clients", "Negotiations", "Products", "Schedules"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	l := m.listing()
	if len(l.rows) == 0 {
		return "Nothing here yet."
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(l.columns),
		table.WithRows(l.rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(l.rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

// listing builds the rows of the current tab, filtered by the search text.
func (m Model) listing() listing {
	q := strings.ToLower(strings.TrimSpace(m.search.Value()))
	match := func(fields ...string) bool {
		if q == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	var l listing
	switch m.entityType {
	case EntityClients:
		l.columns = []table.Column{{Title: "ID", Width: 5}, {Title: "Name", Width: 30}, {Title: "Email", Width: 30}, {Title: "Phone", Width: 16}}
		for _, c := range m.state.Clients() {
			if match(c.Name, c.Email, c.Document) {
				l.rows = append(l.rows, table.Row{strconv.FormatInt(c.ID, 10), c.Name, c.Email, c.Phone})
				l.keys = append(l.keys, strconv.FormatInt(c.ID, 10))
			}
		}
	case EntityNegotiations:
		l.columns = []table.Column{{Title: "ID", Width: 5}, {Title: "Client", Width: 25}, {Title: "Status", Width: 10}, {Title: "Total", Width: 14}, {Title: "Description", Width: 30}}
		for _, n := range m.state.Negotiations() {
			client := m.state.ClientDisplayName(n.ClientID)
			if match(client, n.Description, string(n.Status)) {
				l.rows = append(l.rows, table.Row{
					strconv.FormatInt(n.ID, 10), client, m.labels.Status(n.Status),
					viz.FormatMoney(m.state.NegotiationTotal(n.ID)), n.Description,
				})
				l.keys = append(l.keys, strconv.FormatInt(n.ID, 10))
			}
		}
	case EntityProducts:
		l.columns = []table.Column{{Title: "Name", Width: 30}, {Title: "Price", Width: 14}, {Title: "ID", Width: 32}}
		for _, p := range m.state.Products() {
			if match(p.Name) {
				l.rows = append(l.rows, table.Row{p.Name, viz.FormatMoney(p.Price), p.ID})
				l.keys = append(l.keys, p.ID)
			}
		}
	case EntitySchedules:
		l.columns = []table.Column{{Title: "ID", Width: 5}, {Title: "Date", Width: 26}, {Title: "Type", Width: 20}, {Title: "Client", Width: 25}}
		for _, sc := range m.state.Schedules() {
			client := m.state.ClientDisplayName(sc.ClientID)
			if match(client, sc.Notes) {
				l.rows = append(l.rows, table.Row{
					strconv.FormatInt(sc.ID, 10), sc.Date, m.labels.AppointmentType(sc.Type), client,
				})
				l.keys = append(l.keys, strconv.FormatInt(sc.ID, 10))
			}
		}
	}
	return l
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: View details",
		"/: Search",
		"d: Delete",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.listing().keys)-1 {
			m.selectedRow++
		}
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
	case "shift+tab":
		m.entityType = (m.entityType + entityCount - 1) % entityCount
		m.selectedRow = 0
	case "enter":
		if id := m.getSelectedID(); id != "" {
			m.selectedID = id
			m.viewMode = ViewDetail
		}
	case "d":
		if id := m.getSelectedID(); id != "" {
			m.selectedID = id
			m.viewMode = ViewConfirmDelete
		}
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.selectedRow = 0
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selectedRow = 0
	return m, cmd
}

func (m Model) getSelectedID() string {
	keys := m.listing().keys
	if m.selectedRow < len(keys) {
		return keys[m.selectedRow]
	}
	return ""
}

func (m Model) selectedInt() (int64, error) {
	id, err := strconv.ParseInt(m.selectedID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", m.selectedID, err)
	}
	return id, nil
}
