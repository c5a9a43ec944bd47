// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Warns how many related records a client or negotiation delete will remove
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

// deleteTarget names the selected record and what else goes with it.
func (m Model) deleteTarget() (kind, name, extra string) {
	switch m.entityType {
	case EntityClients:
		id, _ := m.selectedInt()
		c, _ := m.state.Client(id)
		extra = fmt.Sprintf("Also removes %d contact(s), %d schedule(s), and %d negotiation(s).",
			len(m.state.ContactsFor(id)), len(m.state.SchedulesFor(id)), len(m.state.NegotiationsFor(id)))
		return "client", c.Name, extra
	case EntityNegotiations:
		id, _ := m.selectedInt()
		n, _ := m.state.Negotiation(id)
		extra = fmt.Sprintf("Also removes %d line item(s).", len(m.state.LineItemsFor(id)))
		return "negotiation", n.Description, extra
	case EntityProducts:
		p, _ := m.state.Product(m.selectedID)
		return "product", p.Name, "Quoted line items keep their copy."
	case EntitySchedules:
		return "schedule", "#" + m.selectedID, ""
	}
	return "", "", ""
}

func (m Model) renderConfirmDeleteView() string {
	kind, name, extra := m.deleteTarget()

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := fmt.Sprintf("Are you sure you want to delete this %s?", kind)
	entityInfo := fmt.Sprintf("\n%s: %s\n", strings.ToUpper(kind), name)
	warning := "\nThis action cannot be undone!"
	if extra != "" {
		warning = "\n" + extra + warning
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	box := confirmBoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		entityInfo,
		warning,
		"",
		buttons,
	))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.performDelete(); err != nil {
			m.message = "Error: " + err.Error()
		} else {
			m.message = "Successfully deleted"
			m.selectedID = ""
			m.selectedRow = 0
		}
		m.viewMode = ViewList
	case "n", "N", "esc":
		m.viewMode = ViewList
	}

	return m, nil
}

func (m Model) performDelete() error {
	if m.entityType == EntityProducts {
		_, err := m.state.DeleteProduct(m.selectedID)
		return err
	}

	id, err := m.selectedInt()
	if err != nil {
		return err
	}
	switch m.entityType {
	case EntityClients:
		_, err = m.state.DeleteClient(id)
	case EntityNegotiations:
		_, _, err = m.state.DeleteNegotiation(id)
	case EntitySchedules:
		_, err = m.state.DeleteSchedule(id)
	default:
		err = fmt.Errorf("unknown entity type")
	}
	return err
}
