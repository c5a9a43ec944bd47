// ABOUTME: Detail view for the TUI
// ABOUTME: Shows a client with its related records or a negotiation with its line items
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/viz"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12)
)

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label) + value + "\n"
}

func (m Model) renderDetailView() string {
	var s strings.Builder

	switch m.entityType {
	case EntityClients:
		m.renderClientDetail(&s)
	case EntityNegotiations:
		m.renderNegotiationDetail(&s)
	case EntityProducts:
		p, ok := m.state.Product(m.selectedID)
		if !ok {
			return "Product not found"
		}
		s.WriteString(titleStyle.Render(p.Name))
		s.WriteString("\n")
		s.WriteString(field("Price", viz.FormatMoney(p.Price)))
		s.WriteString(field("ID", p.ID))
	case EntitySchedules:
		id, _ := m.selectedInt()
		for _, sc := range m.state.Schedules() {
			if sc.ID != id {
				continue
			}
			s.WriteString(titleStyle.Render(m.labels.AppointmentType(sc.Type)))
			s.WriteString("\n")
			s.WriteString(field("Client", m.state.ClientDisplayName(sc.ClientID)))
			s.WriteString(field("Date", sc.Date))
			s.WriteString(field("Notes", sc.Notes))
		}
	}

	s.WriteString(helpStyle.Render("Esc: Back • d: Delete • q: Quit"))
	return s.String()
}

func (m Model) renderClientDetail(s *strings.Builder) {
	id, err := m.selectedInt()
	if err != nil {
		s.WriteString(err.Error())
		return
	}
	c, ok := m.state.Client(id)
	if !ok {
		s.WriteString("Client not found\n")
		return
	}

	s.WriteString(titleStyle.Render(c.Name))
	s.WriteString("\n")
	s.WriteString(field("Email", c.Email))
	s.WriteString(field("Phone", c.Phone))
	s.WriteString(field("Document", c.Document))
	s.WriteString(field("Address", strings.TrimSpace(c.Address+" "+c.Number)))

	if contacts := m.state.ContactsFor(id); len(contacts) > 0 {
		s.WriteString(sectionStyle.Render("Contacts"))
		s.WriteString("\n")
		for _, ct := range contacts {
			fmt.Fprintf(s, "  %s (%s) %s\n", ct.Name, ct.Role, ct.Email)
		}
	}
	if schedules := m.state.SchedulesFor(id); len(schedules) > 0 {
		s.WriteString(sectionStyle.Render("Schedules"))
		s.WriteString("\n")
		for _, sc := range schedules {
			fmt.Fprintf(s, "  %s  %s\n", sc.Date, m.labels.AppointmentType(sc.Type))
		}
	}
	if negotiations := m.state.NegotiationsFor(id); len(negotiations) > 0 {
		s.WriteString(sectionStyle.Render("Negotiations"))
		s.WriteString("\n")
		for _, n := range negotiations {
			fmt.Fprintf(s, "  #%d %s  %s  %s\n", n.ID, m.labels.Status(n.Status),
				viz.FormatMoney(m.state.NegotiationTotal(n.ID)), n.Description)
		}
	}
}

func (m Model) renderNegotiationDetail(s *strings.Builder) {
	id, err := m.selectedInt()
	if err != nil {
		s.WriteString(err.Error())
		return
	}
	n, ok := m.state.Negotiation(id)
	if !ok {
		s.WriteString("Negotiation not found\n")
		return
	}

	s.WriteString(titleStyle.Render("Negotiation #" + strconv.FormatInt(n.ID, 10)))
	s.WriteString("\n")
	s.WriteString(field("Client", m.state.ClientDisplayName(n.ClientID)))
	s.WriteString(field("Status", m.labels.Status(n.Status)))
	s.WriteString(field("Description", n.Description))

	if items := m.state.LineItemsFor(id); len(items) > 0 {
		s.WriteString(sectionStyle.Render("Products"))
		s.WriteString("\n")
		for _, li := range items {
			fmt.Fprintf(s, "  %d x %s @ %s - %s = %s\n", li.Quantity, li.ProductName,
				viz.FormatMoney(li.UnitPrice), viz.FormatMoney(li.Discount), viz.FormatMoney(crm.LineItemSubtotal(li)))
		}
	}
	s.WriteString(field("Total", viz.FormatMoney(m.state.NegotiationTotal(id))))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
	case "d":
		m.viewMode = ViewConfirmDelete
	}
	return m, nil
}
