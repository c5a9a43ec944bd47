// ABOUTME: Revenue, totals, and appointment projections over current state
// ABOUTME: Nothing is cached; every figure is recomputed from the records on each call
package crm

import (
	"slices"
	"time"

	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

// UnknownClient is shown for a client id that matches no client.
const UnknownClient = "Unknown Client"

// LineItemSubtotal is quantity*unitPrice - discount. It is not clamped and
// goes negative when the discount exceeds the gross value.
func LineItemSubtotal(li models.NegotiationLineItem) decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Sub(li.Discount)
}

// NegotiationTotal sums the subtotals of items belonging to negotiationID.
func NegotiationTotal(items []models.NegotiationLineItem, negotiationID int64) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		if li.NegotiationID == negotiationID {
			total = total.Add(LineItemSubtotal(li))
		}
	}
	return total
}

// WonRevenue sums the totals of every WON negotiation.
func WonRevenue(negotiations []models.Negotiation, items []models.NegotiationLineItem) decimal.Decimal {
	won := map[int64]bool{}
	for _, n := range negotiations {
		if n.Status == models.StatusWon {
			won[n.ID] = true
		}
	}

	total := decimal.Zero
	for _, li := range items {
		if won[li.NegotiationID] {
			total = total.Add(LineItemSubtotal(li))
		}
	}
	return total
}

// OpenNegotiationCount counts negotiations with status OPEN.
func OpenNegotiationCount(negotiations []models.Negotiation) int {
	count := 0
	for _, n := range negotiations {
		if n.Status == models.StatusOpen {
			count++
		}
	}
	return count
}

// Appointment is a schedule with its parsed date.
type Appointment struct {
	models.Schedule
	When time.Time `json:"when"`
}

// UpcomingAppointments returns schedules dated strictly after now, earliest
// first. Schedules with an empty or unparseable date are left out.
func UpcomingAppointments(schedules []models.Schedule, now time.Time) []Appointment {
	upcoming := make([]Appointment, 0)
	for _, sc := range schedules {
		when, ok := sc.When()
		if !ok || !when.After(now) {
			continue
		}
		upcoming = append(upcoming, Appointment{Schedule: sc, When: when})
	}
	slices.SortStableFunc(upcoming, func(a, b Appointment) int {
		return a.When.Compare(b.When)
	})
	return upcoming
}

// ClientDisplayName returns the client's name, or UnknownClient when the id
// matches nothing.
func ClientDisplayName(clients []models.Client, clientID int64) string {
	for _, c := range clients {
		if c.ID == clientID {
			return c.Name
		}
	}
	return UnknownClient
}

func (s *State) NegotiationTotal(negotiationID int64) decimal.Decimal {
	var total decimal.Decimal
	s.read(func(c *collections) { total = NegotiationTotal(c.lineItems.items, negotiationID) })
	return total
}

func (s *State) WonRevenue() decimal.Decimal {
	var total decimal.Decimal
	s.read(func(c *collections) { total = WonRevenue(c.negotiations.items, c.lineItems.items) })
	return total
}

func (s *State) OpenNegotiationCount() int {
	var count int
	s.read(func(c *collections) { count = OpenNegotiationCount(c.negotiations.items) })
	return count
}

func (s *State) UpcomingAppointments(now time.Time) []Appointment {
	var out []Appointment
	s.read(func(c *collections) { out = UpcomingAppointments(c.schedules.items, now) })
	return out
}

func (s *State) ClientDisplayName(clientID int64) string {
	var name string
	s.read(func(c *collections) { name = ClientDisplayName(c.clients.items, clientID) })
	return name
}

// UpcomingAppointment pairs an appointment with its client's display name.
type UpcomingAppointment struct {
	Appointment
	ClientName string `json:"client_name"`
}

// Dashboard is the portfolio overview.
type Dashboard struct {
	TotalClients     int                   `json:"total_clients"`
	OpenNegotiations int                   `json:"open_negotiations"`
	WonRevenue       decimal.Decimal       `json:"won_revenue"`
	Upcoming         []UpcomingAppointment `json:"upcoming"`
}

// Dashboard computes every overview figure from one consistent view.
func (s *State) Dashboard(now time.Time) Dashboard {
	var d Dashboard
	s.read(func(c *collections) {
		d.TotalClients = c.clients.Len()
		d.OpenNegotiations = OpenNegotiationCount(c.negotiations.items)
		d.WonRevenue = WonRevenue(c.negotiations.items, c.lineItems.items)
		d.Upcoming = make([]UpcomingAppointment, 0)
		for _, a := range UpcomingAppointments(c.schedules.items, now) {
			d.Upcoming = append(d.Upcoming, UpcomingAppointment{
				Appointment: a,
				ClientName:  ClientDisplayName(c.clients.items, a.ClientID),
			})
		}
	})
	return d
}
