// ABOUTME: Demo data loaded into an empty store when seeding is enabled
// ABOUTME: Two clients with contacts, schedules, negotiations, and a small product catalog
package crm

import (
	"time"

	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

type demoData struct {
	clients      []models.Client
	contacts     []models.Contact
	schedules    []models.Schedule
	negotiations []models.Negotiation
	products     []models.Product
	lineItems    []models.NegotiationLineItem
}

func newDemoData(now time.Time) demoData {
	day := 24 * time.Hour
	return demoData{
		clients: []models.Client{
			{ID: 1, Name: "Tech Solutions Inc.", Document: "12.345.678/0001-99", Address: "123 Tech Street", Number: "100", Email: "contact@techsolutions.com", Phone: "555-0101"},
			{ID: 2, Name: "Innovate Creations", Document: "98.765.432/0001-11", Address: "456 Innovation Ave", Number: "200", Email: "hello@innovate.com", Phone: "555-0102"},
		},
		contacts: []models.Contact{
			{ID: 1, ClientID: 1, Name: "John Doe", Role: "CEO", Phone: "555-0103", Email: "john.doe@techsolutions.com"},
			{ID: 2, ClientID: 2, Name: "Jane Smith", Role: "CTO", Phone: "555-0104", Email: "jane.smith@innovate.com"},
		},
		schedules: []models.Schedule{
			{ID: 1, ClientID: 1, Type: models.AppointmentVideoConference, Date: models.FormatTimestamp(now.Add(2 * day)), Notes: "Discuss new project proposal"},
			{ID: 2, ClientID: 2, Type: models.AppointmentLocalVisit, Date: models.FormatTimestamp(now.Add(5 * day)), Notes: "Onboarding session"},
		},
		negotiations: []models.Negotiation{
			{ID: 1, ClientID: 1, Status: models.StatusOpen, Description: "Q3 Software License", CreatedAt: now.UTC()},
			{ID: 2, ClientID: 2, Status: models.StatusWon, Description: "Website Redesign", CreatedAt: now.UTC()},
		},
		products: []models.Product{
			{ID: "prod-001", Name: "Software License - Basic", Price: decimal.NewFromInt(1500)},
			{ID: "prod-002", Name: "Software License - Pro", Price: decimal.NewFromInt(3000)},
			{ID: "prod-003", Name: "Consulting Hour", Price: decimal.NewFromInt(200)},
		},
		lineItems: []models.NegotiationLineItem{
			{ID: "1-prod-002", NegotiationID: 1, ProductID: "prod-002", ProductName: "Software License - Pro", Quantity: 5, UnitPrice: decimal.NewFromInt(3000), Discount: decimal.NewFromInt(500)},
			{ID: "2-prod-003", NegotiationID: 2, ProductID: "prod-003", ProductName: "Consulting Hour", Quantity: 10, UnitPrice: decimal.NewFromInt(200), Discount: decimal.Zero},
		},
	}
}
