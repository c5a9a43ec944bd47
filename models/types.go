// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Client, Contact, Schedule, Negotiation, Product, and NegotiationLineItem
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"` // CPF/CNPJ or any tax id
	Address  string `json:"address"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Contact struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"clientId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type Schedule struct {
	ID       int64           `json:"id"`
	ClientID int64           `json:"clientId"`
	Type     AppointmentType `json:"type"`
	Date     string          `json:"date"` // RFC3339; may be empty or garbage in old snapshots
	Notes    string          `json:"notes"`
}

// When parses the schedule date. ok is false for empty or unparseable dates.
func (s Schedule) When() (time.Time, bool) {
	return ParseTimestamp(s.Date)
}

type Negotiation struct {
	ID          int64             `json:"id"`
	ClientID    int64             `json:"clientId"`
	Status      NegotiationStatus `json:"status"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NegotiationLineItem is one product entry on a negotiation. ProductName and
// UnitPrice are copied from the product when the item is added and never
// follow later product edits.
type NegotiationLineItem struct {
	ID            string          `json:"id"`
	NegotiationID int64           `json:"negotiationId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"` // absolute amount, not a percentage
}

// Preferences holds display settings persisted next to the collections.
type Preferences struct {
	DarkMode bool   `json:"darkMode"`
	Language string `json:"language"`
}

// Supported language codes.
const (
	LanguageEnglish    = "en"
	LanguagePortuguese = "pt-br"
)

// Key and WithKey let the generic repository read and assign identifiers.

func (c Client) Key() int64 { return c.ID }
func (c Client) WithKey(id int64) Client { c.ID = id; return c }
func (c Contact) Key() int64 { return c.ID }
func (c Contact) WithKey(id int64) Contact { c.ID = id; return c }
func (s Schedule) Key() int64 { return s.ID }
func (s Schedule) WithKey(id int64) Schedule { s.ID = id; return s }

func (n Negotiation) Key() int64 { return n.ID }
func (n Negotiation) WithKey(id int64) Negotiation { n.ID = id; return n }
func (p Product) Key() string { return p.ID }
func (p Product) WithKey(id string) Product { p.ID = id; return p }
func (li NegotiationLineItem) Key() string { return li.ID }
func (li NegotiationLineItem) WithKey(id string) NegotiationLineItem {
	li.ID = id
	return li
}
