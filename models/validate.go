// ABOUTME: Field-level validation and timestamp parsing for CRM entities
// ABOUTME: Each Problems method names the fields that block a write
package models

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order. The zone-less layouts come from
// datetime-local form inputs and are read in the local zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 style timestamp. ok is false for empty
// or unparseable input.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way schedule dates are persisted.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (c Client) Problems() []string {
	var fields []string
	if blank(c.Name) {
		fields = append(fields, "name")
	}
	if blank(c.Email) {
		fields = append(fields, "email")
	}
	return fields
}

func (c Contact) Problems() []string {
	var fields []string
	if blank(c.Name) {
		fields = append(fields, "name")
	}
	if blank(c.Email) {
		fields = append(fields, "email")
	}
	return fields
}

func (s Schedule) Problems() []string {
	var fields []string
	if !s.Type.Valid() {
		fields = append(fields, "type")
	}
	if _, ok := s.When(); !ok {
		fields = append(fields, "date")
	}
	return fields
}

func (n Negotiation) Problems() []string {
	if !n.Status.Valid() {
		return []string{"status"}
	}
	return nil
}

func (p Product) Problems() []string {
	var fields []string
	if blank(p.Name) {
		fields = append(fields, "name")
	}
	if p.Price.IsNegative() {
		fields = append(fields, "price")
	}
	return fields
}

// Problems does not compare the discount with the gross value: a discount
// larger than quantity*price is allowed and yields a negative subtotal.
func (li NegotiationLineItem) Problems() []string {
	var fields []string
	if li.Quantity < 1 {
		fields = append(fields, "quantity")
	}
	if li.Discount.IsNegative() {
		fields = append(fields, "discount")
	}
	return fields
}
