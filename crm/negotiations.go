// ABOUTME: Negotiation and line item operations
// ABOUTME: Line items snapshot product name and price; deleting a negotiation removes its items
package crm

import (
	"fmt"

	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

// AddNegotiation stores a negotiation for an existing client. Status
// defaults to OPEN and CreatedAt to the current time.
func (s *State) AddNegotiation(n models.Negotiation) (models.Negotiation, error) {
	if n.Status == "" {
		n.Status = models.StatusOpen
	}
	if err := validate("negotiation", n.Problems()); err != nil {
		return models.Negotiation{}, err
	}

	var stored models.Negotiation
	err := s.mutate(func(t *tx) error {
		if err := t.requireClient("negotiation", n.ClientID); err != nil {
			return err
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = t.now.UTC()
		}
		stored = t.negotiations.Add(n)
		t.touch(kv.KeyNegotiations)
		return nil
	})
	return stored, err
}

// UpdateNegotiation replaces the negotiation with n.ID. Unknown ids report false.
func (s *State) UpdateNegotiation(n models.Negotiation) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		prev, ok := t.negotiations.FindByID(n.ID)
		if !ok {
			return nil
		}
		if n.Status == "" {
			n.Status = prev.Status
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = prev.CreatedAt
		}
		if err := validate("negotiation", n.Problems()); err != nil {
			return err
		}
		if err := t.requireClient("negotiation", n.ClientID); err != nil {
			return err
		}
		found = t.negotiations.Update(n)
		t.touch(kv.KeyNegotiations)
		return nil
	})
	return found, err
}

// SetNegotiationStatus changes only the status field. No cascade.
func (s *State) SetNegotiationStatus(id int64, status models.NegotiationStatus) (bool, error) {
	if !status.Valid() {
		return false, &ValidationError{Entity: "negotiation", Fields: []string{"status"}}
	}

	var found bool
	err := s.mutate(func(t *tx) error {
		n, ok := t.negotiations.FindByID(id)
		if !ok {
			return nil
		}
		n.Status = status
		found = t.negotiations.Update(n)
		t.touch(kv.KeyNegotiations)
		return nil
	})
	return found, err
}

// DeleteNegotiation removes a negotiation and its line items in one step.
// It returns the number of line items removed; unknown ids are ignored.
func (s *State) DeleteNegotiation(id int64) (bool, int, error) {
	var (
		found   bool
		removed int
	)
	err := s.mutate(func(t *tx) error {
		if !t.negotiations.Exists(id) {
			return nil
		}
		removed = len(t.lineItems.RemoveWhere(func(li models.NegotiationLineItem) bool {
			return li.NegotiationID == id
		}))
		found = t.negotiations.Remove(id)
		t.touch(kv.KeyNegotiationProducts, kv.KeyNegotiations)
		return nil
	})
	return found, removed, err
}

// Negotiations returns every negotiation in insertion order.
func (s *State) Negotiations() []models.Negotiation {
	var out []models.Negotiation
	s.read(func(c *collections) { out = c.negotiations.All() })
	return out
}

// Negotiation returns the negotiation with id.
func (s *State) Negotiation(id int64) (models.Negotiation, bool) {
	var (
		out models.Negotiation
		ok  bool
	)
	s.read(func(c *collections) { out, ok = c.negotiations.FindByID(id) })
	return out, ok
}

// NegotiationsFor returns the negotiations of one client.
func (s *State) NegotiationsFor(clientID int64) []models.Negotiation {
	var out []models.Negotiation
	s.read(func(c *collections) {
		out = c.negotiations.FindWhere(func(n models.Negotiation) bool { return n.ClientID == clientID })
	})
	return out
}

// LineItemInput describes a product being added to a negotiation.
type LineItemInput struct {
	NegotiationID int64
	ProductID     string
	Quantity      int
	Discount      decimal.Decimal
}

// AddLineItem copies the product's current name and price into a new line
// item on the negotiation.
func (s *State) AddLineItem(in LineItemInput) (models.NegotiationLineItem, error) {
	item := models.NegotiationLineItem{
		NegotiationID: in.NegotiationID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Discount:      in.Discount,
	}
	if err := validate("line item", item.Problems()); err != nil {
		return models.NegotiationLineItem{}, err
	}

	var stored models.NegotiationLineItem
	err := s.mutate(func(t *tx) error {
		if !t.negotiations.Exists(in.NegotiationID) {
			return &ReferenceError{Entity: "line item", Field: "negotiationId", Parent: "negotiation", ID: in.NegotiationID}
		}
		product, ok := t.products.FindByID(in.ProductID)
		if !ok {
			return &ReferenceError{Entity: "line item", Field: "productId", Parent: "product", ID: in.ProductID}
		}

		item.ID = fmt.Sprintf("%d-%s-%s", in.NegotiationID, product.ID, t.lineItems.NextID())
		item.ProductName = product.Name
		item.UnitPrice = product.Price
		stored = t.lineItems.Add(item)
		t.touch(kv.KeyNegotiationProducts)
		return nil
	})
	return stored, err
}

// RemoveLineItem deletes one line item. Unknown ids report false.
func (s *State) RemoveLineItem(id string) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if found = t.lineItems.Remove(id); found {
			t.touch(kv.KeyNegotiationProducts)
		}
		return nil
	})
	return found, err
}

// LineItems returns every line item in insertion order.
func (s *State) LineItems() []models.NegotiationLineItem {
	var out []models.NegotiationLineItem
	s.read(func(c *collections) { out = c.lineItems.All() })
	return out
}

// LineItemsFor returns the line items of one negotiation.
func (s *State) LineItemsFor(negotiationID int64) []models.NegotiationLineItem {
	var out []models.NegotiationLineItem
	s.read(func(c *collections) {
		out = c.lineItems.FindWhere(func(li models.NegotiationLineItem) bool { return li.NegotiationID == negotiationID })
	})
	return out
}
