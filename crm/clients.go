// ABOUTME: Client operations including the cascading delete
// ABOUTME: Deleting a client removes its contacts, schedules, negotiations, and their line items
package crm

import (
	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/models"
)

// AddClient validates and stores a new client.
func (s *State) AddClient(c models.Client) (models.Client, error) {
	if err := validate("client", c.Problems()); err != nil {
		return models.Client{}, err
	}

	var stored models.Client
	err := s.mutate(func(t *tx) error {
		stored = t.clients.Add(c)
		t.touch(kv.KeyClients)
		return nil
	})
	return stored, err
}

// UpdateClient replaces the client with c.ID. Unknown ids are ignored and
// report false, even when c itself would not validate.
func (s *State) UpdateClient(c models.Client) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if !t.clients.Exists(c.ID) {
			return nil
		}
		if err := validate("client", c.Problems()); err != nil {
			return err
		}
		found = t.clients.Update(c)
		t.touch(kv.KeyClients)
		return nil
	})
	return found, err
}

// CascadeResult counts the records removed by a cascading delete.
type CascadeResult struct {
	Clients      int `json:"clients"`
	Contacts     int `json:"contacts"`
	Schedules    int `json:"schedules"`
	Negotiations int `json:"negotiations"`
	LineItems    int `json:"line_items"`
}

// DeleteClient removes the client and everything that references it, as a
// single state transition. Unknown ids are ignored.
func (s *State) DeleteClient(id int64) (CascadeResult, error) {
	var res CascadeResult
	err := s.mutate(func(t *tx) error {
		if !t.clients.Exists(id) {
			return nil
		}
		res = t.deleteClient(id)
		return nil
	})
	return res, err
}

func (t *tx) deleteClient(id int64) CascadeResult {
	var res CascadeResult

	negIDs := map[int64]bool{}
	for _, n := range t.negotiations.FindWhere(func(n models.Negotiation) bool { return n.ClientID == id }) {
		negIDs[n.ID] = true
	}

	res.LineItems = len(t.lineItems.RemoveWhere(func(li models.NegotiationLineItem) bool {
		return negIDs[li.NegotiationID]
	}))
	res.Negotiations = len(t.negotiations.RemoveWhere(func(n models.Negotiation) bool {
		return negIDs[n.ID]
	}))
	res.Schedules = len(t.schedules.RemoveWhere(func(sc models.Schedule) bool {
		return sc.ClientID == id
	}))
	res.Contacts = len(t.contacts.RemoveWhere(func(c models.Contact) bool {
		return c.ClientID == id
	}))
	if t.clients.Remove(id) {
		res.Clients = 1
	}

	t.touch(kv.KeyNegotiationProducts, kv.KeyNegotiations, kv.KeySchedules, kv.KeyContacts, kv.KeyClients)
	return res
}

// Clients returns every client in insertion order.
func (s *State) Clients() []models.Client {
	var out []models.Client
	s.read(func(c *collections) { out = c.clients.All() })
	return out
}

// Client returns the client with id.
func (s *State) Client(id int64) (models.Client, bool) {
	var (
		out models.Client
		ok  bool
	)
	s.read(func(c *collections) { out, ok = c.clients.FindByID(id) })
	return out, ok
}

// FindClients returns clients matching pred.
func (s *State) FindClients(pred func(models.Client) bool) []models.Client {
	var out []models.Client
	s.read(func(c *collections) { out = c.clients.FindWhere(pred) })
	return out
}

func (t *tx) requireClient(entity string, id int64) error {
	if !t.clients.Exists(id) {
		return &ReferenceError{Entity: entity, Field: "clientId", Parent: "client", ID: id}
	}
	return nil
}
