// ABOUTME: Contact and schedule operations
// ABOUTME: Both must reference an existing client when written
package crm

import (
	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/models"
)

// AddContact stores a contact for an existing client.
func (s *State) AddContact(c models.Contact) (models.Contact, error) {
	if err := validate("contact", c.Problems()); err != nil {
		return models.Contact{}, err
	}

	var stored models.Contact
	err := s.mutate(func(t *tx) error {
		if err := t.requireClient("contact", c.ClientID); err != nil {
			return err
		}
		stored = t.contacts.Add(c)
		t.touch(kv.KeyContacts)
		return nil
	})
	return stored, err
}

// UpdateContact replaces the contact with c.ID. Unknown ids report false.
func (s *State) UpdateContact(c models.Contact) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if !t.contacts.Exists(c.ID) {
			return nil
		}
		if err := validate("contact", c.Problems()); err != nil {
			return err
		}
		if err := t.requireClient("contact", c.ClientID); err != nil {
			return err
		}
		found = t.contacts.Update(c)
		t.touch(kv.KeyContacts)
		return nil
	})
	return found, err
}

// DeleteContact removes a contact. Unknown ids report false.
func (s *State) DeleteContact(id int64) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if found = t.contacts.Remove(id); found {
			t.touch(kv.KeyContacts)
		}
		return nil
	})
	return found, err
}

// Contacts returns every contact in insertion order.
func (s *State) Contacts() []models.Contact {
	var out []models.Contact
	s.read(func(c *collections) { out = c.contacts.All() })
	return out
}

// Contact returns the contact with id.
func (s *State) Contact(id int64) (models.Contact, bool) {
	var (
		out models.Contact
		ok  bool
	)
	s.read(func(c *collections) { out, ok = c.contacts.FindByID(id) })
	return out, ok
}

// ContactsFor returns the contacts of one client.
func (s *State) ContactsFor(clientID int64) []models.Contact {
	var out []models.Contact
	s.read(func(c *collections) {
		out = c.contacts.FindWhere(func(ct models.Contact) bool { return ct.ClientID == clientID })
	})
	return out
}

// AddSchedule stores an appointment for an existing client. The date must
// parse; it is stored normalized to UTC.
func (s *State) AddSchedule(sc models.Schedule) (models.Schedule, error) {
	if err := validate("schedule", sc.Problems()); err != nil {
		return models.Schedule{}, err
	}
	when, _ := sc.When()
	sc.Date = models.FormatTimestamp(when)

	var stored models.Schedule
	err := s.mutate(func(t *tx) error {
		if err := t.requireClient("schedule", sc.ClientID); err != nil {
			return err
		}
		stored = t.schedules.Add(sc)
		t.touch(kv.KeySchedules)
		return nil
	})
	return stored, err
}

// UpdateSchedule replaces the schedule with sc.ID. Unknown ids report false.
func (s *State) UpdateSchedule(sc models.Schedule) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if !t.schedules.Exists(sc.ID) {
			return nil
		}
		if err := validate("schedule", sc.Problems()); err != nil {
			return err
		}
		when, _ := sc.When()
		sc.Date = models.FormatTimestamp(when)
		if err := t.requireClient("schedule", sc.ClientID); err != nil {
			return err
		}
		found = t.schedules.Update(sc)
		t.touch(kv.KeySchedules)
		return nil
	})
	return found, err
}

// DeleteSchedule removes a schedule. Unknown ids report false.
func (s *State) DeleteSchedule(id int64) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if found = t.schedules.Remove(id); found {
			t.touch(kv.KeySchedules)
		}
		return nil
	})
	return found, err
}

// Schedules returns every schedule in insertion order.
func (s *State) Schedules() []models.Schedule {
	var out []models.Schedule
	s.read(func(c *collections) { out = c.schedules.All() })
	return out
}

// Schedule returns the schedule with id.
func (s *State) Schedule(id int64) (models.Schedule, bool) {
	var (
		out models.Schedule
		ok  bool
	)
	s.read(func(c *collections) { out, ok = c.schedules.FindByID(id) })
	return out, ok
}

// SchedulesFor returns the schedules of one client.
func (s *State) SchedulesFor(clientID int64) []models.Schedule {
	var out []models.Schedule
	s.read(func(c *collections) {
		out = c.schedules.FindWhere(func(sc models.Schedule) bool { return sc.ClientID == clientID })
	})
	return out
}
