// ABOUTME: Contact and schedule CLI commands
// ABOUTME: Manages the people and appointments attached to a client
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

// AddContactCommand adds a contact person to an existing client.
func AddContactCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("contact add", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Client ID (required)")
	name := fs.String("name", "", "Contact name (required)")
	role := fs.String("role", "", "Role at the client")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address (required)")
	_ = fs.Parse(args)

	contact, err := state.AddContact(models.Contact{
		ClientID: *clientID,
		Name:     *name,
		Role:     *role,
		Phone:    *phone,
		Email:    *email,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	outf("✓ Contact created: %s (ID: %d)\n", contact.Name, contact.ID)
	outf("  Client: %s\n", state.ClientDisplayName(contact.ClientID))
	if contact.Role != "" {
		outf("  Role: %s\n", contact.Role)
	}
	return nil
}

// ListContactsCommand lists contacts, optionally for one client.
func ListContactsCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("contact list", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Filter by client ID")
	_ = fs.Parse(args)

	contacts := state.Contacts()
	if *clientID != 0 {
		contacts = state.ContactsFor(*clientID)
	}

	if len(contacts) == 0 {
		outln("No contacts found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tNAME\tROLE\tEMAIL\tPHONE\tCLIENT")
	_, _ = fmt.Fprintln(w, "--\t----\t----\t-----\t-----\t------")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, dash(c.Role), dash(c.Email), dash(c.Phone), state.ClientDisplayName(c.ClientID))
	}
	_ = w.Flush()

	outf("\nTotal: %d contact(s)\n", len(contacts))
	return nil
}

// UpdateContactCommand changes the fields given as flags.
func UpdateContactCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("contact update", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Move to another client")
	name := fs.String("name", "", "Contact name")
	role := fs.String("role", "", "Role at the client")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address")
	_ = fs.Parse(args)

	id, err := argID(fs, "contact")
	if err != nil {
		return err
	}
	existing, ok := state.Contact(id)
	if !ok {
		return fmt.Errorf("contact not found: %d", id)
	}

	set := setFlags(fs)
	if set["client"] {
		existing.ClientID = *clientID
	}
	if set["name"] {
		existing.Name = *name
	}
	if set["role"] {
		existing.Role = *role
	}
	if set["phone"] {
		existing.Phone = *phone
	}
	if set["email"] {
		existing.Email = *email
	}

	if _, err := state.UpdateContact(existing); err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	outf("✓ Contact updated: %s (ID: %d)\n", existing.Name, id)
	return nil
}

// DeleteContactCommand deletes a contact.
func DeleteContactCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("contact delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "contact")
	if err != nil {
		return err
	}

	deleted, err := state.DeleteContact(id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if !deleted {
		return fmt.Errorf("contact not found: %d", id)
	}

	outf("✓ Contact deleted: %d\n", id)
	return nil
}

// AddScheduleCommand books an appointment with an existing client.
func AddScheduleCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("schedule add", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Client ID (required)")
	kind := fs.String("type", string(models.AppointmentLocalVisit), "LOCAL_VISIT, VIDEO_CONFERENCE, or PHONE_CALL")
	date := fs.String("date", "", "Appointment time, RFC3339 (required)")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	appointmentType, ok := models.ParseAppointmentType(*kind)
	if !ok {
		return fmt.Errorf("invalid appointment type: %s", *kind)
	}

	schedule, err := state.AddSchedule(models.Schedule{
		ClientID: *clientID,
		Type:     appointmentType,
		Date:     *date,
		Notes:    *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	outf("✓ Schedule created (ID: %d)\n", schedule.ID)
	outf("  Client: %s\n", state.ClientDisplayName(schedule.ClientID))
	outf("  When: %s\n", schedule.Date)
	outf("  Type: %s\n", schedule.Type)
	return nil
}

// UpdateScheduleCommand changes the fields given as flags.
func UpdateScheduleCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("schedule update", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Move to another client")
	kind := fs.String("type", "", "LOCAL_VISIT, VIDEO_CONFERENCE, or PHONE_CALL")
	date := fs.String("date", "", "Appointment time, RFC3339")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	id, err := argID(fs, "schedule")
	if err != nil {
		return err
	}
	existing, ok := state.Schedule(id)
	if !ok {
		return fmt.Errorf("schedule not found: %d", id)
	}

	set := setFlags(fs)
	if set["client"] {
		existing.ClientID = *clientID
	}
	if set["type"] {
		appointmentType, ok := models.ParseAppointmentType(*kind)
		if !ok {
			return fmt.Errorf("invalid appointment type: %s", *kind)
		}
		existing.Type = appointmentType
	}
	if set["date"] {
		existing.Date = *date
	}
	if set["notes"] {
		existing.Notes = *notes
	}

	if _, err := state.UpdateSchedule(existing); err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	updated, _ := state.Schedule(id)
	outf("✓ Schedule updated (ID: %d)\n", id)
	outf("  When: %s\n", updated.Date)
	return nil
}

// ListSchedulesCommand lists appointments, optionally for one client.
func ListSchedulesCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("schedule list", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Filter by client ID")
	_ = fs.Parse(args)

	schedules := state.Schedules()
	if *clientID != 0 {
		schedules = state.SchedulesFor(*clientID)
	}

	if len(schedules) == 0 {
		outln("No schedules found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tDATE\tTYPE\tCLIENT\tNOTES")
	_, _ = fmt.Fprintln(w, "--\t----\t----\t------\t-----")
	for _, sc := range schedules {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			sc.ID, dash(sc.Date), sc.Type, state.ClientDisplayName(sc.ClientID), dash(strings.TrimSpace(sc.Notes)))
	}
	_ = w.Flush()

	outf("\nTotal: %d schedule(s)\n", len(schedules))
	return nil
}

// DeleteScheduleCommand deletes an appointment.
func DeleteScheduleCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("schedule delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "schedule")
	if err != nil {
		return err
	}

	deleted, err := state.DeleteSchedule(id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if !deleted {
		return fmt.Errorf("schedule not found: %d", id)
	}

	outf("✓ Schedule deleted: %d\n", id)
	return nil
}
