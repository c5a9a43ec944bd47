// ABOUTME: Client CLI commands
// ABOUTME: Add, list, show, update, and cascade-delete clients
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

// AddClientCommand adds a new client.
func AddClientCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("client add", flag.ExitOnError)
	name := fs.String("name", "", "Client name (required)")
	email := fs.String("email", "", "Email address (required)")
	document := fs.String("document", "", "Tax document (CPF/CNPJ)")
	address := fs.String("address", "", "Street address")
	number := fs.String("number", "", "Street number")
	phone := fs.String("phone", "", "Phone number")
	_ = fs.Parse(args)

	client, err := state.AddClient(models.Client{
		Name:     *name,
		Email:    *email,
		Document: *document,
		Address:  *address,
		Number:   *number,
		Phone:    *phone,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	outf("✓ Client created: %s (ID: %d)\n", client.Name, client.ID)
	outf("  Email: %s\n", client.Email)
	if client.Phone != "" {
		outf("  Phone: %s\n", client.Phone)
	}
	return nil
}

// ListClientsCommand lists clients, optionally filtered by a search query.
func ListClientsCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("client list", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, email, or document")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	q := strings.ToLower(*query)
	clients := state.FindClients(func(c models.Client) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Document), q)
	})
	if *limit > 0 && len(clients) > *limit {
		clients = clients[:*limit]
	}

	if len(clients) == 0 {
		outln("No clients found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tDOCUMENT")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-----\t--------")
	for _, c := range clients {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, dash(c.Phone), dash(c.Document))
	}
	_ = w.Flush()

	outf("\nTotal: %d client(s)\n", len(clients))
	return nil
}

// ShowClientCommand prints one client with its related records.
func ShowClientCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("client show", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "client")
	if err != nil {
		return err
	}
	client, ok := state.Client(id)
	if !ok {
		return fmt.Errorf("client not found: %d", id)
	}

	outf("%s (ID: %d)\n", client.Name, client.ID)
	outf("  Email:    %s\n", client.Email)
	outf("  Phone:    %s\n", dash(client.Phone))
	outf("  Document: %s\n", dash(client.Document))
	outf("  Address:  %s\n", dash(strings.TrimSpace(client.Address+" "+client.Number)))

	if contacts := state.ContactsFor(id); len(contacts) > 0 {
		outln("\nContacts:")
		for _, c := range contacts {
			outf("  [%d] %s (%s) %s\n", c.ID, c.Name, dash(c.Role), dash(c.Email))
		}
	}
	if schedules := state.SchedulesFor(id); len(schedules) > 0 {
		outln("\nSchedules:")
		for _, sc := range schedules {
			outf("  [%d] %s %s %s\n", sc.ID, sc.Date, sc.Type, sc.Notes)
		}
	}
	if negotiations := state.NegotiationsFor(id); len(negotiations) > 0 {
		outln("\nNegotiations:")
		for _, n := range negotiations {
			outf("  [%d] %s %s total %s\n", n.ID, n.Status, n.Description, state.NegotiationTotal(n.ID).StringFixed(2))
		}
	}
	return nil
}

// UpdateClientCommand changes the fields given as flags and keeps the rest.
func UpdateClientCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("client update", flag.ExitOnError)
	name := fs.String("name", "", "Client name")
	email := fs.String("email", "", "Email address")
	document := fs.String("document", "", "Tax document (CPF/CNPJ)")
	address := fs.String("address", "", "Street address")
	number := fs.String("number", "", "Street number")
	phone := fs.String("phone", "", "Phone number")
	_ = fs.Parse(args)

	id, err := argID(fs, "client")
	if err != nil {
		return err
	}
	existing, ok := state.Client(id)
	if !ok {
		return fmt.Errorf("client not found: %d", id)
	}

	set := setFlags(fs)
	if set["name"] {
		existing.Name = *name
	}
	if set["email"] {
		existing.Email = *email
	}
	if set["document"] {
		existing.Document = *document
	}
	if set["address"] {
		existing.Address = *address
	}
	if set["number"] {
		existing.Number = *number
	}
	if set["phone"] {
		existing.Phone = *phone
	}

	if _, err := state.UpdateClient(existing); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	outf("✓ Client updated: %s (ID: %d)\n", existing.Name, id)
	return nil
}

// DeleteClientCommand deletes a client and everything that belongs to it.
func DeleteClientCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("client delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "client")
	if err != nil {
		return err
	}

	res, err := state.DeleteClient(id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if res.Clients == 0 {
		return fmt.Errorf("client not found: %d", id)
	}

	outf("✓ Client deleted: %d\n", id)
	outf("  Removed %d contact(s), %d schedule(s), %d negotiation(s), %d line item(s)\n",
		res.Contacts, res.Schedules, res.Negotiations, res.LineItems)
	return nil
}
