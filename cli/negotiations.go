// ABOUTME: Negotiation and line item CLI commands
// ABOUTME: Opens negotiations, moves their status, and quotes catalog products on them
package cli

import (
	"flag"
	"fmt"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

// AddNegotiationCommand opens a negotiation with an existing client.
func AddNegotiationCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("negotiation add", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Client ID (required)")
	description := fs.String("description", "", "What is being negotiated")
	status := fs.String("status", string(models.StatusOpen), "OPEN, WON, or LOST")
	_ = fs.Parse(args)

	st, ok := models.ParseNegotiationStatus(*status)
	if !ok {
		return fmt.Errorf("invalid status: %s", *status)
	}

	negotiation, err := state.AddNegotiation(models.Negotiation{
		ClientID:    *clientID,
		Status:      st,
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("failed to create negotiation: %w", err)
	}

	outf("✓ Negotiation created (ID: %d)\n", negotiation.ID)
	outf("  Client: %s\n", state.ClientDisplayName(negotiation.ClientID))
	outf("  Status: %s\n", negotiation.Status)
	return nil
}

// UpdateNegotiationCommand changes the fields given as flags.
func UpdateNegotiationCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("negotiation update", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Move to another client")
	description := fs.String("description", "", "What is being negotiated")
	status := fs.String("status", "", "OPEN, WON, or LOST")
	_ = fs.Parse(args)

	id, err := argID(fs, "negotiation")
	if err != nil {
		return err
	}
	existing, ok := state.Negotiation(id)
	if !ok {
		return fmt.Errorf("negotiation not found: %d", id)
	}

	set := setFlags(fs)
	if set["client"] {
		existing.ClientID = *clientID
	}
	if set["description"] {
		existing.Description = *description
	}
	if set["status"] {
		st, ok := models.ParseNegotiationStatus(*status)
		if !ok {
			return fmt.Errorf("invalid status: %s", *status)
		}
		existing.Status = st
	}

	if _, err := state.UpdateNegotiation(existing); err != nil {
		return fmt.Errorf("failed to update negotiation: %w", err)
	}

	outf("✓ Negotiation updated (ID: %d)\n", id)
	outf("  Client: %s\n", state.ClientDisplayName(existing.ClientID))
	outf("  Status: %s\n", existing.Status)
	return nil
}

// ListNegotiationsCommand lists negotiations with their totals.
func ListNegotiationsCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("negotiation list", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Filter by client ID")
	status := fs.String("status", "", "Filter by status")
	_ = fs.Parse(args)

	negotiations := state.Negotiations()
	if *clientID != 0 {
		negotiations = state.NegotiationsFor(*clientID)
	}
	if *status != "" {
		st, ok := models.ParseNegotiationStatus(*status)
		if !ok {
			return fmt.Errorf("invalid status: %s", *status)
		}
		filtered := negotiations[:0]
		for _, n := range negotiations {
			if n.Status == st {
				filtered = append(filtered, n)
			}
		}
		negotiations = filtered
	}

	if len(negotiations) == 0 {
		outln("No negotiations found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tCLIENT\tSTATUS\tTOTAL\tCREATED\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "--\t------\t------\t-----\t-------\t-----------")
	for _, n := range negotiations {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			n.ID, state.ClientDisplayName(n.ClientID), n.Status,
			state.NegotiationTotal(n.ID).StringFixed(2),
			n.CreatedAt.Format("2006-01-02"), dash(n.Description))
	}
	_ = w.Flush()

	outf("\nTotal: %d negotiation(s)\n", len(negotiations))
	return nil
}

// ShowNegotiationCommand prints a negotiation with its line items.
func ShowNegotiationCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("negotiation show", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "negotiation")
	if err != nil {
		return err
	}
	n, ok := state.Negotiation(id)
	if !ok {
		return fmt.Errorf("negotiation not found: %d", id)
	}

	outf("Negotiation %d: %s\n", n.ID, dash(n.Description))
	outf("  Client:  %s\n", state.ClientDisplayName(n.ClientID))
	outf("  Status:  %s\n", n.Status)
	outf("  Created: %s\n", models.FormatTimestamp(n.CreatedAt))

	items := state.LineItemsFor(id)
	if len(items) > 0 {
		outln()
		w := newTable()
		_, _ = fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tPRICE\tDISCOUNT\tSUBTOTAL")
		_, _ = fmt.Fprintln(w, "----\t-------\t---\t-----\t--------\t--------")
		for _, li := range items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				li.ID, li.ProductName, li.Quantity,
				li.UnitPrice.StringFixed(2), li.Discount.StringFixed(2),
				crm.LineItemSubtotal(li).StringFixed(2))
		}
		_ = w.Flush()
	}

	outf("\nTotal: %s\n", state.NegotiationTotal(id).StringFixed(2))
	return nil
}

// SetNegotiationStatusCommand moves a negotiation to OPEN, WON, or LOST.
func SetNegotiationStatusCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("negotiation status", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "negotiation")
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("status is required (OPEN, WON, or LOST)")
	}
	st, ok := models.ParseNegotiationStatus(fs.Arg(1))
	if !ok {
		return fmt.Errorf("invalid status: %s", fs.Arg(1))
	}

	updated, err := state.SetNegotiationStatus(id, st)
	if err != nil {
		return fmt.Errorf("failed to update negotiation: %w", err)
	}
	if !updated {
		return fmt.Errorf("negotiation not found: %d", id)
	}

	outf("✓ Negotiation %d is now %s\n", id, st)
	return nil
}

// DeleteNegotiationCommand deletes a negotiation and its line items.
func DeleteNegotiationCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("negotiation delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argID(fs, "negotiation")
	if err != nil {
		return err
	}

	deleted, removed, err := state.DeleteNegotiation(id)
	if err != nil {
		return fmt.Errorf("failed to delete negotiation: %w", err)
	}
	if !deleted {
		return fmt.Errorf("negotiation not found: %d", id)
	}

	outf("✓ Negotiation deleted: %d (%d line item(s) removed)\n", id, removed)
	return nil
}

// AddItemCommand quotes a catalog product on a negotiation.
func AddItemCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("item add", flag.ExitOnError)
	negotiationID := fs.Int64("negotiation", 0, "Negotiation ID (required)")
	productID := fs.String("product", "", "Product ID (required)")
	quantity := fs.Int("quantity", 1, "Quantity")
	discount := fs.String("discount", "0", "Discount amount for the line")
	_ = fs.Parse(args)

	d, err := decimal.NewFromString(*discount)
	if err != nil {
		return fmt.Errorf("invalid discount: %w", err)
	}

	item, err := state.AddLineItem(crm.LineItemInput{
		NegotiationID: *negotiationID,
		ProductID:     *productID,
		Quantity:      *quantity,
		Discount:      d,
	})
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	outf("✓ Item added: %s\n", item.ID)
	outf("  %d x %s at %s, subtotal %s\n",
		item.Quantity, item.ProductName, item.UnitPrice.StringFixed(2), crm.LineItemSubtotal(item).StringFixed(2))
	outf("  Negotiation total: %s\n", state.NegotiationTotal(item.NegotiationID).StringFixed(2))
	return nil
}

// RemoveItemCommand removes a line item from its negotiation.
func RemoveItemCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("item remove", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argString(fs, "item")
	if err != nil {
		return err
	}

	removed, err := state.RemoveLineItem(id)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	if !removed {
		return fmt.Errorf("item not found: %s", id)
	}

	outf("✓ Item removed: %s\n", id)
	return nil
}
