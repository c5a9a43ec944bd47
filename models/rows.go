// ABOUTME: Flat column/value views of each entity for tabular export
// ABOUTME: Column names follow the persisted JSON field names
package models

func (Client) Columns() []string {
	return []string{"id", "name", "document", "address", "number", "email", "phone"}
}

func (c Client) Values() []any {
	return []any{c.ID, c.Name, c.Document, c.Address, c.Number, c.Email, c.Phone}
}

func (Contact) Columns() []string {
	return []string{"id", "clientId", "name", "role", "phone", "email"}
}

func (c Contact) Values() []any {
	return []any{c.ID, c.ClientID, c.Name, c.Role, c.Phone, c.Email}
}

func (Schedule) Columns() []string {
	return []string{"id", "clientId", "type", "date", "notes"}
}

func (s Schedule) Values() []any {
	return []any{s.ID, s.ClientID, string(s.Type), s.Date, s.Notes}
}

func (Negotiation) Columns() []string {
	return []string{"id", "clientId", "status", "description", "createdAt"}
}

func (n Negotiation) Values() []any {
	return []any{n.ID, n.ClientID, string(n.Status), n.Description, FormatTimestamp(n.CreatedAt)}
}

func (Product) Columns() []string {
	return []string{"id", "name", "price"}
}

func (p Product) Values() []any {
	return []any{p.ID, p.Name, p.Price.InexactFloat64()}
}

func (NegotiationLineItem) Columns() []string {
	return []string{"id", "negotiationId", "productId", "productName", "quantity", "price", "discount"}
}

func (li NegotiationLineItem) Values() []any {
	return []any{
		li.ID,
		li.NegotiationID,
		li.ProductID,
		li.ProductName,
		li.Quantity,
		li.UnitPrice.InexactFloat64(),
		li.Discount.InexactFloat64(),
	}
}
