// ABOUTME: Product catalog CLI commands
// ABOUTME: Price edits here never change line items already quoted
package cli

import (
	"flag"
	"fmt"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

// AddProductCommand adds a product to the catalog.
func AddProductCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("product add", flag.ExitOnError)
	name := fs.String("name", "", "Product name (required)")
	price := fs.String("price", "", "Unit price (required)")
	_ = fs.Parse(args)

	p, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	product, err := state.AddProduct(models.Product{Name: *name, Price: p})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	outf("✓ Product created: %s (ID: %s)\n", product.Name, product.ID)
	outf("  Price: %s\n", product.Price.StringFixed(2))
	return nil
}

// ListProductsCommand lists the catalog.
func ListProductsCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("product list", flag.ExitOnError)
	_ = fs.Parse(args)

	products := state.Products()
	if len(products) == 0 {
		outln("No products found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE")
	_, _ = fmt.Fprintln(w, "--\t----\t-----")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
	_ = w.Flush()

	outf("\nTotal: %d product(s)\n", len(products))
	return nil
}

// UpdateProductCommand changes a product's name or price.
func UpdateProductCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("product update", flag.ExitOnError)
	name := fs.String("name", "", "Product name")
	price := fs.String("price", "", "Unit price")
	_ = fs.Parse(args)

	id, err := argString(fs, "product")
	if err != nil {
		return err
	}
	existing, ok := state.Product(id)
	if !ok {
		return fmt.Errorf("product not found: %s", id)
	}

	set := setFlags(fs)
	if set["name"] {
		existing.Name = *name
	}
	if set["price"] {
		p, err := decimal.NewFromString(*price)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		existing.Price = p
	}

	if _, err := state.UpdateProduct(existing); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	outf("✓ Product updated: %s (ID: %s)\n", existing.Name, id)
	return nil
}

// DeleteProductCommand removes a product from the catalog. Quoted line
// items keep their copy of the product.
func DeleteProductCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("product delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := argString(fs, "product")
	if err != nil {
		return err
	}

	deleted, err := state.DeleteProduct(id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return fmt.Errorf("product not found: %s", id)
	}

	outf("✓ Product deleted: %s\n", id)
	return nil
}
