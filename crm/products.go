// ABOUTME: Product catalog operations
// ABOUTME: Products are independent; edits and deletes never touch existing line items
package crm

import (
	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/models"
)

// AddProduct stores a catalog entry. An empty id is generated.
func (s *State) AddProduct(p models.Product) (models.Product, error) {
	if err := validate("product", p.Problems()); err != nil {
		return models.Product{}, err
	}

	var stored models.Product
	err := s.mutate(func(t *tx) error {
		stored = t.products.Add(p)
		t.touch(kv.KeyProducts)
		return nil
	})
	return stored, err
}

// UpdateProduct replaces name and price of the product with p.ID. The id
// itself never changes. Unknown ids report false.
func (s *State) UpdateProduct(p models.Product) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if !t.products.Exists(p.ID) {
			return nil
		}
		if err := validate("product", p.Problems()); err != nil {
			return err
		}
		found = t.products.Update(p)
		t.touch(kv.KeyProducts)
		return nil
	})
	return found, err
}

// DeleteProduct removes a product. No cascade. Unknown ids report false.
func (s *State) DeleteProduct(id string) (bool, error) {
	var found bool
	err := s.mutate(func(t *tx) error {
		if found = t.products.Remove(id); found {
			t.touch(kv.KeyProducts)
		}
		return nil
	})
	return found, err
}

// Products returns the catalog in insertion order.
func (s *State) Products() []models.Product {
	var out []models.Product
	s.read(func(c *collections) { out = c.products.All() })
	return out
}

// Product returns the product with id.
func (s *State) Product(id string) (models.Product, bool) {
	var (
		out models.Product
		ok  bool
	)
	s.read(func(c *collections) { out, ok = c.products.FindByID(id) })
	return out, ok
}
