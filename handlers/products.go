// ABOUTME: Product catalog MCP tool handlers
// ABOUTME: Implements add_product, list_products, update_product, and delete_product tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

type ProductHandlers struct {
	state *crm.State
}

func NewProductHandlers(state *crm.State) *ProductHandlers {
	return &ProductHandlers{state: state}
}

type ProductInput struct {
	ID    string `json:"id,omitempty" jsonschema:"Product ID (required for update, ignored on add)"`
	Name  string `json:"name" jsonschema:"Product name (required)"`
	Price string `json:"price" jsonschema:"Unit price, e.g. 1500 or 19.90 (required, not negative)"`
}

type ProductOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

func productToOutput(p models.Product) ProductOutput {
	return ProductOutput{ID: p.ID, Name: p.Name, Price: p.Price.StringFixed(2)}
}

func (in ProductInput) toModel(id string) (models.Product, error) {
	price, err := parseAmount("price", in.Price)
	if err != nil {
		return models.Product{}, err
	}
	return models.Product{ID: id, Name: in.Name, Price: price}, nil
}

func (h *ProductHandlers) AddProduct(_ context.Context, _ *mcp.CallToolRequest, input ProductInput) (*mcp.CallToolResult, ProductOutput, error) {
	p, err := input.toModel("")
	if err != nil {
		return nil, ProductOutput{}, err
	}
	stored, err := h.state.AddProduct(p)
	if err != nil {
		return nil, ProductOutput{}, fmt.Errorf("failed to add product: %w", err)
	}
	return nil, productToOutput(stored), nil
}

type ListProductsInput struct{}

type ListProductsOutput struct {
	Products []ProductOutput `json:"products"`
}

func (h *ProductHandlers) ListProducts(_ context.Context, _ *mcp.CallToolRequest, _ ListProductsInput) (*mcp.CallToolResult, ListProductsOutput, error) {
	products := h.state.Products()
	result := make([]ProductOutput, len(products))
	for i, p := range products {
		result[i] = productToOutput(p)
	}
	return nil, ListProductsOutput{Products: result}, nil
}

// UpdateProduct changes catalog name and price. Existing line items keep the
// values they were created with.
func (h *ProductHandlers) UpdateProduct(_ context.Context, _ *mcp.CallToolRequest, input ProductInput) (*mcp.CallToolResult, UpdateOutput, error) {
	if input.ID == "" {
		return nil, UpdateOutput{}, fmt.Errorf("id is required")
	}
	p, err := input.toModel(input.ID)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	found, err := h.state.UpdateProduct(p)
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to update product: %w", err)
	}
	return nil, UpdateOutput{Updated: found}, nil
}

type DeleteProductInput struct {
	ID string `json:"id" jsonschema:"Product ID (required)"`
}

func (h *ProductHandlers) DeleteProduct(_ context.Context, _ *mcp.CallToolRequest, input DeleteProductInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := h.state.DeleteProduct(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete product: %w", err)
	}
	return nil, DeleteOutput{Deleted: found}, nil
}
