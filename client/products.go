package client

import (
	"context"
	"net/http"
	"net/url"

	"storefront-client/models"
)

// ListProducts fetches the full catalog. Read access is role-independent.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, "list products", http.MethodGet, "/api/products", nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a product to the catalog. ADMIN-intended; the server
// decides.
func (c *Client) CreateProduct(ctx context.Context, req models.NewProductRequest) (*models.Product, error) {
	var created models.Product
	if err := c.doJSON(ctx, "create product", http.MethodPost, "/api/products", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteProduct removes a product from the catalog. ADMIN-intended.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, "delete product", http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, "", nil)
}
