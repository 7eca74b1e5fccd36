package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"storefront-client/models"
)

// CreateOrder submits a new order as a sequence of order lines
func (c *Client) CreateOrder(ctx context.Context, lines []models.OrderLineRequest) error {
	return c.doJSON(ctx, "create order", http.MethodPost, "/api/orders", lines, nil)
}

// ListAllOrders fetches every order in the system. ADMIN-intended.
func (c *Client) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, "list all orders", http.MethodGet, "/api/orders", nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListMyOrders fetches only the caller's own orders
func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, "list my orders", http.MethodGet, "/api/orders/my-orders", nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus patches an order's status. The server contract takes
// the new status as a raw text body, not JSON.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	path := "/api/orders/" + url.PathEscape(id) + "/status"
	return c.do(ctx, "update order status", http.MethodPatch, path, strings.NewReader(string(status)), "text/plain", nil)
}
