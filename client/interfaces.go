package client

import (
	"context"

	"storefront-client/models"
)

// TokenSource supplies the bearer token attached to every request
type TokenSource interface {
	AccessToken() string
}

// ProductAPI defines the catalog operations the controllers depend on
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.NewProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// OrderAPI defines the order operations the controllers depend on.
// Endpoint-variant selection (all orders vs my orders) belongs to the
// caller; this layer performs no authorization logic.
type OrderAPI interface {
	CreateOrder(ctx context.Context, lines []models.OrderLineRequest) error
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}
