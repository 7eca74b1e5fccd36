package controller

import (
	"context"
	"sync"

	"storefront-client/auth"
	"storefront-client/client"
	"storefront-client/models"
	"storefront-client/utils/logger"
)

// OrderController orchestrates the orders screen. Endpoint selection is a
// pure function of the effective role: ADMIN sees every order, CLIENT only
// its own. Moderation is ADMIN-only and always followed by a reload; the
// refreshed list is the only source of truth the client trusts.
type OrderController struct {
	session *auth.Session
	orders  client.OrderAPI
	logger  logger.Logger

	mu             sync.Mutex
	state          ScreenState
	items          []models.Order
	loadInFlight   bool
	updateInFlight bool
}

// NewOrderController creates an order controller over the given session
func NewOrderController(session *auth.Session, orders client.OrderAPI, log logger.Logger) *OrderController {
	return &OrderController{
		session: session,
		orders:  orders,
		logger:  log,
		state:   StateLoading,
	}
}

// State returns the current screen state
func (c *OrderController) State() ScreenState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Orders returns the current order snapshot
func (c *OrderController) Orders() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Order, len(c.items))
	copy(out, c.items)
	return out
}

// CanModerate reports whether approve/reject affordances are shown
func (c *OrderController) CanModerate() bool {
	return c.session.Role() == models.RoleAdmin
}

// CanSeeUserID reports whether the order owner's user id is rendered
func (c *OrderController) CanSeeUserID() bool {
	return c.session.Role() == models.RoleAdmin
}

// Load fetches orders through the endpoint variant the role dictates and
// replaces the snapshot wholesale. A Load while one is outstanding is
// skipped.
func (c *OrderController) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.loadInFlight {
		c.mu.Unlock()
		return nil
	}
	c.loadInFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loadInFlight = false
		c.mu.Unlock()
	}()

	gen := c.session.Generation()

	var (
		items []models.Order
		err   error
	)
	if c.session.Role() == models.RoleAdmin {
		items, err = c.orders.ListAllOrders(ctx)
	} else {
		items, err = c.orders.ListMyOrders(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateReady
	if err != nil {
		c.logger.Errorf("loading orders failed: %v", err)
		return err
	}
	if c.session.Generation() != gen {
		c.logger.Debug("discarding orders response from ended session")
		return nil
	}
	c.items = items
	return nil
}

// UpdateStatus moves an order to APPROVED or REJECTED and reloads the list
// unconditionally on success. A failure leaves the snapshot at its prior
// state; no partial mutation ever reaches the list.
func (c *OrderController) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if status != models.OrderStatusApproved && status != models.OrderStatusRejected {
		return &models.ValidationError{Field: "status", Details: "must be APPROVED or REJECTED"}
	}

	c.mu.Lock()
	if c.updateInFlight {
		c.mu.Unlock()
		return &models.OperationError{Op: "update order status", Err: ErrBusy}
	}
	c.updateInFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.updateInFlight = false
		c.mu.Unlock()
	}()

	if err := c.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		c.logger.Errorf("updating order %s to %s failed: %v", orderID, status, err)
		return err
	}

	return c.Load(ctx)
}
