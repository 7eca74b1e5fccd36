package controller

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"storefront-client/auth"
	"storefront-client/client"
	"storefront-client/models"
	"storefront-client/utils/logger"

	"github.com/go-playground/validator/v10"
)

// ErrBusy reports that the same action is already in flight. It guards
// against duplicate submissions from rapid repeated triggers; no network
// call is made.
var ErrBusy = errors.New("action already in flight")

// CatalogController orchestrates the product screen: role-independent
// reads, role-gated mutations, and the new-product compose flow. The role
// check here is advisory UI gating only; the server's rejection of any call
// is authoritative regardless of what this controller believes the role is.
type CatalogController struct {
	session  *auth.Session
	products client.ProductAPI
	orders   client.OrderAPI
	logger   logger.Logger
	validate *validator.Validate

	mu             sync.Mutex
	state          ScreenState
	items          []models.Product
	formOpen       bool
	loadInFlight   bool
	submitInFlight bool
	removeInFlight bool
	orderInFlight  bool
}

// NewCatalogController creates a catalog controller over the given session
func NewCatalogController(session *auth.Session, products client.ProductAPI, orders client.OrderAPI, log logger.Logger) *CatalogController {
	return &CatalogController{
		session:  session,
		products: products,
		orders:   orders,
		logger:   log,
		validate: validator.New(),
		state:    StateLoading,
	}
}

// State returns the current screen state
func (c *CatalogController) State() ScreenState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Products returns the current catalog snapshot
func (c *CatalogController) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Product, len(c.items))
	copy(out, c.items)
	return out
}

// CanManage reports whether the delete / add-product affordances are shown
func (c *CatalogController) CanManage() bool {
	return c.session.Role() == models.RoleAdmin
}

// CanOrder reports whether the order affordance is shown. Order and delete
// are mutually exclusive per role; never both.
func (c *CatalogController) CanOrder() bool {
	return !c.CanManage()
}

// Load fetches the full catalog and replaces the snapshot wholesale.
// Loads are serialized per controller: a Load triggered while one is
// outstanding is skipped.
func (c *CatalogController) Load(ctx context.Context) error {
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
	items, err := c.products.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateReady
	if err != nil {
		c.logger.Errorf("loading catalog failed: %v", err)
		return err
	}
	if c.session.Generation() != gen {
		// Session changed while the fetch was in flight; the response
		// belongs to a dead session and must not reach state.
		c.logger.Debug("discarding catalog response from ended session")
		return nil
	}
	c.items = items
	return nil
}

// Remove deletes a product and refreshes the catalog. Only meaningful for
// ADMIN, but not blocked here: a server rejection leaves the snapshot at
// its last loaded state and no refresh is issued.
func (c *CatalogController) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	if c.removeInFlight {
		c.mu.Unlock()
		return &models.OperationError{Op: "delete product", Err: ErrBusy}
	}
	c.removeInFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.removeInFlight = false
		c.mu.Unlock()
	}()

	if err := c.products.DeleteProduct(ctx, productID); err != nil {
		c.logger.Errorf("deleting product %s failed: %v", productID, err)
		return err
	}
	return c.Load(ctx)
}

// Order submits a single-line order for the given product. CLIENT-intended.
// The catalog snapshot is left untouched on success: stock truth stays with
// the server until the next explicit load.
func (c *CatalogController) Order(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	if c.orderInFlight {
		c.mu.Unlock()
		return &models.OperationError{Op: "create order", Err: ErrBusy}
	}
	c.orderInFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.orderInFlight = false
		c.mu.Unlock()
	}()

	if quantity <= 0 {
		quantity = 1
	}
	lines := []models.OrderLineRequest{{ProductID: productID, Quantity: quantity}}
	if err := c.orders.CreateOrder(ctx, lines); err != nil {
		c.logger.Errorf("ordering product %s failed: %v", productID, err)
		return err
	}
	c.logger.Infof("ordered %dx product %s", quantity, productID)
	return nil
}

// OpenProductForm opens the new-product compose flow
func (c *CatalogController) OpenProductForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = true
}

// CloseProductForm dismisses the compose flow without submitting
func (c *CatalogController) CloseProductForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = false
}

// FormOpen reports whether the compose flow is open
func (c *CatalogController) FormOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formOpen
}

// SubmitNewProduct validates the form, creates the product and reloads the
// catalog. Validation failures return before any network call. On network
// failure the form stays open; on success it closes.
func (c *CatalogController) SubmitNewProduct(ctx context.Context, form models.ProductForm) error {
	c.mu.Lock()
	if c.submitInFlight {
		c.mu.Unlock()
		return &models.OperationError{Op: "create product", Err: ErrBusy}
	}
	c.submitInFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitInFlight = false
		c.mu.Unlock()
	}()

	req, err := c.parseForm(form)
	if err != nil {
		return err
	}

	if _, err := c.products.CreateProduct(ctx, req); err != nil {
		c.logger.Errorf("creating product failed: %v", err)
		return err
	}

	c.mu.Lock()
	c.formOpen = false
	c.mu.Unlock()

	return c.Load(ctx)
}

// parseForm checks required fields and parses the numeric ones
func (c *CatalogController) parseForm(form models.ProductForm) (models.NewProductRequest, error) {
	if err := c.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.NewProductRequest{}, &models.ValidationError{
				Field:   verrs[0].Field(),
				Details: "required field is missing",
			}
		}
		return models.NewProductRequest{}, &models.ValidationError{Field: "form", Details: err.Error()}
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil {
		return models.NewProductRequest{}, &models.ValidationError{Field: "Price", Details: "not a valid decimal"}
	}

	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil {
		return models.NewProductRequest{}, &models.ValidationError{Field: "Quantity", Details: "not a valid integer"}
	}

	return models.NewProductRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Quantity:    quantity,
	}, nil
}
