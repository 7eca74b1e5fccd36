package devserver

import (
	"fmt"
	"sync"
	"time"

	"storefront-client/models"

	"github.com/google/uuid"
)

// DemoUser is a seeded identity the token endpoint accepts
type DemoUser struct {
	Email        string
	Username     string
	PasswordHash string
	Roles        []string
}

// Store is the in-memory backing state of the dev server. It exists only
// for local runs and integration tests; nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	orders   []models.Order
	users    map[string]DemoUser
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{users: map[string]DemoUser{}}
}

// AddUser registers a demo identity
func (s *Store) AddUser(u DemoUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
}

// FindUser looks up a demo identity by email
func (s *Store) FindUser(email string) (DemoUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	return u, ok
}

// ListProducts returns a copy of the catalog
func (s *Store) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// AddProduct inserts a product and assigns it an id
func (s *Store) AddProduct(req models.NewProductRequest) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	s.products = append(s.products, p)
	return p
}

// DeleteProduct removes a product by id
func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// PlaceOrder creates a PENDING order for userID, pricing each line from the
// catalog and decrementing stock. The whole order fails if any line names
// an unknown product or exceeds available stock.
func (s *Store) PlaceOrder(userID string, lines []models.OrderLineRequest) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	indices := make([]int, 0, len(lines))
	for _, line := range lines {
		found := -1
		for i, p := range s.products {
			if p.ID == line.ProductID {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("unknown product %s", line.ProductID)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d", line.Quantity)
		}
		if s.products[found].Quantity < line.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s", line.ProductID)
		}
		total += s.products[found].Price * float64(line.Quantity)
		indices = append(indices, found)
	}

	// All lines check out; decrement stock
	for i, line := range lines {
		s.products[indices[i]].Quantity -= line.Quantity
	}

	order := models.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Status:      models.OrderStatusPending,
		OrderDate:   time.Now().UTC(),
		TotalAmount: total,
		Items:       make([]models.OrderItem, 0, len(lines)),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	s.orders = append(s.orders, order)
	return &order, nil
}

// ListOrders returns a copy of every order
func (s *Store) ListOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrdersForUser returns the orders belonging to userID
func (s *Store) OrdersForUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	if out == nil {
		out = []models.Order{}
	}
	return out
}

// SetOrderStatus updates one order's status
func (s *Store) SetOrderStatus(id string, status models.OrderStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return true
		}
	}
	return false
}
