package devserver

import (
	"io"
	"net/http"
	"strings"

	"storefront-client/models"
	"storefront-client/utils"
	"storefront-client/utils/logger"

	"github.com/gin-gonic/gin"
)

// Server is a local stand-in for the storefront backend and its identity
// provider: the product and order endpoints over in-memory stores plus a
// demo token endpoint. It backs `storefront dev-server` and the integration
// tests; it is not a production component.
type Server struct {
	cfg    *models.Config
	store  *Store
	logger logger.Logger
	engine *gin.Engine
}

// New creates a dev server with seeded demo users and a small catalog
func New(cfg *models.Config, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:    cfg,
		store:  NewStore(),
		logger: log,
		engine: gin.New(),
	}
	s.seed()
	s.routes()
	return s
}

func (s *Server) seed() {
	adminHash, _ := utils.HashPassword("admin123")
	clientHash, _ := utils.HashPassword("client123")
	s.store.AddUser(DemoUser{Email: "admin@example.com", Username: "admin", PasswordHash: adminHash, Roles: []string{"ADMIN"}})
	s.store.AddUser(DemoUser{Email: "client@example.com", Username: "client", PasswordHash: clientHash, Roles: []string{"user"}})

	s.store.AddProduct(models.NewProductRequest{Name: "Phone", Description: "A phone", Price: 499.90, Quantity: 12})
	s.store.AddProduct(models.NewProductRequest{Name: "Laptop", Description: "A laptop", Price: 1299.00, Quantity: 5})
	s.store.AddProduct(models.NewProductRequest{Name: "Headphones", Description: "Over-ear", Price: 89.99, Quantity: 40})
}

func (s *Server) routes() {
	s.engine.POST("/auth/token", s.issueToken)

	api := s.engine.Group("/api", s.authRequired())

	api.GET("/products", s.listProducts)
	api.POST("/products", s.adminRequired(), s.createProduct)
	api.DELETE("/products/:id", s.adminRequired(), s.deleteProduct)

	api.POST("/orders", s.createOrder)
	api.GET("/orders", s.adminRequired(), s.listAllOrders)
	api.GET("/orders/my-orders", s.listMyOrders)
	api.PATCH("/orders/:id/status", s.adminRequired(), s.updateOrderStatus)
}

// Router exposes the engine for httptest hosting
func (s *Server) Router() http.Handler {
	return s.engine
}

// Store exposes the backing store for test setup
func (s *Server) Store() *Store {
	return s.store
}

// Run blocks serving on the configured host and port
func (s *Server) Run() error {
	addr := s.cfg.DevServerHost + ":" + s.cfg.DevServerPort
	s.logger.Infof("dev server listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListProducts())
}

func (s *Server) createProduct(c *gin.Context) {
	var req models.NewProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Price < 0 || req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required, price and quantity must not be negative"})
		return
	}
	created := s.store.AddProduct(req)
	s.logger.Infof("product %s created", created.ID)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if !s.store.DeleteProduct(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	s.logger.Infof("product %s deleted", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) createOrder(c *gin.Context) {
	var lines []models.OrderLineRequest
	if err := c.ShouldBindJSON(&lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one line"})
		return
	}

	username := c.GetString("username")
	order, err := s.store.PlaceOrder(username, lines)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Infof("order %s placed by %s", order.ID, username)
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listAllOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListOrders())
}

func (s *Server) listMyOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.OrdersForUser(c.GetString("username")))
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	status := models.OrderStatus(strings.TrimSpace(string(body)))
	if status != models.OrderStatusApproved && status != models.OrderStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be APPROVED or REJECTED"})
		return
	}

	id := c.Param("id")
	if !s.store.SetOrderStatus(id, status) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	s.logger.Infof("order %s set to %s", id, status)
	c.Status(http.StatusNoContent)
}
