package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-client/auth"
	"storefront-client/controller"
	"storefront-client/models"
	"storefront-client/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DevServerTestSuite struct {
	suite.Suite
	srv    *Server
	ts     *httptest.Server
	client *http.Client
}

func (suite *DevServerTestSuite) SetupTest() {
	cfg := &models.Config{
		AppName:        "storefront-dev",
		TokenSecret:    "test-secret",
		TokenExpiresIn: 30 * time.Minute,
		RequestTimeout: 5 * time.Second,
	}
	suite.srv = New(cfg, logger.NewLogger("error", "text"))
	suite.ts = httptest.NewServer(suite.srv.Router())
	suite.client = suite.ts.Client()
}

func (suite *DevServerTestSuite) TearDownTest() {
	suite.ts.Close()
}

// obtainToken exchanges demo credentials at the token endpoint
func (suite *DevServerTestSuite) obtainToken(email, password string) string {
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	require.NoError(suite.T(), err)

	resp, err := suite.client.Post(suite.ts.URL+"/auth/token", "application/json", bytes.NewReader(body))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var token models.TokenResponse
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&token))
	return token.AccessToken
}

func (suite *DevServerTestSuite) request(method, path, token, contentType, body string) *http.Response {
	req, err := http.NewRequest(method, suite.ts.URL+path, strings.NewReader(body))
	require.NoError(suite.T(), err)
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err)
	return resp
}

func (suite *DevServerTestSuite) TestTokenEndpointRejectsBadCredentials() {
	body, _ := json.Marshal(models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	resp, err := suite.client.Post(suite.ts.URL+"/auth/token", "application/json", bytes.NewReader(body))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *DevServerTestSuite) TestIssuedTokenResolvesExpectedRole() {
	adminToken := suite.obtainToken("admin@example.com", "admin123")
	clientToken := suite.obtainToken("client@example.com", "client123")

	assert.Equal(suite.T(), models.RoleAdmin, auth.ResolveRole(auth.DecodeToken(adminToken)))
	assert.Equal(suite.T(), models.RoleClient, auth.ResolveRole(auth.DecodeToken(clientToken)))
	assert.Equal(suite.T(), "admin", auth.DecodeToken(adminToken).PreferredUsername())
}

func (suite *DevServerTestSuite) TestProductMutationsRequireAdmin() {
	clientToken := suite.obtainToken("client@example.com", "client123")
	adminToken := suite.obtainToken("admin@example.com", "admin123")

	payload := `{"name":"Tablet","description":"","price":249.5,"quantity":3}`

	resp := suite.request(http.MethodPost, "/api/products", clientToken, "application/json", payload)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)

	resp = suite.request(http.MethodPost, "/api/products", adminToken, "application/json", payload)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	var created models.Product
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(suite.T(), created.ID)

	resp = suite.request(http.MethodDelete, "/api/products/"+created.ID, clientToken, "", "")
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)

	resp = suite.request(http.MethodDelete, "/api/products/"+created.ID, adminToken, "", "")
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNoContent, resp.StatusCode)
}

func (suite *DevServerTestSuite) TestOrderPlacementDecrementsStock() {
	clientToken := suite.obtainToken("client@example.com", "client123")

	products := suite.srv.Store().ListProducts()
	require.NotEmpty(suite.T(), products)
	target := products[0]

	lines, _ := json.Marshal([]models.OrderLineRequest{{ProductID: target.ID, Quantity: 2}})
	resp := suite.request(http.MethodPost, "/api/orders", clientToken, "application/json", string(lines))
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&order))
	assert.Equal(suite.T(), "client", order.UserID)
	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
	assert.InDelta(suite.T(), target.Price*2, order.TotalAmount, 0.001)

	after := suite.srv.Store().ListProducts()
	assert.Equal(suite.T(), target.Quantity-2, after[0].Quantity)

	// Over-ordering the remaining stock fails the whole order
	lines, _ = json.Marshal([]models.OrderLineRequest{{ProductID: target.ID, Quantity: 10000}})
	resp = suite.request(http.MethodPost, "/api/orders", clientToken, "application/json", string(lines))
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *DevServerTestSuite) TestOrderListingIsRoleScoped() {
	clientToken := suite.obtainToken("client@example.com", "client123")
	adminToken := suite.obtainToken("admin@example.com", "admin123")

	_, err := suite.srv.Store().PlaceOrder("client", []models.OrderLineRequest{
		{ProductID: suite.srv.Store().ListProducts()[0].ID, Quantity: 1},
	})
	require.NoError(suite.T(), err)
	_, err = suite.srv.Store().PlaceOrder("somebody-else", []models.OrderLineRequest{
		{ProductID: suite.srv.Store().ListProducts()[0].ID, Quantity: 1},
	})
	require.NoError(suite.T(), err)

	// The all-orders endpoint is admin only
	resp := suite.request(http.MethodGet, "/api/orders", clientToken, "", "")
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)

	resp = suite.request(http.MethodGet, "/api/orders", adminToken, "", "")
	var all []models.Order
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	assert.Len(suite.T(), all, 2)

	resp = suite.request(http.MethodGet, "/api/orders/my-orders", clientToken, "", "")
	var mine []models.Order
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&mine))
	resp.Body.Close()
	require.Len(suite.T(), mine, 1)
	assert.Equal(suite.T(), "client", mine[0].UserID)
}

func (suite *DevServerTestSuite) TestStatusPatchValidation() {
	adminToken := suite.obtainToken("admin@example.com", "admin123")

	order, err := suite.srv.Store().PlaceOrder("client", []models.OrderLineRequest{
		{ProductID: suite.srv.Store().ListProducts()[0].ID, Quantity: 1},
	})
	require.NoError(suite.T(), err)

	resp := suite.request(http.MethodPatch, "/api/orders/"+order.ID+"/status", adminToken, "text/plain", "SHIPPED")
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	resp = suite.request(http.MethodPatch, "/api/orders/"+order.ID+"/status", adminToken, "text/plain", "APPROVED")
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNoContent, resp.StatusCode)

	assert.Equal(suite.T(), models.OrderStatusApproved, suite.srv.Store().ListOrders()[len(suite.srv.Store().ListOrders())-1].Status)
}

// Full stack: session + resource client + controllers against the dev server
func (suite *DevServerTestSuite) TestControllerIntegration() {
	ctx := context.Background()
	log := logger.NewLogger("error", "text")
	cfg := &models.Config{APIBaseURL: suite.ts.URL, RequestTimeout: 5 * time.Second}

	adminSession := auth.NewSession()
	adminToken := suite.obtainToken("admin@example.com", "admin123")
	adminSession.SetToken(adminToken, auth.DecodeToken(adminToken).PreferredUsername())
	admin := controller.NewController(cfg, adminSession, log)

	clientSession := auth.NewSession()
	clientToken := suite.obtainToken("client@example.com", "client123")
	clientSession.SetToken(clientToken, auth.DecodeToken(clientToken).PreferredUsername())
	shopper := controller.NewController(cfg, clientSession, log)

	// Admin adds a product through the compose flow
	admin.Catalog.OpenProductForm()
	require.NoError(suite.T(), admin.Catalog.SubmitNewProduct(ctx, models.ProductForm{
		Name: "Monitor", Price: "349.99", Quantity: "7",
	}))

	var monitorID string
	for _, p := range admin.Catalog.Products() {
		if p.Name == "Monitor" {
			monitorID = p.ID
		}
	}
	require.NotEmpty(suite.T(), monitorID)

	// Shopper orders it; the shopper's catalog snapshot is not refreshed
	require.NoError(suite.T(), shopper.Catalog.Load(ctx))
	require.NoError(suite.T(), shopper.Catalog.Order(ctx, monitorID, 2))

	// Shopper may not delete; the server rejection is authoritative
	err := shopper.Catalog.Remove(ctx, monitorID)
	assert.Error(suite.T(), err)

	// Admin sees the order and approves it
	require.NoError(suite.T(), admin.Orders.Load(ctx))
	orders := admin.Orders.Orders()
	require.Len(suite.T(), orders, 1)
	assert.Equal(suite.T(), "client", orders[0].UserID)
	require.NoError(suite.T(), admin.Orders.UpdateStatus(ctx, orders[0].ID, models.OrderStatusApproved))

	// Shopper's own view reflects the approval after a reload
	require.NoError(suite.T(), shopper.Orders.Load(ctx))
	mine := shopper.Orders.Orders()
	require.Len(suite.T(), mine, 1)
	assert.Equal(suite.T(), models.OrderStatusApproved, mine[0].Status)
	assert.False(suite.T(), shopper.Orders.CanModerate())

	// A status this client does not recognize still round-trips untouched
	suite.srv.Store().SetOrderStatus(mine[0].ID, "ON_HOLD")
	require.NoError(suite.T(), shopper.Orders.Load(ctx))
	assert.Equal(suite.T(), models.OrderStatus("ON_HOLD"), shopper.Orders.Orders()[0].Status)
}

func TestDevServerTestSuite(t *testing.T) {
	suite.Run(t, new(DevServerTestSuite))
}
