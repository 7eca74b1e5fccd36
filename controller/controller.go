package controller

import (
	"storefront-client/auth"
	"storefront-client/client"
	"storefront-client/models"
	"storefront-client/utils/logger"
)

// ScreenState is the lifecycle state of a screen controller
type ScreenState string

const (
	StateLoading ScreenState = "loading"
	StateReady   ScreenState = "ready"
)

// Controller bundles the two screen controllers over a shared session
type Controller struct {
	Catalog *CatalogController
	Orders  *OrderController
}

// NewController wires the resource client and both controllers
func NewController(cfg *models.Config, session *auth.Session, log logger.Logger) *Controller {
	api := client.New(cfg, session, log)
	return &Controller{
		Catalog: NewCatalogController(session, api, api, log),
		Orders:  NewOrderController(session, api, log),
	}
}
