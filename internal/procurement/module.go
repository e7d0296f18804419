// Package procurement provides the procurement bounded context module.
package procurement

import (
	apphttp "ctai_backend/internal/http"
	"ctai_backend/internal/procurement/handler"
	"ctai_backend/internal/procurement/service"
	"ctai_backend/platform/validator"
)

// Module is the procurement bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the procurement module.
func NewModule(svc *service.Service, val *validator.Validator) *Module {
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "procurement"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts procurement routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/procurement/report", m.handler.GenerateReport)
	ctx.V1.GET("/vendors", m.handler.SearchVendors)
	ctx.V1.POST("/schedule", m.handler.GenerateSchedule)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
