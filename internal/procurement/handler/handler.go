// Package handler exposes the procurement pipeline over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"ctai_backend/internal/http/response"
	"ctai_backend/internal/procurement/service"
	"ctai_backend/internal/procurement/transport"
	"ctai_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler holds the procurement HTTP handlers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new procurement handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GenerateReport handles POST /procurement/report.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req transport.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	report, err := h.svc.GenerateReport(c.Request.Context(), req.Query, req.TopVendors)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, report)
}

// SearchVendors handles GET /vendors.
func (h *Handler) SearchVendors(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}

	location := c.Query("location")
	k, _ := strconv.Atoi(c.DefaultQuery("k", "0"))

	vendors := h.svc.ResolveVendors(c.Request.Context(), query, location, k)
	response.OK(c, transport.VendorListResponse{
		Vendors: vendors,
		Count:   len(vendors),
	})
}

// GenerateSchedule handles POST /schedule.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req transport.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	totalDays, schedule := h.svc.GenerateScheduleAt(req.BuiltUpAreaSqft, req.ProjectType, req.PowerCapacityMW)
	response.OK(c, transport.ScheduleResponse{
		TotalDays: totalDays,
		Schedule:  schedule,
	})
}
