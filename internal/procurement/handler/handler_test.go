package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ctai_backend/internal/procurement/service"
	"ctai_backend/internal/procurement/transport"
	"ctai_backend/internal/retrieval"
	"ctai_backend/platform/logger"
	"ctai_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type emptyIndex struct{}

func (emptyIndex) Search(context.Context, string, int) ([]retrieval.Result, error) {
	return nil, nil
}

func (emptyIndex) Ready() bool { return true }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.New(service.Deps{
		Index:  emptyIndex{},
		Logger: logger.New("test"),
		Now:    func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
	h := New(svc, validator.New())

	engine := gin.New()
	engine.POST("/procurement/report", h.GenerateReport)
	engine.GET("/vendors", h.SearchVendors)
	engine.POST("/schedule", h.GenerateSchedule)
	return engine
}

func TestGenerateReportEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	body := `{"query": "25 MW data center, 2 lakh sqft, in Navi Mumbai"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/procurement/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var report transport.ProcurementReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Requirements.BuiltUpAreaSqft != 200000 {
		t.Fatalf("area = %v", report.Requirements.BuiltUpAreaSqft)
	}
	if len(report.Schedule) != 8 {
		t.Fatalf("schedule phases = %d", len(report.Schedule))
	}
	if report.Budget.TotalCost <= 0 {
		t.Fatalf("totalCost = %v", report.Budget.TotalCost)
	}
}

func TestGenerateReportEndpointRejectsMissingQuery(t *testing.T) {
	engine := newTestRouter(t)

	for _, body := range []string{`{}`, `{"query": ""}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/procurement/report", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestGenerateReportEndpointRejectsBadTopVendors(t *testing.T) {
	engine := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/procurement/report",
		strings.NewReader(`{"query": "warehouse", "topVendors": 50}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSearchVendorsEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vendors?q=Cement&location=Pune", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp transport.VendorListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 || resp.Vendors == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSearchVendorsEndpointRequiresQuery(t *testing.T) {
	engine := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vendors", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGenerateScheduleEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedule",
		strings.NewReader(`{"builtUpAreaSqft": 120000, "projectType": "commercial"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp transport.ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalDays != 540 {
		t.Fatalf("totalDays = %d, want 540", resp.TotalDays)
	}
	if len(resp.Schedule) != 8 {
		t.Fatalf("phases = %d", len(resp.Schedule))
	}
}

func TestGenerateScheduleEndpointRejectsUnknownType(t *testing.T) {
	engine := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedule",
		strings.NewReader(`{"projectType": "castle"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
