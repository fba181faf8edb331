package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shipment-dashboard/internal/services"
)

func newTestSSEHandlers() *SSEHandlers {
	return NewSSEHandlers(createTestShipments(), slog.Default())
}

func assertEventStream(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected event-stream content type, got %q", ct)
	}
	return w.Body.String()
}

func TestSSEHandlers_HandleSummary(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/summary", nil)
	w := httptest.NewRecorder()

	h.HandleSummary(w, req)

	body := assertEventStream(t, w)
	if !strings.Contains(body, "summary-content") {
		t.Error("summary patch should target the summary-content element")
	}
	if !strings.Contains(body, "50.00%") {
		t.Error("summary cards should render the on-time percentage")
	}
}

func TestSSEHandlers_HandleRouteDelays(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/route-delays", nil)
	w := httptest.NewRecorder()

	h.HandleRouteDelays(w, req)

	body := assertEventStream(t, w)
	if !strings.Contains(body, "routes-content") {
		t.Error("route patch should target the routes-content element")
	}
	if !strings.Contains(body, "IN-DEL-&gt;US-LAX") && !strings.Contains(body, "IN-DEL->US-LAX") {
		t.Error("route table should contain the route key")
	}
}

func TestSSEHandlers_HandleSKUDelays(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/sku-delays", nil)
	w := httptest.NewRecorder()

	h.HandleSKUDelays(w, req)

	body := assertEventStream(t, w)
	if !strings.Contains(body, "skuData") {
		t.Error("SKU handler should patch the skuData signal")
	}
	if !strings.Contains(body, "sku-content") {
		t.Error("SKU handler should patch the sku-content element")
	}
}

func TestSSEHandlers_HandleRiskSummary(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/risk-summary", nil)
	w := httptest.NewRecorder()

	h.HandleRiskSummary(w, req)

	body := assertEventStream(t, w)
	if !strings.Contains(body, "riskData") {
		t.Error("risk handler should patch the riskData signal")
	}
	if !strings.Contains(body, "risk-content") {
		t.Error("risk handler should patch the risk-content element")
	}
}

func TestSSEHandlers_HandleRefreshAll(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	w := httptest.NewRecorder()

	h.HandleRefreshAll(w, req)

	body := assertEventStream(t, w)
	for _, fragment := range []string{"summary-content", "routes-content", "skuData", "riskData"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("refresh-all should include %s", fragment)
		}
	}
}

func TestSSEHandlers_EmptyData(t *testing.T) {
	// A fresh service with no dataset must still render, not panic.
	h := NewSSEHandlers(services.NewShipments(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	w := httptest.NewRecorder()

	h.HandleRefreshAll(w, req)

	assertEventStream(t, w)
}
