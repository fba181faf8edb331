package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"shipment-dashboard/internal/services"
	"github.com/starfederation/datastar-go/datastar"
)

const maxTableRows = 50

var routeTableTemplate = template.Must(template.New("routeTable").Parse(`
<div id="routes-content">
<table class="modern-table">
<thead><tr><th>Route</th><th>Shipments</th><th>Delayed</th><th>Delay Rate</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Route}}</td>
<td>{{.Count}}</td>
<td>{{.Delayed}}</td>
<td><strong>{{printf "%.2f" .DelayRate}}%</strong></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

var summaryCardsTemplate = template.Must(template.New("summaryCards").Parse(`
<div id="summary-content">
<div class="metric-card"><span class="metric-value">{{.TotalShipments}}</span><span class="metric-label">Total Shipments</span></div>
<div class="metric-card"><span class="metric-value">{{.ArrivedCount}}</span><span class="metric-label">Arrived</span></div>
<div class="metric-card"><span class="metric-value">{{.InTransitCount}}</span><span class="metric-label">In Transit</span></div>
<div class="metric-card"><span class="metric-value">{{printf "%.2f" .OnTimePercentage}}%</span><span class="metric-label">On Time</span></div>
<div class="metric-card"><span class="metric-value">{{printf "%.2f" .DelayPercentage}}%</span><span class="metric-label">Delayed</span></div>
<div class="metric-card"><span class="metric-value">{{printf "%.2f" .AverageDelayDays}}</span><span class="metric-label">Avg Delay (days)</span></div>
</div>`))

type SSEHandlers struct {
	shipments *services.Shipments
	logger    *slog.Logger
}

func NewSSEHandlers(shipments *services.Shipments, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		shipments: shipments,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderRouteTable() (string, error) {
	var buf strings.Builder
	rows := h.shipments.TopRouteDelays(maxTableRows)
	err := routeTableTemplate.Execute(&buf, map[string]any{"Rows": rows})
	return buf.String(), err
}

func (h *SSEHandlers) renderSummaryCards() (string, error) {
	var buf strings.Builder
	err := summaryCardsTemplate.Execute(&buf, h.shipments.Metrics())
	return buf.String(), err
}

func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderSummaryCards()
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRouteDelays(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderRouteTable()
	if err != nil {
		h.logger.Error("render route table", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleSKUDelays(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.shipments.TopSKUDelays(maxSKURows)
	jsonData, err := json.Marshal(map[string]any{
		"skuData": data,
	})
	if err != nil {
		h.logger.Error("marshal sku data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="sku-content">✅ SKU delay chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRiskSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.shipments.RiskSummary()
	jsonData, err := json.Marshal(map[string]any{
		"riskData": data,
	})
	if err != nil {
		h.logger.Error("marshal risk data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)
	sse.PatchElements(`<div id="risk-content">✅ Risk summary data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	summaryHTML, err := h.renderSummaryCards()
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(summaryHTML)

	routeHTML, err := h.renderRouteTable()
	if err != nil {
		h.logger.Error("render route table", "error", err)
		return
	}
	sse.PatchElements(routeHTML)

	allSignals, err := json.Marshal(map[string]any{
		"skuData":  h.shipments.TopSKUDelays(maxSKURows),
		"riskData": h.shipments.RiskSummary(),
	})
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
