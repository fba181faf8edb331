// Package templates holds the server-rendered dashboard shell. Widget
// content arrives afterwards over the datastar SSE endpoints, so the shell
// only lays out the containers and wires their load triggers.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Shipment Analytics</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6fa;color:#1f2430}
header{background:#1f2430;color:#fff;padding:1rem 2rem}
main{padding:1.5rem 2rem;display:grid;gap:1.5rem}
section{background:#fff;border-radius:8px;padding:1.25rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
#summary-content{display:flex;flex-wrap:wrap;gap:1rem}
.metric-card{display:flex;flex-direction:column;min-width:9rem;padding:.75rem 1rem;background:#f0f2f8;border-radius:6px}
.metric-value{font-size:1.5rem;font-weight:600}
.metric-label{font-size:.8rem;color:#5a6072}
.modern-table{width:100%;border-collapse:collapse}
.modern-table th,.modern-table td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e4e7ef}
</style>
</head>
<body>
<header><h1>Shipment Analytics Dashboard</h1></header>
<main>
<section data-on-load="@get('/sse/summary')">
<h2>Overview</h2>
<div id="summary-content">Loading metrics…</div>
</section>
<section data-on-load="@get('/sse/route-delays')">
<h2>Routes by Delay Rate</h2>
<div id="routes-content">Loading routes…</div>
</section>
<section data-on-load="@get('/sse/sku-delays')" data-signals="{skuData: []}">
<h2>SKUs by Delay Rate</h2>
<div id="sku-content">Loading SKUs…</div>
</section>
<section data-on-load="@get('/sse/risk-summary')" data-signals="{riskData: {}}">
<h2>Delay Risk</h2>
<div id="risk-content">Loading predictions…</div>
</section>
<button data-on-click="@get('/sse/refresh-all')">Refresh all</button>
</main>
</body>
</html>`

// Dashboard renders the static page shell.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}
