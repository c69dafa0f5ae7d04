package dashboard

import (
	"encoding/json"
	"html/template"
	"io"
	"sync"

	"learning_insight_backend/internal/model"
)

// HTMLReport 同时实现 View 与 ChartBackend，把一次渲染的输出
// 累积为一份自包含的HTML仪表盘（Chart.js via CDN）。
// 服务端导出与分析CLI共用这一后端。
type HTMLReport struct {
	mu sync.Mutex

	summary  model.DashboardSummary
	rows     []model.HighRiskRow
	doughnut *DoughnutConfig
	bar      *BarConfig
	revealed bool
}

func NewHTMLReport() *HTMLReport {
	return &HTMLReport{}
}

func (h *HTMLReport) SetSummary(summary model.DashboardSummary) {
	h.mu.Lock()
	h.summary = summary
	h.mu.Unlock()
}

func (h *HTMLReport) SetHighRiskRows(rows []model.HighRiskRow) {
	h.mu.Lock()
	h.rows = rows
	h.mu.Unlock()
}

func (h *HTMLReport) Reveal() {
	h.mu.Lock()
	h.revealed = true
	h.mu.Unlock()
}

// Revealed 仪表盘是否已完整渲染过一次
func (h *HTMLReport) Revealed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.revealed
}

type htmlChartHandle struct {
	dispose func()
}

func (c *htmlChartHandle) Dispose() {
	c.dispose()
}

func (h *HTMLReport) RenderDoughnut(cfg DoughnutConfig) (ChartHandle, error) {
	h.mu.Lock()
	h.doughnut = &cfg
	h.mu.Unlock()

	return &htmlChartHandle{dispose: func() {
		h.mu.Lock()
		h.doughnut = nil
		h.mu.Unlock()
	}}, nil
}

func (h *HTMLReport) RenderBar(cfg BarConfig) (ChartHandle, error) {
	h.mu.Lock()
	h.bar = &cfg
	h.mu.Unlock()

	return &htmlChartHandle{dispose: func() {
		h.mu.Lock()
		h.bar = nil
		h.mu.Unlock()
	}}, nil
}

type reportData struct {
	Summary      model.DashboardSummary
	Rows         []model.HighRiskRow
	DoughnutJSON template.JS
	BarJSON      template.JS
}

// WriteHTML 输出自包含的HTML仪表盘。未渲染完成时输出空占位页。
func (h *HTMLReport) WriteHTML(w io.Writer) error {
	h.mu.Lock()
	data := reportData{
		Summary: h.summary,
		Rows:    h.rows,
	}
	if h.doughnut != nil {
		raw, err := json.Marshal(h.doughnut)
		if err != nil {
			h.mu.Unlock()
			return err
		}
		data.DoughnutJSON = template.JS(raw)
	}
	if h.bar != nil {
		raw, err := json.Marshal(h.bar)
		if err != nil {
			h.mu.Unlock()
			return err
		}
		data.BarJSON = template.JS(raw)
	}
	h.mu.Unlock()

	return reportTemplate.Execute(w, data)
}

var reportTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Learning Insight Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; background: #f5f6fa; color: #2c3e50; }
h1 { font-size: 1.4rem; }
.cards { display: flex; gap: 1rem; margin-bottom: 2rem; }
.card { background: #fff; border-radius: 8px; padding: 1rem 2rem; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.card .value { font-size: 1.8rem; font-weight: 700; }
.card .label { color: #7f8c8d; font-size: .85rem; }
.charts { display: flex; gap: 2rem; margin-bottom: 2rem; }
.chart-box { background: #fff; border-radius: 8px; padding: 1rem; flex: 1; max-width: 480px; }
table { border-collapse: collapse; background: #fff; width: 100%; }
th, td { padding: .5rem 1rem; border-bottom: 1px solid #ecf0f1; text-align: left; }
.danger { color: #e74c3c; font-weight: 700; }
</style>
</head>
<body>
<h1>Learning Insight Dashboard</h1>
<div class="cards">
  <div class="card"><div class="value">{{.Summary.TotalStudents}}</div><div class="label">Total Students</div></div>
  <div class="card"><div class="value">{{.Summary.HighRiskCount}}</div><div class="label">High Risk</div></div>
  <div class="card"><div class="value">{{.Summary.AvgProbability}}</div><div class="label">Avg Completion Probability</div></div>
</div>
<div class="charts">
  <div class="chart-box"><canvas id="riskChart"></canvas></div>
  <div class="chart-box"><canvas id="difficultyChart"></canvas></div>
</div>
<h2>High Risk Students</h2>
<table>
  <thead><tr><th>Student ID</th><th>Completion Probability</th><th>Risk</th><th>Prediction</th></tr></thead>
  <tbody>
  {{range .Rows}}<tr><td>{{.StudentID}}</td><td>{{.Probability}}</td><td class="danger">{{.RiskLabel}}</td><td>{{.Outcome}}</td></tr>
  {{end}}</tbody>
</table>
<script>
{{if .DoughnutJSON}}
(function() {
  const cfg = {{.DoughnutJSON}};
  new Chart(document.getElementById('riskChart'), {
    type: 'doughnut',
    data: {
      labels: cfg.Labels,
      datasets: [{ data: cfg.Values, backgroundColor: cfg.Colors, borderWidth: cfg.BorderWidth }]
    },
    options: { plugins: { legend: { position: cfg.LegendPosition } } }
  });
})();
{{end}}
{{if .BarJSON}}
(function() {
  const cfg = {{.BarJSON}};
  new Chart(document.getElementById('difficultyChart'), {
    type: 'bar',
    data: {
      labels: cfg.Labels,
      datasets: [{ label: cfg.Title, data: cfg.Values, backgroundColor: cfg.Color }]
    },
    options: { plugins: { legend: { display: cfg.ShowLegend } } }
  });
})();
{{end}}
</script>
</body>
</html>
`))
