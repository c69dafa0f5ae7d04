package dashboard

import (
	"sync"

	"learning_insight_backend/internal/model"
)

// ChartHandle 一次图表渲染的句柄，替换前必须 Dispose，
// 否则图表库会泄漏画布绑定
type ChartHandle interface {
	Dispose()
}

// DoughnutConfig 风险分布环形图配置
type DoughnutConfig struct {
	Labels         []string
	Values         []int
	Colors         []string
	BorderWidth    int
	LegendPosition string
}

// BarConfig 难度排行柱状图配置
type BarConfig struct {
	Title      string
	Labels     []string
	Values     []float64
	Color      string
	ShowLegend bool
}

// ChartBackend 图表后端能力接口
type ChartBackend interface {
	RenderDoughnut(cfg DoughnutConfig) (ChartHandle, error)
	RenderBar(cfg BarConfig) (ChartHandle, error)
}

// View 仪表盘的非图表输出面：汇总栏、表格、容器显隐
type View interface {
	SetSummary(summary model.DashboardSummary)
	SetHighRiskRows(rows []model.HighRiskRow)
	Reveal()
}

// Renderer 持有每个图表槽位的句柄，槽位状态不暴露给调用方。
// 不变式：任一时刻每个槽位至多一个活跃句柄。
type Renderer struct {
	mu    sync.Mutex
	view  View
	chart ChartBackend

	riskChart       ChartHandle
	difficultyChart ChartHandle
}

func NewRenderer(view View, chart ChartBackend) *Renderer {
	return &Renderer{view: view, chart: chart}
}

// Render 将两份载荷完整映射到视图。表格每次整体重建，
// 两个图表槽位独立地先销毁后新建。最后一步才显示容器，
// 任何失败都不会留下半渲染的仪表盘。
func (r *Renderer) Render(predictions []model.PredictionRecord, difficulty []model.DifficultyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.view.SetSummary(Summarize(predictions))

	dist := DistributeRisk(predictions)
	if r.riskChart != nil {
		r.riskChart.Dispose()
		r.riskChart = nil
	}
	riskChart, err := r.chart.RenderDoughnut(DoughnutConfig{
		Labels:         []string{"High", "Medium", "Low"},
		Values:         []int{dist.High, dist.Medium, dist.Low},
		Colors:         riskColors,
		BorderWidth:    0,
		LegendPosition: "bottom",
	})
	if err != nil {
		return err
	}
	r.riskChart = riskChart

	ranked := RankDifficulty(difficulty)
	labels := make([]string, len(ranked))
	values := make([]float64, len(ranked))
	for i, rc := range ranked {
		labels[i] = rc.Label
		values[i] = rc.Score
	}
	if r.difficultyChart != nil {
		r.difficultyChart.Dispose()
		r.difficultyChart = nil
	}
	difficultyChart, err := r.chart.RenderBar(BarConfig{
		Title:      "Difficulty Score",
		Labels:     labels,
		Values:     values,
		Color:      difficultyBarColor,
		ShowLegend: false,
	})
	if err != nil {
		return err
	}
	r.difficultyChart = difficultyChart

	r.view.SetHighRiskRows(HighRiskRows(predictions))
	r.view.Reveal()

	return nil
}
