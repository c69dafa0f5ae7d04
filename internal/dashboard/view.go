// Package dashboard 实现分析仪表盘的渲染管线：
// 输入捕获 → 分析编排 → 视图渲染。渲染目标（图表、表格、汇总栏）
// 通过接口注入，核心的数据整形规则与具体展示后端无关。
package dashboard

import (
	"fmt"
	"sort"

	"learning_insight_backend/internal/model"
)

const (
	maxRankedChapters = 10
	maxTableRows      = 10
)

// 风险等级固定配色：High红 Medium黄 Low绿
var riskColors = []string{"#e74c3c", "#f1c40f", "#2ecc71"}

const difficultyBarColor = "#3498db"

// Summarize 计算顶部汇总。空数据集的平均概率显示 "N/A"，
// 不让除零产生的 NaN 流入展示层。
func Summarize(predictions []model.PredictionRecord) model.DashboardSummary {
	summary := model.DashboardSummary{
		TotalStudents:  len(predictions),
		AvgProbability: "N/A",
	}

	if len(predictions) == 0 {
		return summary
	}

	var sum float64
	for _, p := range predictions {
		sum += p.CompletionProbability
		if p.RiskLevel == model.RiskHigh {
			summary.HighRiskCount++
		}
	}
	summary.AvgProbability = FormatProbability(sum / float64(len(predictions)))

	return summary
}

// DistributeRisk 统计三个风险段的人数，三段之和等于学生总数
func DistributeRisk(predictions []model.PredictionRecord) model.RiskDistribution {
	var dist model.RiskDistribution
	for _, p := range predictions {
		switch p.RiskLevel {
		case model.RiskHigh:
			dist.High++
		case model.RiskMedium:
			dist.Medium++
		default:
			dist.Low++
		}
	}
	return dist
}

// RankDifficulty 按难度分降序取前10章。排序必须稳定：
// 同分章节保持产物文件中的相对顺序。
func RankDifficulty(records []model.DifficultyRecord) []model.RankedChapter {
	sorted := make([]model.DifficultyRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DifficultyScore > sorted[j].DifficultyScore
	})

	if len(sorted) > maxRankedChapters {
		sorted = sorted[:maxRankedChapters]
	}

	ranked := make([]model.RankedChapter, len(sorted))
	for i, rec := range sorted {
		ranked[i] = model.RankedChapter{
			Label: fmt.Sprintf("%s - Ch%d", rec.CourseID, rec.ChapterID),
			Score: rec.DifficultyScore,
		}
	}
	return ranked
}

// HighRiskRows 过滤高风险学生，保持输入顺序，最多10行
func HighRiskRows(predictions []model.PredictionRecord) []model.HighRiskRow {
	rows := make([]model.HighRiskRow, 0, maxTableRows)
	for _, p := range predictions {
		if p.RiskLevel != model.RiskHigh {
			continue
		}

		outcome := "Dropout"
		if p.PredictedCompletion {
			outcome = "Complete"
		}

		rows = append(rows, model.HighRiskRow{
			StudentID:   p.StudentID,
			Probability: FormatProbability(p.CompletionProbability),
			RiskLabel:   string(model.RiskHigh),
			Outcome:     outcome,
		})
		if len(rows) == maxTableRows {
			break
		}
	}
	return rows
}

// FormatProbability 概率按一位小数的百分比展示
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
