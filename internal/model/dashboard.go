package model

// DashboardSummary 仪表盘顶部汇总
// AvgProbability 已格式化为百分比字符串；空数据集显示 "N/A" 而不是 NaN
type DashboardSummary struct {
	TotalStudents  int    `json:"total_students"`
	HighRiskCount  int    `json:"high_risk_count"`
	AvgProbability string `json:"avg_probability"`
}

// RiskDistribution 风险等级分布，三段之和恒等于学生总数
type RiskDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// RankedChapter 难度排行中的一项
type RankedChapter struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HighRiskRow 高风险学生表格的一行
type HighRiskRow struct {
	StudentID   int64  `json:"student_id"`
	Probability string `json:"probability"`
	RiskLabel   string `json:"risk_label"`
	Outcome     string `json:"outcome"`
}
