package model

// RiskLevel 学生流失风险等级
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// PredictionRecord 单个学生的完成率预测结果
type PredictionRecord struct {
	StudentID             int64     `json:"student_id"`
	CompletionProbability float64   `json:"completion_probability"`
	PredictedCompletion   bool      `json:"predicted_completion"`
	RiskLevel             RiskLevel `json:"risk_level"`
}

// PredictResponse /predict 响应体，字段名是对外契约的一部分
type PredictResponse struct {
	Predictions []PredictionRecord `json:"predictions"`
}
