package service

import (
	"fmt"

	"learning_insight_backend/internal/dashboard"
	"learning_insight_backend/internal/model"

	"github.com/xuri/excelize/v2"
)

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildWorkbook 把一次分析的仪表盘内容导出为xlsx。
// 数据整形规则复用仪表盘管线，保证导出与页面一致。
func (s *ReportService) BuildWorkbook(predictions []model.PredictionRecord, difficulty []model.DifficultyRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := dashboard.Summarize(predictions)
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}
	summaryRows := [][]interface{}{
		{"Total Students", summary.TotalStudents},
		{"High Risk Count", summary.HighRiskCount},
		{"Avg Completion Probability", summary.AvgProbability},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return nil, err
		}
	}

	dist := dashboard.DistributeRisk(predictions)
	if _, err := f.NewSheet("Risk Distribution"); err != nil {
		return nil, err
	}
	distRows := [][]interface{}{
		{"Risk Level", "Students"},
		{"High", dist.High},
		{"Medium", dist.Medium},
		{"Low", dist.Low},
	}
	for i, row := range distRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Risk Distribution", cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Difficulty Top 10"); err != nil {
		return nil, err
	}
	header := []interface{}{"Chapter", "Difficulty Score"}
	if err := f.SetSheetRow("Difficulty Top 10", "A1", &header); err != nil {
		return nil, err
	}
	for i, rc := range dashboard.RankDifficulty(difficulty) {
		row := []interface{}{rc.Label, rc.Score}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Difficulty Top 10", cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("High Risk Students"); err != nil {
		return nil, err
	}
	header = []interface{}{"Student ID", "Completion Probability", "Risk", "Prediction"}
	if err := f.SetSheetRow("High Risk Students", "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range dashboard.HighRiskRows(predictions) {
		values := []interface{}{row.StudentID, row.Probability, row.RiskLabel, row.Outcome}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("High Risk Students", cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
