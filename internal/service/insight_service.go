package service

import (
	"learning_insight_backend/internal/model"
)

type InsightService struct {
	PredictionService *PredictionService
}

func NewInsightService(predictionService *PredictionService) *InsightService {
	return &InsightService{PredictionService: predictionService}
}

// GeneralInsights 返回服务与当前模型的概览信息
func (s *InsightService) GeneralInsights() model.ModelInsights {
	insights := model.ModelInsights{
		Message:   "AI Learning Intelligence Tool is active.",
		ModelType: "not loaded",
		Version:   "unknown",
	}

	if info := s.PredictionService.ModelInfo(); info != nil {
		insights.ModelType = info.ModelType
		insights.FeaturesUsed = info.Features
		insights.Version = info.Version
	}

	return insights
}
