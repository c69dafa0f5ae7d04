package controller

import (
	"net/http"

	"learning_insight_backend/internal/service"
	"learning_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	PredictionService *service.PredictionService
	DifficultyService *service.DifficultyService
}

func NewHealthController(predictionService *service.PredictionService, difficultyService *service.DifficultyService) *HealthController {
	return &HealthController{
		PredictionService: predictionService,
		DifficultyService: difficultyService,
	}
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 检查服务与模型产物加载状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	modelState := "up"
	if !c.PredictionService.Ready() {
		modelState = "down"
	}
	difficultyState := "up"
	if !c.DifficultyService.Ready() {
		difficultyState = "down"
	}

	components := gin.H{
		"completion_model": modelState,
		"difficulty_stats": difficultyState,
	}

	if modelState == "down" && difficultyState == "down" {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "artifacts unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
