package controller

import (
	"net/http"

	"learning_insight_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	InsightService *service.InsightService
}

func NewInsightController(insightService *service.InsightService) *InsightController {
	return &InsightController{InsightService: insightService}
}

// GetGeneralInsights godoc
// @Summary 获取模型概览信息
// @Description 返回当前加载的预测模型类型、特征与版本
// @Tags insight
// @Produce  json
// @Success 200 {object} model.ModelInsights "Success"
// @Router /insights [get]
func (c *InsightController) GetGeneralInsights(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.InsightService.GeneralInsights())
}
