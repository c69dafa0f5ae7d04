package controller

import (
	"net/http"

	"learning_insight_backend/internal/model"
	"learning_insight_backend/internal/service"
	"learning_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DifficultyController struct {
	DifficultyService *service.DifficultyService
}

func NewDifficultyController(difficultyService *service.DifficultyService) *DifficultyController {
	return &DifficultyController{DifficultyService: difficultyService}
}

// GetDifficultyInsights godoc
// @Summary 获取章节难度统计
// @Description 返回各课程章节的平均分、平均用时与难度分
// @Tags difficulty
// @Produce  json
// @Success 200 {object} model.DifficultyResponse "Success"
// @Failure 500 {object} util.Response "Stats not loaded"
// @Router /difficulty [get]
func (c *DifficultyController) GetDifficultyInsights(ctx *gin.Context) {
	records, err := c.DifficultyService.Insights()
	if err != nil {
		util.Error(ctx, http.StatusInternalServerError, "Difficulty stats not loaded.")
		return
	}

	ctx.JSON(http.StatusOK, model.DifficultyResponse{DifficultyAnalysis: records})
}
