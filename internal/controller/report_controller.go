package controller

import (
	"errors"
	"fmt"
	"net/http"

	"learning_insight_backend/internal/service"
	"learning_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	PredictionService *service.PredictionService
	DifficultyService *service.DifficultyService
	ReportService     *service.ReportService
}

func NewReportController(
	predictionService *service.PredictionService,
	difficultyService *service.DifficultyService,
	reportService *service.ReportService,
) *ReportController {
	return &ReportController{
		PredictionService: predictionService,
		DifficultyService: difficultyService,
		ReportService:     reportService,
	}
}

// ExportReport godoc
// @Summary 导出分析报告
// @Description 上传学习记录CSV，返回包含汇总、风险分布、难度排行与高风险名单的xlsx报告
// @Tags report
// @Accept  multipart/form-data
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   file formData file true "学习记录CSV文件"
// @Success 200 {file} binary "xlsx报告"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 500 {object} util.Response "Internal Server Error"
// @Router /api/report/export [post]
func (c *ReportController) ExportReport(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	predictions, err := c.PredictionService.PredictFromCSV(file)
	if err != nil {
		if errors.Is(err, util.ErrModelNotLoaded) {
			util.Error(ctx, http.StatusInternalServerError, "Model not loaded.")
			return
		}
		util.BadRequest(ctx, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	difficulty, err := c.DifficultyService.Insights()
	if err != nil {
		util.Error(ctx, http.StatusInternalServerError, "Difficulty stats not loaded.")
		return
	}

	workbook, err := c.ReportService.BuildWorkbook(predictions, difficulty)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="learning_insight_report.xlsx"`)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}
