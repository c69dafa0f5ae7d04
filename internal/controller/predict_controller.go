package controller

import (
	"errors"
	"fmt"
	"net/http"

	"learning_insight_backend/internal/model"
	"learning_insight_backend/internal/service"
	"learning_insight_backend/internal/util"
	"learning_insight_backend/pkg/logger"
	"learning_insight_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PredictController struct {
	PredictionService *service.PredictionService
}

func NewPredictController(predictionService *service.PredictionService) *PredictController {
	return &PredictController{PredictionService: predictionService}
}

// Predict godoc
// @Summary 批量预测学生完成率
// @Description 上传学习记录CSV（列：student_id, course_id, chapter_id, time_spent, score），返回每个学生的完成概率与风险等级
// @Tags prediction
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "学习记录CSV文件"
// @Success 200 {object} model.PredictResponse "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 500 {object} util.Response "Model not loaded"
// @Router /predict [post]
func (c *PredictController) Predict(ctx *gin.Context) {
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

	analysisID := uuid.NewString()
	ctx.Header("X-Analysis-ID", analysisID)

	predictions, err := c.PredictionService.PredictFromCSV(file)
	if err != nil {
		if errors.Is(err, util.ErrModelNotLoaded) {
			util.Error(ctx, http.StatusInternalServerError, "Model not loaded.")
			return
		}
		util.BadRequest(ctx, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	monitoring.PredictionStudents.Observe(float64(len(predictions)))
	logger.Log.Info("Prediction batch completed",
		zap.String("analysis_id", analysisID),
		zap.String("file", fileHeader.Filename),
		zap.Int("students", len(predictions)),
	)

	ctx.JSON(http.StatusOK, model.PredictResponse{Predictions: predictions})
}
