package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"learning_insight_backend/internal/model"
	"learning_insight_backend/internal/service"
	"learning_insight_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

const testModelJSON = `{
  "model_type": "logistic_regression",
  "version": "test",
  "features": ["score_mean","score_min","score_max","score_std","time_spent_sum","time_spent_mean","time_spent_std","chapter_id_max"],
  "intercept": 0,
  "coefficients": [1, 0, 0, 0, 0, 0, 0, 0],
  "scaler": {
    "mean": [60, 0, 0, 0, 0, 0, 0, 0],
    "std": [10, 1, 1, 1, 1, 1, 1, 1]
  }
}`

func newPredictRouter(t *testing.T, modelPath string) *gin.Engine {
	t.Helper()
	ctrl := NewPredictController(service.NewPredictionService(modelPath))
	r := gin.New()
	r.POST("/predict", ctrl.Predict)
	return r
}

func loadedModelPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "completion_model.json")
	require.NoError(t, os.WriteFile(path, []byte(testModelJSON), 0644))
	return path
}

func uploadCSV(t *testing.T, r http.Handler, csvBody string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "activity.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictEndpoint(t *testing.T) {
	r := newPredictRouter(t, loadedModelPath(t))

	w := uploadCSV(t, r, "student_id,course_id,chapter_id,time_spent,score\n1,C101,1,10,70\n1,C101,2,12,80\n2,C102,1,30,40\n")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Analysis-ID"))

	var resp model.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Predictions, 2)
	assert.Equal(t, int64(1), resp.Predictions[0].StudentID)
	assert.Equal(t, model.RiskLow, resp.Predictions[0].RiskLevel)
	assert.Equal(t, int64(2), resp.Predictions[1].StudentID)
}

func TestPredictEndpointMissingFile(t *testing.T) {
	r := newPredictRouter(t, loadedModelPath(t))

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File is required")
}

func TestPredictEndpointModelNotLoaded(t *testing.T) {
	r := newPredictRouter(t, filepath.Join(t.TempDir(), "missing.json"))

	w := uploadCSV(t, r, "student_id,course_id,chapter_id,time_spent,score\n1,C101,1,10,70\n")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Model not loaded.")
}

func TestPredictEndpointBadCSV(t *testing.T) {
	r := newPredictRouter(t, loadedModelPath(t))

	w := uploadCSV(t, r, "student_id,score\n1,70\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error processing file")
}
