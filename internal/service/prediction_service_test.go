package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learning_insight_backend/internal/model"
	"learning_insight_backend/internal/util"
	"learning_insight_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// 测试模型：z = (score_mean - 60) / 10，其余特征权重为0
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

const testActivityCSV = `student_id,course_id,chapter_id,time_spent,score
3,C101,1,10,55
1,C101,1,10,70
1,C101,2,12,80
2,C102,1,30,40
2,C102,2,35,30
`

func writeTestModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "completion_model.json")
	require.NoError(t, os.WriteFile(path, []byte(testModelJSON), 0644))
	return path
}

func TestPredictFromCSV(t *testing.T) {
	s := NewPredictionService(writeTestModel(t))
	require.True(t, s.Ready())

	predictions, err := s.PredictFromCSV(strings.NewReader(testActivityCSV))
	require.NoError(t, err)
	require.Len(t, predictions, 3)

	// 输出按学生ID升序
	assert.Equal(t, int64(1), predictions[0].StudentID)
	assert.Equal(t, int64(2), predictions[1].StudentID)
	assert.Equal(t, int64(3), predictions[2].StudentID)

	// student 1: score_mean=75 → sigmoid(1.5)≈0.8176 → 0.82, Low
	assert.InDelta(t, 0.82, predictions[0].CompletionProbability, 1e-9)
	assert.Equal(t, model.RiskLow, predictions[0].RiskLevel)
	assert.True(t, predictions[0].PredictedCompletion)

	// student 2: score_mean=35 → sigmoid(-2.5)≈0.0759 → 0.08, High
	assert.InDelta(t, 0.08, predictions[1].CompletionProbability, 1e-9)
	assert.Equal(t, model.RiskHigh, predictions[1].RiskLevel)
	assert.False(t, predictions[1].PredictedCompletion)

	// student 3: score_mean=55 → sigmoid(-0.5)≈0.3775 → 0.38, Medium
	assert.InDelta(t, 0.38, predictions[2].CompletionProbability, 1e-9)
	assert.Equal(t, model.RiskMedium, predictions[2].RiskLevel)
	assert.False(t, predictions[2].PredictedCompletion)
}

func TestPredictModelNotLoaded(t *testing.T) {
	s := NewPredictionService(filepath.Join(t.TempDir(), "missing.json"))
	require.False(t, s.Ready())

	_, err := s.PredictFromCSV(strings.NewReader(testActivityCSV))
	assert.ErrorIs(t, err, util.ErrModelNotLoaded)
}

func TestPredictEmptyUpload(t *testing.T) {
	s := NewPredictionService(writeTestModel(t))

	_, err := s.PredictFromCSV(strings.NewReader("student_id,course_id,chapter_id,time_spent,score\n"))
	assert.ErrorIs(t, err, util.ErrEmptyUpload)
}

func TestPredictReloadPicksUpNewArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "completion_model.json")

	s := NewPredictionService(path)
	require.False(t, s.Ready())

	require.NoError(t, os.WriteFile(path, []byte(testModelJSON), 0644))
	require.NoError(t, s.Reload())
	assert.True(t, s.Ready())
	assert.Equal(t, "test", s.ModelInfo().Version)
}

func TestParseActivityCSVMissingColumn(t *testing.T) {
	_, err := ParseActivityCSV(strings.NewReader("student_id,course_id,chapter_id,score\n1,C101,1,70\n"))
	require.ErrorIs(t, err, util.ErrMissingColumn)
	assert.Contains(t, err.Error(), "time_spent")
}

func TestParseActivityCSVInvalidValue(t *testing.T) {
	_, err := ParseActivityCSV(strings.NewReader("student_id,course_id,chapter_id,time_spent,score\n1,C101,one,30,70\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid chapter_id")
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseActivityCSVIgnoresExtraColumns(t *testing.T) {
	records, err := ParseActivityCSV(strings.NewReader("student_id,course_id,chapter_id,time_spent,score,completed\n1,C101,1,30,70,1\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].StudentID)
	assert.InDelta(t, 70, records[0].Score, 1e-9)
}

func TestAggregateFeatures(t *testing.T) {
	records := []model.ActivityRecord{
		{StudentID: 1, CourseID: "C101", ChapterID: 1, TimeSpent: 10, Score: 70},
		{StudentID: 1, CourseID: "C101", ChapterID: 2, TimeSpent: 12, Score: 80},
	}

	features := AggregateFeatures(records)
	require.Len(t, features, 1)
	f := features[0]

	assert.InDelta(t, 75, f.ScoreMean, 1e-9)
	assert.InDelta(t, 70, f.ScoreMin, 1e-9)
	assert.InDelta(t, 80, f.ScoreMax, 1e-9)
	assert.InDelta(t, 7.0710678, f.ScoreStd, 1e-6)
	assert.InDelta(t, 22, f.TimeSum, 1e-9)
	assert.InDelta(t, 11, f.TimeMean, 1e-9)
	assert.InDelta(t, 1.4142135, f.TimeStd, 1e-6)
	assert.Equal(t, 2, f.MaxChapter)
}

func TestAggregateFeaturesSingleRecordStdZero(t *testing.T) {
	features := AggregateFeatures([]model.ActivityRecord{
		{StudentID: 5, CourseID: "C103", ChapterID: 4, TimeSpent: 20, Score: 65},
	})

	require.Len(t, features, 1)
	assert.Zero(t, features[0].ScoreStd)
	assert.Zero(t, features[0].TimeStd)
	assert.Equal(t, 4, features[0].MaxChapter)
}

func TestRiskLevelThresholds(t *testing.T) {
	assert.Equal(t, model.RiskHigh, riskLevelFor(0.0))
	assert.Equal(t, model.RiskHigh, riskLevelFor(0.29))
	assert.Equal(t, model.RiskMedium, riskLevelFor(0.3))
	assert.Equal(t, model.RiskMedium, riskLevelFor(0.69))
	assert.Equal(t, model.RiskLow, riskLevelFor(0.7))
	assert.Equal(t, model.RiskLow, riskLevelFor(1.0))
}

func TestLoadCompletionModelDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	bad := `{"model_type":"logistic_regression","features":["a","b"],"coefficients":[1],"scaler":{"mean":[0,0],"std":[1,1]}}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	_, err := LoadCompletionModel(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}
