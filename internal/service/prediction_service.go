package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"sync"

	"learning_insight_backend/internal/model"
	"learning_insight_backend/internal/util"
	"learning_insight_backend/pkg/logger"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// 风险等级阈值与训练侧保持一致
const (
	highRiskThreshold   = 0.3
	mediumRiskThreshold = 0.7
)

type PredictionService struct {
	mu        sync.RWMutex
	model     Scorer
	modelInfo *CompletionModel
	modelPath string
}

// NewPredictionService 启动时尝试加载模型产物。
// 加载失败不阻止服务启动（与健康检查配合），预测请求会返回模型未加载错误。
func NewPredictionService(modelPath string) *PredictionService {
	s := &PredictionService{modelPath: modelPath}
	if err := s.Reload(); err != nil {
		logger.Log.Error("Failed to load completion model", zap.String("path", modelPath), zap.Error(err))
	}
	return s
}

func (s *PredictionService) Reload() error {
	m, err := LoadCompletionModel(s.modelPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.model = m
	s.modelInfo = m
	s.mu.Unlock()

	logger.Log.Info("Completion model loaded",
		zap.String("path", s.modelPath),
		zap.String("model_type", m.ModelType),
		zap.String("version", m.Version),
	)
	return nil
}

func (s *PredictionService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model != nil
}

// ModelInfo 返回当前加载的模型描述，未加载时返回 nil
func (s *PredictionService) ModelInfo() *CompletionModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelInfo
}

// PredictFromCSV 解析上传的学习记录，按学生聚合特征并逐个打分。
// 输出按学生ID升序，概率保留两位小数。
func (s *PredictionService) PredictFromCSV(r io.Reader) ([]model.PredictionRecord, error) {
	s.mu.RLock()
	scorer := s.model
	s.mu.RUnlock()

	if scorer == nil {
		return nil, util.ErrModelNotLoaded
	}

	records, err := ParseActivityCSV(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, util.ErrEmptyUpload
	}

	features := AggregateFeatures(records)

	predictions := make([]model.PredictionRecord, 0, len(features))
	for _, f := range features {
		prob, completed := scorer.Score(f.Vector())
		predictions = append(predictions, model.PredictionRecord{
			StudentID:             f.StudentID,
			CompletionProbability: math.Round(prob*100) / 100,
			PredictedCompletion:   completed,
			RiskLevel:             riskLevelFor(prob),
		})
	}

	return predictions, nil
}

func riskLevelFor(prob float64) model.RiskLevel {
	switch {
	case prob < highRiskThreshold:
		return model.RiskHigh
	case prob < mediumRiskThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// ParseActivityCSV 读取带表头的学习记录CSV。
// 必需列：student_id, course_id, chapter_id, time_spent, score；多余列忽略。
func ParseActivityCSV(r io.Reader) ([]model.ActivityRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", util.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"student_id", "course_id", "chapter_id", "time_spent", "score"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", util.ErrMissingColumn, required)
		}
	}

	var records []model.ActivityRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		studentID, err := strconv.ParseInt(row[cols["student_id"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid student_id %q", line, row[cols["student_id"]])
		}
		chapterID, err := strconv.Atoi(row[cols["chapter_id"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid chapter_id %q", line, row[cols["chapter_id"]])
		}
		timeSpent, err := strconv.ParseFloat(row[cols["time_spent"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time_spent %q", line, row[cols["time_spent"]])
		}
		score, err := strconv.ParseFloat(row[cols["score"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score %q", line, row[cols["score"]])
		}

		records = append(records, model.ActivityRecord{
			StudentID: studentID,
			CourseID:  row[cols["course_id"]],
			ChapterID: chapterID,
			TimeSpent: timeSpent,
			Score:     score,
		})
	}

	return records, nil
}

// AggregateFeatures 按学生聚合统计特征，结果按学生ID升序。
// 标准差为样本标准差，只有一条记录的学生记为 0。
func AggregateFeatures(records []model.ActivityRecord) []model.StudentFeatures {
	scores := make(map[int64][]float64)
	times := make(map[int64][]float64)
	maxChapter := make(map[int64]int)

	for _, rec := range records {
		scores[rec.StudentID] = append(scores[rec.StudentID], rec.Score)
		times[rec.StudentID] = append(times[rec.StudentID], rec.TimeSpent)
		if rec.ChapterID > maxChapter[rec.StudentID] {
			maxChapter[rec.StudentID] = rec.ChapterID
		}
	}

	ids := make([]int64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	features := make([]model.StudentFeatures, 0, len(ids))
	for _, id := range ids {
		s := scores[id]
		t := times[id]

		scoreMean, _ := stats.Mean(s)
		scoreMin, _ := stats.Min(s)
		scoreMax, _ := stats.Max(s)
		timeSum, _ := stats.Sum(t)
		timeMean, _ := stats.Mean(t)

		features = append(features, model.StudentFeatures{
			StudentID:  id,
			ScoreMean:  scoreMean,
			ScoreMin:   scoreMin,
			ScoreMax:   scoreMax,
			ScoreStd:   sampleStd(s),
			TimeSum:    timeSum,
			TimeMean:   timeMean,
			TimeStd:    sampleStd(t),
			MaxChapter: maxChapter[id],
		})
	}

	return features
}

func sampleStd(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	std, err := stats.StandardDeviationSample(data)
	if err != nil {
		return 0
	}
	return std
}
