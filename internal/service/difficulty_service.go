package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"learning_insight_backend/internal/model"
	"learning_insight_backend/internal/util"
	"learning_insight_backend/pkg/logger"

	"go.uber.org/zap"
)

type DifficultyService struct {
	mu      sync.RWMutex
	records []model.DifficultyRecord
	path    string
}

// NewDifficultyService 启动时尝试加载难度统计产物，失败不阻止启动
func NewDifficultyService(path string) *DifficultyService {
	s := &DifficultyService{path: path}
	if err := s.Reload(); err != nil {
		logger.Log.Error("Failed to load difficulty stats", zap.String("path", path), zap.Error(err))
	}
	return s
}

func (s *DifficultyService) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := ParseDifficultyCSV(f)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	logger.Log.Info("Difficulty stats loaded",
		zap.String("path", s.path),
		zap.Int("chapters", len(records)),
	)
	return nil
}

func (s *DifficultyService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records != nil
}

// Insights 返回全部章节难度统计，保持产物文件中的顺序
func (s *DifficultyService) Insights() ([]model.DifficultyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.records == nil {
		return nil, util.ErrDifficultyNotLoaded
	}

	out := make([]model.DifficultyRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// ParseDifficultyCSV 读取难度统计CSV。
// 必需列：course_id, chapter_id, score, time_spent, difficulty_score。
func ParseDifficultyCSV(r io.Reader) ([]model.DifficultyRecord, error) {
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
	for _, required := range []string{"course_id", "chapter_id", "score", "time_spent", "difficulty_score"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", util.ErrMissingColumn, required)
		}
	}

	records := make([]model.DifficultyRecord, 0)
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

		chapterID, err := strconv.Atoi(row[cols["chapter_id"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid chapter_id %q", line, row[cols["chapter_id"]])
		}
		score, err := strconv.ParseFloat(row[cols["score"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score %q", line, row[cols["score"]])
		}
		timeSpent, err := strconv.ParseFloat(row[cols["time_spent"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time_spent %q", line, row[cols["time_spent"]])
		}
		difficulty, err := strconv.ParseFloat(row[cols["difficulty_score"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid difficulty_score %q", line, row[cols["difficulty_score"]])
		}

		records = append(records, model.DifficultyRecord{
			CourseID:        row[cols["course_id"]],
			ChapterID:       chapterID,
			Score:           score,
			TimeSpent:       timeSpent,
			DifficultyScore: difficulty,
		})
	}

	return records, nil
}
