package model

// ActivityRecord 上传CSV中的一行原始学习记录
type ActivityRecord struct {
	StudentID int64
	CourseID  string
	ChapterID int
	TimeSpent float64
	Score     float64
}

// StudentFeatures 按学生聚合后的特征，顺序必须与训练时一致
type StudentFeatures struct {
	StudentID  int64
	ScoreMean  float64
	ScoreMin   float64
	ScoreMax   float64
	ScoreStd   float64
	TimeSum    float64
	TimeMean   float64
	TimeStd    float64
	MaxChapter int
}

// FeatureNames 特征向量的列名，与 Vector 的顺序一一对应
var FeatureNames = []string{
	"score_mean",
	"score_min",
	"score_max",
	"score_std",
	"time_spent_sum",
	"time_spent_mean",
	"time_spent_std",
	"chapter_id_max",
}

func (f StudentFeatures) Vector() []float64 {
	return []float64{
		f.ScoreMean,
		f.ScoreMin,
		f.ScoreMax,
		f.ScoreStd,
		f.TimeSum,
		f.TimeMean,
		f.TimeStd,
		float64(f.MaxChapter),
	}
}
