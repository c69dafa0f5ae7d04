package model

// DifficultyRecord 课程章节难度统计，来自离线计算的产物文件
type DifficultyRecord struct {
	CourseID        string  `json:"course_id"`
	ChapterID       int     `json:"chapter_id"`
	Score           float64 `json:"score"`
	TimeSpent       float64 `json:"time_spent"`
	DifficultyScore float64 `json:"difficulty_score"`
}

// DifficultyResponse /difficulty 响应体
type DifficultyResponse struct {
	DifficultyAnalysis []DifficultyRecord `json:"difficulty_analysis"`
}
