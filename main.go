// @title Learning Insight API
// @version 1.0
// @description 学习智能分析服务：学生完成率预测与章节难度洞察。

// @host localhost:8000
// @BasePath /
package main

import (
	"flag"
	"log"

	"learning_insight_backend/internal/app"
	"learning_insight_backend/internal/config"
	"learning_insight_backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
