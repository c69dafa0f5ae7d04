package app

import (
	"learning_insight_backend/docs"
	"learning_insight_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 顶层路由与原服务保持一致，是仪表盘客户端的对外契约
	router.POST("/predict", c.predict.Predict)
	router.GET("/difficulty", c.difficulty.GetDifficultyInsights)
	router.GET("/insights", c.insight.GetGeneralInsights)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/predict", c.predict.Predict)
		api.GET("/difficulty", c.difficulty.GetDifficultyInsights)
		api.GET("/insights", c.insight.GetGeneralInsights)
		api.POST("/report/export", c.report.ExportReport)
	}
}
