package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning_insight_backend/internal/config"
	"learning_insight_backend/internal/controller"
	"learning_insight_backend/internal/service"
	"learning_insight_backend/pkg/artifactwatcher"
	"learning_insight_backend/pkg/logger"
	"learning_insight_backend/pkg/monitoring"
	"learning_insight_backend/pkg/security"
	"learning_insight_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
}

type services struct {
	prediction *service.PredictionService
	difficulty *service.DifficultyService
	insight    *service.InsightService
	report     *service.ReportService
}

type controllers struct {
	predict    *controller.PredictController
	difficulty *controller.DifficultyController
	insight    *controller.InsightController
	report     *controller.ReportController
	health     *controller.HealthController
}

func (a *App) initServices(cfg *config.Config) *services {
	s := &services{}

	s.prediction = service.NewPredictionService(cfg.Artifacts.ModelPath())
	s.difficulty = service.NewDifficultyService(cfg.Artifacts.DifficultyPath())
	s.insight = service.NewInsightService(s.prediction)
	s.report = service.NewReportService()

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		predict:    controller.NewPredictController(s.prediction),
		difficulty: controller.NewDifficultyController(s.difficulty),
		insight:    controller.NewInsightController(s.insight),
		report:     controller.NewReportController(s.prediction, s.difficulty, s.report),
		health:     controller.NewHealthController(s.prediction, s.difficulty),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startArtifactWatcher 监听产物目录，训练侧覆盖文件后热加载
func (a *App) startArtifactWatcher(s *services, cfg *config.Config) {
	if !cfg.Artifacts.Watch {
		return
	}

	go func() {
		err := artifactwatcher.Watch(cfg.Artifacts.Dir, func(filename string) {
			switch filename {
			case cfg.Artifacts.ModelFile:
				result := "ok"
				if err := s.prediction.Reload(); err != nil {
					result = "error"
					logger.Log.Error("Model reload failed", zap.Error(err))
				}
				monitoring.ArtifactReloads.WithLabelValues("completion_model", result).Inc()
			case cfg.Artifacts.DifficultyFile:
				result := "ok"
				if err := s.difficulty.Reload(); err != nil {
					result = "error"
					logger.Log.Error("Difficulty stats reload failed", zap.Error(err))
				}
				monitoring.ArtifactReloads.WithLabelValues("difficulty_stats", result).Inc()
			}
		})
		if err != nil {
			logger.Log.Error("Artifact watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{Config: cfg}

	services := app.initServices(cfg)
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learning-insight", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	// 静态前端目录存在时对外提供
	if cfg.Frontend.StaticDir != "" {
		if _, err := os.Stat(cfg.Frontend.StaticDir); err == nil {
			router.Static("/dashboard", cfg.Frontend.StaticDir)
		}
	}

	app.startArtifactWatcher(services, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
