package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ridetiles/internal/analysis"
	"github.com/jengzang/ridetiles/internal/config"
	"github.com/jengzang/ridetiles/internal/handler"
	"github.com/jengzang/ridetiles/internal/metrics"
	"github.com/jengzang/ridetiles/internal/middleware"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/jengzang/ridetiles/internal/service"
	"go.uber.org/zap"
)

// Services bundles the business services behind the HTTP surface
type Services struct {
	Tracks *service.TrackService
	Tiles  *service.TileService
	Tasks  *service.AnalysisTaskService
}

// NewServices wires repositories and services over db
func NewServices(cfg *config.Config, db *sql.DB) *Services {
	opts := cfg.TileOptions()
	return &Services{
		Tracks: service.NewTrackService(repository.NewTrackRepository(db)),
		Tiles:  service.NewTileService(db, opts, cfg.AnalysisWorkers),
		Tasks: service.NewAnalysisTaskService(
			repository.NewAnalysisTaskRepository(db),
			db,
			analysis.Settings{Options: opts, Workers: cfg.AnalysisWorkers},
		),
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc *Services, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Ride tiles API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	trackHandler := handler.NewTrackHandler(svc.Tracks)
	tileHandler := handler.NewTileHandler(svc.Tiles)
	taskHandler := handler.NewAnalysisTaskHandler(svc.Tasks)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)

	// API 路由组
	api := r.Group("/api/v1", middleware.RateLimit(limiter))
	{
		tracks := api.Group("/tracks")
		{
			tracks.POST("", trackHandler.CreateTrack)
			tracks.GET("", trackHandler.GetTracks)
			tracks.GET("/:id", trackHandler.GetTrackByID)
		}

		tilesGroup := api.Group("/tiles")
		{
			tilesGroup.POST("/analyze", tileHandler.Analyze)
			tilesGroup.GET("/riders/:rider/report", tileHandler.RiderReport)
			tilesGroup.POST("/reports", tileHandler.BatchReports)
			tilesGroup.GET("/reports/:id", tileHandler.GetReport)
			tilesGroup.GET("/reports/:id/geojson", tileHandler.GetReportGeoJSON)
			tilesGroup.GET("/cell", tileHandler.Cell)
		}
	}

	// 管理接口
	admin := r.Group("/api/admin", middleware.JWTAuth(cfg.JWTSecret))
	{
		tasks := admin.Group("/analysis/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.DELETE("/:id", taskHandler.CancelTask)
		}
	}

	return r
}
