package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nqtien/examinator/config"
	_ "github.com/nqtien/examinator/docs" // Swagger docs - auto-generated
	studentctrl "github.com/nqtien/examinator/internal/controller/student"
	"github.com/nqtien/examinator/internal/examapi"
	"github.com/nqtien/examinator/internal/ledger"
	"github.com/nqtien/examinator/internal/logger"
	"github.com/nqtien/examinator/internal/service"
)

// @title Examinator Test Session API
// @version 1.0
// @description Session gateway for taking Examinator tests: preview by slug, shuffled question delivery, answer recording, navigation and scored results.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			NewMirrorDB, // Provides *gorm.DB for the answer mirror
			NewGinEngine,
		),

		// External API + Persistence Ports
		fx.Provide(
			func(cfg *config.Config) examapi.Client {
				return examapi.NewHTTPClient(cfg.ExamAPI.BaseURL, time.Duration(cfg.ExamAPI.TimeoutSeconds)*time.Second)
			},
			ledger.NewGormMirror,
		),

		// Services Layer
		fx.Provide(
			service.NewTestFlowService,
		),

		// API Controllers Layer
		fx.Provide(
			studentctrl.NewTestSessionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateMirror),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewMirrorDB opens the local sqlite file backing the answer mirror.
func NewMirrorDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Mirror.Path), &gorm.Config{})
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Mirror.Path).Msg("Failed to open mirror database")
		return nil, err
	}
	return db, nil
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *studentctrl.TestSessionController,
) {
	api := router.Group("/api/v1")
	{
		testGroup := api.Group("/t/:slug")
		testGroup.GET("/preview", sessionCtrl.GetPreview)
		testGroup.POST("/sessions", sessionCtrl.BeginTest)

		sessionGroup := api.Group("/sessions/:session_id")
		sessionGroup.GET("/question", sessionCtrl.GetCurrentQuestion)
		sessionGroup.POST("/answer", sessionCtrl.RecordAnswer)
		sessionGroup.POST("/advance", sessionCtrl.Advance)
		sessionGroup.POST("/retreat", sessionCtrl.Retreat)
		sessionGroup.POST("/retry", sessionCtrl.Retry)
		sessionGroup.DELETE("", sessionCtrl.Cancel)
		sessionGroup.GET("/result", sessionCtrl.GetResult)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Examinator session gateway starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// AutoMigrateMirror creates the answer mirror table.
func AutoMigrateMirror(db *gorm.DB) error {
	log.Info().Msg("Running mirror database migration...")
	if err := db.AutoMigrate(&ledger.MirrorAnswer{}); err != nil {
		log.Error().Err(err).Msg("Mirror migration failed")
		return err
	}
	log.Info().Msg("Mirror migration completed successfully.")
	return nil
}
