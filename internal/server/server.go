package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadboard/internal/config"
	"leadboard/internal/handler"
	"leadboard/internal/logging"
	"leadboard/internal/middleware"
	"leadboard/internal/migrations"
	"leadboard/internal/model"
	"leadboard/internal/notifier"
	"leadboard/internal/pipeline"
	"leadboard/internal/repository"
	"leadboard/internal/source"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Config   *config.Config
	Logger   *log.Logger
	Pipeline *pipeline.Pipeline
	Notifier *notifier.Notifier
}

func Init(cfg *config.Config) (*Server, error) {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.MigrateURL(), logger); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
	}

	// Setup GORM
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	rdb, err := NewRedis(cfg)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		logger.Info("✅ Redis client configured")
	}
	deps := Deps{DB: db, Redis: rdb}

	src, err := NewSource(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("❌ lead source: %w", err)
	}
	writer, err := NewWriter(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("❌ stage sinks: %w", err)
	}

	notif := notifier.New(writer, notifier.Config{
		Workers:        cfg.NotifyWorkers,
		Buffer:         cfg.NotifyBuffer,
		Timeout:        cfg.NotifyTimeout,
		HandoffTimeout: cfg.NotifyHandoffTimeout,
		UserID:         cfg.ActingUserID,
	}, logger, notifier.WithFailureHook(func(u model.StageUpdate, err error) {
		logger.WithFields(log.Fields{
			"lead_id": u.LeadID,
			"stage":   u.Stage.String(),
		}).Warn("board and remote store disagree until next reload")
	}))

	pipe := pipeline.New(pipeline.NewStore(), notif, logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	pipe.Load(source.Load(ctx, src, logger))
	cancel()

	// Initialize repositories
	leadRepo := repository.NewLeadRepository(db)
	transitionRepo := repository.NewTransitionRepository(db)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(pipe, src, notif, logger)
	leadHandler := handler.NewLeadHandler(leadRepo, transitionRepo)

	r := NewRouter(logger, boardHandler, leadHandler)

	return &Server{
		Engine:   r,
		DB:       db,
		Redis:    rdb,
		Config:   cfg,
		Logger:   logger,
		Pipeline: pipe,
		Notifier: notif,
	}, nil
}

// NewRouter mounts the board and remote-store routes plus swagger.
func NewRouter(logger *log.Logger, boardHandler *handler.BoardHandler, leadHandler *handler.LeadHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Board routes
	board := r.Group("/board")
	{
		board.GET("", boardHandler.GetBoard)
		board.GET("/columns/:column", boardHandler.GetColumn)
		board.GET("/leads/:id", boardHandler.LocateLead)
		board.POST("/drag", boardHandler.Drag)
		board.POST("/reload", boardHandler.Reload)
		board.GET("/notifier", boardHandler.NotifierStats)
	}

	// Remote store routes
	leads := r.Group("/leads")
	{
		leads.GET("", leadHandler.List)
		leads.POST("/status", leadHandler.UpdateStatus)
		leads.GET("/:id/transitions", leadHandler.Transitions)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	// Queued stage updates get the rest of the shutdown window.
	if err := s.Notifier.Shutdown(ctx); err != nil {
		stats := s.Notifier.Stats()
		s.Logger.WithError(err).WithField("sent", stats.Sent).Warn("stage updates still pending at exit")
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}

	s.Logger.Info("✅ Server exited properly")
}
