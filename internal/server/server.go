package server

import (
	"github.com/gassdlindo/rastreioveicular/internal/alert"
	"github.com/gassdlindo/rastreioveicular/internal/auth"
	"github.com/gassdlindo/rastreioveicular/internal/config"
	"github.com/gassdlindo/rastreioveicular/internal/geofence"
	"github.com/gassdlindo/rastreioveicular/internal/jobs"
	"github.com/gassdlindo/rastreioveicular/internal/simulator"
	"github.com/gassdlindo/rastreioveicular/internal/stream"
	"github.com/gassdlindo/rastreioveicular/internal/tracking"
	"github.com/gassdlindo/rastreioveicular/internal/vehicle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
	Jobs   *jobs.Scheduler
	Logger *zap.Logger
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient, log),
		Logger: log,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)
	fenceSvc := geofence.NewService(s.DB)
	alertSvc := alert.NewService(s.DB)
	pingSvc := tracking.NewService(s.DB, s.Stream, fenceSvc, alertSvc, s.Logger)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)
	vehicle.RegisterRoutes(s.App.Group("/vehicles"), vehicle.NewService(s.DB), jwtMiddleware)
	tracking.RegisterRoutes(s.App.Group("/tracking"), pingSvc, jwtMiddleware)
	geofence.RegisterRoutes(s.App.Group("/geofences"), fenceSvc, jwtMiddleware)
	alert.RegisterRoutes(s.App.Group("/alerts"), alertSvc, jwtMiddleware)
	simulator.RegisterRoutes(s.App.Group("/simulator"), pingSvc, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)

	s.Jobs = jobs.NewScheduler(authSvc, pingSvc, s.Cfg.PingRetentionDays, s.Logger)
}
