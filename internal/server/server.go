package server

import (
	"time"

	"backend-routenav/internal/config"
	"backend-routenav/internal/directions"
	"backend-routenav/internal/navigation"
	"backend-routenav/internal/planner"
	"backend-routenav/internal/route"
	"backend-routenav/internal/share"
	"backend-routenav/internal/station"
	"backend-routenav/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *navigation.Manager
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Stream:   hub,
		Sessions: navigation.NewManager(hub),
	}

	registerRoutes(s)
	return s
}

// directionsProvider picks the external service when one is configured and
// the deterministic estimator otherwise.
func directionsProvider(cfg config.Config) route.Provider {
	if cfg.DirectionsURL == "" {
		return directions.NewEstimator()
	}
	timeout := time.Duration(cfg.DirectionsTimeoutMs) * time.Millisecond
	return directions.NewHTTPProvider(cfg.DirectionsURL, timeout)
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	stations := station.NewService(s.DB)
	builder := route.NewBuilder(directionsProvider(s.Cfg))
	plan := planner.NewService(stations, builder, s.Cfg.DefaultStayMinutes)

	signer := share.NewTokenSigner(s.Cfg.ShareTokenSecret, time.Duration(s.Cfg.ShareTokenTTLHours)*time.Hour)
	var codes *share.CodeStore
	if s.Redis != nil {
		codes = share.NewCodeStore(s.Redis, time.Duration(s.Cfg.ShareCodeTTLHours)*time.Hour)
	}

	station.RegisterRoutes(s.App.Group("/stations"), stations)
	planner.RegisterRoutes(s.App.Group("/routes"), plan)
	share.RegisterRoutes(s.App.Group("/share"), share.NewService(s.DB), signer, codes)
	navigation.RegisterRoutes(s.App.Group("/navigation"), plan, s.Sessions)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, s.Sessions)
}
