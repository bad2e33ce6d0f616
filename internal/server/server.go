package server

import (
	"github.com/d-trefilov/hw05-final/internal/auth"
	"github.com/d-trefilov/hw05-final/internal/config"
	"github.com/d-trefilov/hw05-final/internal/feed"
	"github.com/d-trefilov/hw05-final/internal/group"
	"github.com/d-trefilov/hw05-final/internal/post"
	"github.com/d-trefilov/hw05-final/internal/social"
	"github.com/d-trefilov/hw05-final/internal/storage"
	"github.com/d-trefilov/hw05-final/internal/timeline"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Cache *timeline.Cache
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Cache: timeline.NewCache(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	viewerMiddleware := auth.OptionalJWTMiddleware(s.Cfg.JWTSecret)

	socialSvc := social.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	group.RegisterRoutes(s.App.Group("/groups"), group.NewService(s.DB), jwtMiddleware)
	post.RegisterRoutes(s.App.Group("/posts"), post.NewService(s.DB), jwtMiddleware)
	social.RegisterRoutes(s.App.Group("/social"), socialSvc, jwtMiddleware)
	feed.RegisterRoutes(s.App.Group("/feed"), feed.NewService(s.DB, socialSvc, s.Cfg.PageSize),
		s.Cache, s.Cfg.FeedCacheTTL, viewerMiddleware, jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB), jwtMiddleware)
}
