// Package devserver is a self-contained stand-in for the platform backend.
// It implements the wire contract the client consumes (data envelopes,
// bearer auth, multipart content creation) against in-memory state, so the
// client and its tests can run without the real service.
package devserver

import (
	"log/slog"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"launchpad/internal/config"
	"launchpad/internal/observability"
)

// Server wires the fiber app, the in-memory store, and the JWT secret.
type Server struct {
	cfg    *config.Config
	store  *Store
	logger *observability.Logger
	prom   *fiberprometheus.FiberPrometheus
	app    *fiber.App
}

// New builds the devserver with its middleware and routes.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		store:  NewStore(),
		logger: observability.GlobalLogger,
		prom:   fiberprometheus.New("launchpad-devserver"),
	}

	app := fiber.New(fiber.Config{
		AppName: "Launchpad Dev API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			s.logger.Error("unhandled error", slog.String("error", err.Error()))
			return respondError(c, fiber.StatusInternalServerError, "Internal server error")
		},
	})

	s.setupMiddleware(app)
	s.setupRoutes(app)
	s.app = app
	return s
}

func (s *Server) setupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.structuredLogger())

	s.prom.RegisterAt(app, "/metrics")
	app.Use(s.prom.Middleware)

	// Browser clients run off localhost dev servers.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func (s *Server) setupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Get("/me", s.AuthRequired, s.Me)
	auth.Put("/profile", s.AuthRequired, s.UpdateProfile)

	api.Post("/v1/content", s.AuthRequired, s.CreateContent)
}

// structuredLogger logs each request after it is handled.
func (s *Server) structuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			fields = append(fields, slog.String("request_id", rid))
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			s.logger.Error("request failed", fields...)
		} else {
			s.logger.Info("request processed", fields...)
		}
		return err
	}
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Store exposes the in-memory state for seeding.
func (s *Server) Store() *Store {
	return s.store
}

// Listen serves on the configured devserver port.
func (s *Server) Listen() error {
	return s.app.Listen(":" + s.cfg.DevServerPort)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// respondData writes the platform's success envelope.
func respondData(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}

// respondError writes the platform's error envelope.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}
