package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// AppConfig parámetros de la aplicación Fiber.
type AppConfig struct {
	Name string
	Log  zerolog.Logger
	// Middleware extra que corre antes de las rutas (por ejemplo métricas).
	Middleware []fiber.Handler
}

// NewApp crea la aplicación con recover, log de peticiones y el mapeo de errores de dominio.
// Las rutas se registran aparte con Router.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Log))
	for _, h := range cfg.Middleware {
		app.Use(h)
	}
	return app
}
