package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"

	"github.com/jhoicas/boutique-api/docs"
	"github.com/jhoicas/boutique-api/internal/app"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/infrastructure/cache"
	"github.com/jhoicas/boutique-api/internal/infrastructure/metrics"
	"github.com/jhoicas/boutique-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/boutique-api/internal/interfaces/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP y el scheduler de avisos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	cfg, log := e.cfg, e.log
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, closeRepos, err := e.openRepositories(ctx)
	if err != nil {
		return err
	}
	defer closeRepos()

	prom := metrics.New()

	var roleCache ports.RoleCache
	if cfg.Redis.Enabled() {
		rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible: se sigue sin caché de roles")
		} else {
			defer rdb.Close()
			roleCache = cache.NewRedisRoleCache(rdb, cfg.Redis.RoleTTL, log.Zerolog())
		}
	}

	container := app.Build(repos, e.options(roleCache, prom))

	// Los roles integrados deben existir antes de la primera petición.
	if err := app.Seed(ctx, container, repos.Users, e.ownerAccount(), log.Zerolog()); err != nil {
		return err
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler.Spec, cfg.Scheduler.Timezone, container.Notifications, log.Zerolog())
		if err != nil {
			return err
		}
		sched.Start()
	}

	server := httpRouter.NewApp(httpRouter.AppConfig{
		Name:       cfg.App.Name,
		Log:        log.Zerolog(),
		Middleware: []fiber.Handler{prom.Middleware()},
	})

	// Swagger UI en local: http://localhost:<port>/docs
	server.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Boutique API",
	}))

	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	server.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))

	httpRouter.Router(server, container.RouterDeps(cfg.JWT.Secret))

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
