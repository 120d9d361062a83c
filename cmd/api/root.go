package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/boutique-api/internal/app"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "boutique-api",
	Short:         "API de gestión del taller: órdenes, abonos, inventario y usuarios",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// env configuración y logger cargados una vez por comando.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	return &env{cfg: cfg, log: log}, nil
}

// openRepositories abre el backend configurado. closeFn libera el pool (no-op en memoria).
func (e *env) openRepositories(ctx context.Context) (repos app.Repositories, closeFn func(), err error) {
	if e.cfg.Store.Driver == "memory" {
		e.log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return app.MemoryRepositories(memory.NewStore()), func() {}, nil
	}
	var pool *pgxpool.Pool
	pool, err = postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return app.Repositories{}, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return app.PostgresRepositories(pool, postgres.NewTxRunner(pool)), pool.Close, nil
}

func (e *env) options(cache ports.RoleCache, metrics ports.Metrics) app.Options {
	return app.Options{
		JWT: auth.JWTConfig{
			Secret:     e.cfg.JWT.Secret,
			ExpMinutes: e.cfg.JWT.Expiration,
			Issuer:     e.cfg.JWT.Issuer,
		},
		Registration: auth.RegistrationConfig{
			Allow:       e.cfg.Auth.AllowSelfRegistration,
			DefaultRole: e.cfg.Auth.DefaultRole,
		},
		BusinessName: e.cfg.App.BusinessName,
		Cache:        cache,
		Metrics:      metrics,
		Log:          e.log.Zerolog(),
	}
}

func (e *env) ownerAccount() app.OwnerAccount {
	return app.OwnerAccount{
		Name:     e.cfg.Bootstrap.OwnerName,
		Email:    e.cfg.Bootstrap.OwnerEmail,
		Password: e.cfg.Bootstrap.OwnerPassword,
	}
}
