package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Ejecuta las migraciones de base de datos",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(true)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte todas las migraciones",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(false)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrations(up bool) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if e.cfg.Store.Driver != "postgres" {
		return fmt.Errorf("migrate requiere STORE_DRIVER=postgres")
	}
	if err := postgres.Migrate(e.cfg.DB.ConnectionString(), up); err != nil {
		return err
	}
	e.log.Info().Bool("up", up).Msg("migraciones aplicadas")
	return nil
}
