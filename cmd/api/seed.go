package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/boutique-api/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea los roles integrados y la cuenta owner inicial (OWNER_EMAIL, OWNER_PASSWORD)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ctx := context.Background()
		repos, closeRepos, err := e.openRepositories(ctx)
		if err != nil {
			return err
		}
		defer closeRepos()

		container := app.Build(repos, e.options(nil, nil))
		return app.Seed(ctx, container, repos.Users, e.ownerAccount(), e.log.Zerolog())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
