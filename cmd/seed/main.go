// Command seed fills the configured database with the demo accounts, ideas and jobs.
package main

import (
	"context"
	"errors"
	"fmt"

	"iblaze_backend/database"
	"iblaze_backend/internal/app"
	"iblaze_backend/internal/config"
	"iblaze_backend/internal/logger"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	ctx := context.Background()
	repos, closeStore, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "error", err)
	}
	defer closeStore()

	if err := database.Seed(ctx, repos); err != nil {
		if errors.Is(err, database.ErrAlreadySeeded) {
			logger.Info("Demo data already present, nothing to do")
			return
		}
		logger.Fatal("Seeding failed", "error", err)
	}

	fmt.Println("Demo credentials:")
	for _, u := range database.DemoUsers {
		fmt.Printf("  %-9s %-26s %-12s approved=%t verified=%t\n", u.Role, u.Email, u.Password, u.IsApproved, u.IsVerified)
	}
}
