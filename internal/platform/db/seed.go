package db

import (
	"context"
	"fmt"
	"log/slog"

	"staffsync/internal/platform/config"
)

// HRAccountSeeder creates the initial HR identity account.
type HRAccountSeeder interface {
	SeedHRAccount(ctx context.Context, email, password, name string) (created bool, err error)
}

// Seed provisions the HR account named by SEED_HR_EMAIL. It is a no-op when
// no seed credentials are configured.
func Seed(ctx context.Context, accounts HRAccountSeeder, cfg config.Config) error {
	if cfg.SeedHREmail == "" || cfg.SeedHRPassword == "" {
		slog.Info("seed skipped: no HR credentials configured")
		return nil
	}

	created, err := accounts.SeedHRAccount(ctx, cfg.SeedHREmail, cfg.SeedHRPassword, cfg.SeedHRName)
	if err != nil {
		return fmt.Errorf("seed hr account: %w", err)
	}
	if created {
		slog.Info("seeded hr account", "email", cfg.SeedHREmail)
	}
	return nil
}
