// Command seed creates the default ranking years, starter categories, system
// configurations and the dashboard superuser. It is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"topbrands_backend/internal/app/di"
	authusecase "topbrands_backend/internal/feature/auth/usecase"
	catalogadapters "topbrands_backend/internal/feature/catalog/adapters"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	catalogusecase "topbrands_backend/internal/feature/catalog/usecase"
	settingsusecase "topbrands_backend/internal/feature/settings/usecase"
	yearusecase "topbrands_backend/internal/feature/years/usecase"
	"topbrands_backend/internal/platform/config"
	"topbrands_backend/internal/platform/db"
	"topbrands_backend/internal/platform/logger"
)

var defaultYears = []yearusecase.Input{
	{Year: 2024, IsPublished: true, IsComplete: true},
	{Year: 2025, IsActive: true, IsPublished: true},
}

var defaultCategories = []string{
	"Banking & Finance",
	"Telecommunications",
	"FMCG",
	"Energy",
	"Technology",
}

var defaultConfigurations = []settingsusecase.Input{
	{Key: "site_title", Value: "Top 50 Brands Nigeria", Description: "Main site title", IsActive: true, IsPublic: true},
	{Key: "site_description", Value: "Nigeria's most comprehensive ranking of valuable and influential brands", Description: "Site description for SEO", IsActive: true, IsPublic: true},
	{Key: "default_redirect_year", Value: "2025", Description: "Default year to redirect to when accessing home page", IsActive: true, IsPublic: true, RequiresAdmin: true},
	{Key: "enable_year_switching", Value: "true", Description: "Allow users to switch between different years", IsActive: true, IsPublic: true},
	{Key: "show_historical_data", Value: "true", Description: "Show historical data and comparisons", IsActive: true, IsPublic: true},
	{Key: "api_version", Value: "v1", Description: "Current API version", IsActive: true, IsPublic: true, RequiresAdmin: true},
	{Key: "maintenance_mode", Value: "false", Description: "Enable maintenance mode", IsActive: true, RequiresAdmin: true},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		slog.Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	// Seeding always needs the tables.
	cfg.RunMigrations = true
	gdb, err := db.Open(cfg, di.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seedYears(ctx, di.Years(cfg, gdb)); err != nil {
		slog.Error("seed years failed", "error", err)
		os.Exit(1)
	}
	if err := seedCategories(ctx, catalogusecase.NewCatalogUsecase(catalogadapters.NewClassificationRepository(gdb))); err != nil {
		slog.Error("seed categories failed", "error", err)
		os.Exit(1)
	}
	created, err := di.Settings(gdb).Seed(ctx, defaultConfigurations)
	if err != nil {
		slog.Error("seed configurations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("configurations", "created", created)
	if err := seedAdmin(ctx, cfg, di.Auth(cfg, gdb)); err != nil {
		slog.Error("seed admin failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed ok")
}

func seedYears(ctx context.Context, years *yearusecase.YearUsecase) error {
	for _, in := range defaultYears {
		_, err := years.CreateYear(ctx, in)
		switch {
		case errors.Is(err, yearusecase.ErrDuplicateYear):
			slog.Info("year exists", "year", in.Year)
		case err != nil:
			return err
		default:
			slog.Info("year created", "year", in.Year, "active", in.IsActive)
		}
	}
	return nil
}

func seedCategories(ctx context.Context, uc *catalogusecase.CatalogUsecase) error {
	for _, name := range defaultCategories {
		_, err := uc.Create(ctx, catalog.KindCategory, catalogusecase.Input{Name: name})
		if err != nil && !errors.Is(err, catalogusecase.ErrDuplicateClassification) {
			return err
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, auth *authusecase.AuthUsecase) error {
	if cfg.AdminPassword == "" {
		slog.Warn("TOPBRANDS_ADMIN_PASSWORD is not set; skipping superuser")
		return nil
	}
	created, err := auth.EnsureUser(ctx, authusecase.NewUser{
		Username:    cfg.AdminUsername,
		Email:       cfg.AdminEmail,
		Password:    cfg.AdminPassword,
		IsSuperuser: true,
	})
	if err != nil {
		return err
	}
	slog.Info("superuser", "username", cfg.AdminUsername, "created", created)
	return nil
}
