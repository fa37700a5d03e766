// Package usecase computes the public site statistics and the dashboard summary.
package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	years "topbrands_backend/internal/feature/years/domain/entity"
)

// noCategory is reported when no brand in the year has a category.
const noCategory = "N/A"

// recentWindow bounds the migrations counted as recent on the dashboard.
const recentWindow = 30 * 24 * time.Hour

// BrandFigure is the display value and growth of one brand.
type BrandFigure struct {
	BrandValue string
	GrowthRate string
}

// StatsRepository reads the aggregates behind the statistics.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StatsRepository interface {
	// BrandFigures returns value and growth strings of published brands in year.
	BrandFigures(ctx context.Context, year int) ([]BrandFigure, error)
	ActiveCategories(ctx context.Context) (int64, error)
	// TopCategory is the category name with the most published brands in year.
	TopCategory(ctx context.Context, year int) (string, bool, error)
	// LatestUpdate is the newest updated_at of public brands and posts in year.
	LatestUpdate(ctx context.Context, year int) (*time.Time, error)
	Dashboard(ctx context.Context, year int, since time.Time) (DashboardCounts, error)
}

// YearService resolves the effective year and counts its published content.
type YearService interface {
	ResolveEffectiveYear(ctx context.Context, requested *int) (int, error)
	CountsForYear(ctx context.Context, year int) (years.Counts, error)
}

// SiteStats is the public statistics of one year.
type SiteStats struct {
	Year                  int
	Counts                years.Counts
	TotalCategories       int64
	CombinedBrandValue    string
	AverageGrowth         string
	TopPerformingCategory string
	LatestUpdate          time.Time
}

// DashboardCounts are the editor totals, in any publication state.
type DashboardCounts struct {
	TotalYears       int64
	PublishedYears   int64
	Brands           int64
	BlogPosts        int64
	Insights         int64
	RecentMigrations int64
}

// DashboardStats is the dashboard summary for the effective year.
type DashboardStats struct {
	CurrentYear int
	DashboardCounts
}

// StatsUsecase computes statistics.
type StatsUsecase struct {
	repo  StatsRepository
	years YearService
	now   func() time.Time
}

// NewStatsUsecase creates a new StatsUsecase.
func NewStatsUsecase(repo StatsRepository, years YearService) *StatsUsecase {
	return &StatsUsecase{repo: repo, years: years, now: time.Now}
}

// Site returns the public statistics of the effective year. The independent
// aggregates are read concurrently.
func (u *StatsUsecase) Site(ctx context.Context, requested *int) (*SiteStats, error) {
	year, err := u.years.ResolveEffectiveYear(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("resolve year: %w", err)
	}

	s := &SiteStats{Year: year, TopPerformingCategory: noCategory}
	var figures []BrandFigure
	var latest *time.Time

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Counts, err = u.years.CountsForYear(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		s.TotalCategories, err = u.repo.ActiveCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		figures, err = u.repo.BrandFigures(gctx, year)
		return err
	})
	g.Go(func() error {
		name, ok, err := u.repo.TopCategory(gctx, year)
		if ok {
			s.TopPerformingCategory = name
		}
		return err
	})
	g.Go(func() (err error) {
		latest, err = u.repo.LatestUpdate(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats for %d: %w", year, err)
	}

	values := make([]string, 0, len(figures))
	rates := make([]string, 0, len(figures))
	for _, f := range figures {
		values = append(values, f.BrandValue)
		rates = append(rates, f.GrowthRate)
	}
	s.CombinedBrandValue = CombinedValue(values)
	s.AverageGrowth = AverageGrowth(rates)

	s.LatestUpdate = u.now()
	if latest != nil {
		s.LatestUpdate = *latest
	}
	return s, nil
}

// Dashboard returns the editor summary for the effective year.
func (u *StatsUsecase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	year, err := u.years.ResolveEffectiveYear(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve year: %w", err)
	}
	counts, err := u.repo.Dashboard(ctx, year, u.now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("dashboard stats for %d: %w", year, err)
	}
	return &DashboardStats{CurrentYear: year, DashboardCounts: counts}, nil
}
