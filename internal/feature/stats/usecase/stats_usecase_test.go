package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	years "topbrands_backend/internal/feature/years/domain/entity"
)

// mockStatsRepository はStatsRepositoryインターフェースのモック実装です。
type mockStatsRepository struct {
	figures    []BrandFigure
	categories int64
	top        string
	latest     *time.Time
	dashboard  DashboardCounts
	since      time.Time
	err        error
}

func (m *mockStatsRepository) BrandFigures(context.Context, int) ([]BrandFigure, error) {
	return m.figures, m.err
}
func (m *mockStatsRepository) ActiveCategories(context.Context) (int64, error) {
	return m.categories, nil
}
func (m *mockStatsRepository) TopCategory(context.Context, int) (string, bool, error) {
	return m.top, m.top != "", nil
}
func (m *mockStatsRepository) LatestUpdate(context.Context, int) (*time.Time, error) {
	return m.latest, nil
}
func (m *mockStatsRepository) Dashboard(_ context.Context, _ int, since time.Time) (DashboardCounts, error) {
	m.since = since
	return m.dashboard, nil
}

type mockYears struct {
	active int
	counts map[int]years.Counts
}

func (m mockYears) ResolveEffectiveYear(_ context.Context, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	return m.active, nil
}

func (m mockYears) CountsForYear(_ context.Context, year int) (years.Counts, error) {
	return m.counts[year], nil
}

func TestStatsUsecase_Site(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-time.Hour)
	yrs := mockYears{active: 2025, counts: map[int]years.Counts{2025: {Brands: 3, BlogPosts: 2, Insights: 1}}}

	t.Run("aggregates the effective year", func(t *testing.T) {
		repo := &mockStatsRepository{
			figures: []BrandFigure{
				{BrandValue: "₦4.2T", GrowthRate: "+10%"},
				{BrandValue: "₦800B", GrowthRate: "+20%"},
				{BrandValue: "TBD", GrowthRate: ""},
			},
			categories: 8,
			top:        "Telecommunications",
			latest:     &updated,
		}
		uc := NewStatsUsecase(repo, yrs)
		uc.now = func() time.Time { return now }

		s, err := uc.Site(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2025, s.Year)
		assert.Equal(t, int64(3), s.Counts.Brands)
		assert.Equal(t, int64(8), s.TotalCategories)
		assert.Equal(t, "₦5T", s.CombinedBrandValue)
		assert.Equal(t, "+15.0%", s.AverageGrowth)
		assert.Equal(t, "Telecommunications", s.TopPerformingCategory)
		assert.Equal(t, updated, s.LatestUpdate)
	})

	t.Run("empty year falls back to defaults", func(t *testing.T) {
		uc := NewStatsUsecase(&mockStatsRepository{}, yrs)
		uc.now = func() time.Time { return now }
		year := 2024

		s, err := uc.Site(context.Background(), &year)
		require.NoError(t, err)
		assert.Equal(t, years.Counts{}, s.Counts)
		assert.Equal(t, "₦0", s.CombinedBrandValue)
		assert.Equal(t, "+0.0%", s.AverageGrowth)
		assert.Equal(t, "N/A", s.TopPerformingCategory)
		assert.Equal(t, now, s.LatestUpdate)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := NewStatsUsecase(&mockStatsRepository{err: errors.New("db down")}, yrs)
		_, err := uc.Site(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestStatsUsecase_Dashboard(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockStatsRepository{dashboard: DashboardCounts{TotalYears: 2, Brands: 50}}
	uc := NewStatsUsecase(repo, mockYears{active: 2025})
	uc.now = func() time.Time { return now }

	s, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2025, s.CurrentYear)
	assert.Equal(t, int64(50), s.Brands)
	assert.Equal(t, now.AddDate(0, 0, -30), repo.since)
}
