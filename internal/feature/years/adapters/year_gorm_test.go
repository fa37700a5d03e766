package adapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	blog "topbrands_backend/internal/feature/blog/domain/entity"
	brands "topbrands_backend/internal/feature/brands/domain/entity"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	insights "topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/years/adapters"
	"topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/feature/years/usecase"
	"topbrands_backend/internal/platform/db/dbtest"
	"topbrands_backend/internal/shared/fields"
)

const fallbackYear = 2025

// setupTestDB は年レジストリと集計対象テーブルを作成したインメモリSQLiteを返します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t,
		&entity.YearRecord{},
		&entity.MigrationLog{},
		&catalog.Classification{},
		&brands.Brand{},
		&blog.Post{},
		&insights.Insight{},
	)
}

func newUsecase(db *gorm.DB) *usecase.YearUsecase {
	return usecase.NewYearUsecase(adapters.NewYearRepository(db), adapters.NewCountRepository(db), fallbackYear)
}

func activeYears(t *testing.T, db *gorm.DB) []int {
	t.Helper()
	var years []int
	require.NoError(t, db.Model(&entity.YearRecord{}).Where("is_active = ?", true).Order("year").Pluck("year", &years).Error)
	return years
}

// TestYearRegistry_ActivationScenario は2025から2026への切り替えで有効な年が常に1つであることを検証します。
func TestYearRegistry_ActivationScenario(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	y, err := uc.ResolveEffectiveYear(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, fallbackYear, y, "no active year falls back")

	_, err = uc.CreateYear(ctx, usecase.Input{Year: 2025, IsActive: true})
	require.NoError(t, err)
	_, err = uc.CreateYear(ctx, usecase.Input{Year: 2026})
	require.NoError(t, err)

	y, err = uc.ResolveEffectiveYear(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)

	require.NoError(t, uc.SetActive(ctx, 2026))
	assert.Equal(t, []int{2026}, activeYears(t, db))

	y, err = uc.ResolveEffectiveYear(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2026, y)

	requested := 2024
	y, err = uc.ResolveEffectiveYear(ctx, &requested)
	require.NoError(t, err)
	assert.Equal(t, 2024, y, "explicit year is used verbatim")
}

// TestYearRegistry_SetActive_Unknown は存在しない年の有効化がロールバックされることを検証します。
func TestYearRegistry_SetActive_Unknown(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	_, err := uc.CreateYear(ctx, usecase.Input{Year: 2025, IsActive: true})
	require.NoError(t, err)

	err = uc.SetActive(ctx, 2030)
	assert.ErrorIs(t, err, usecase.ErrYearNotFound)
	assert.Equal(t, []int{2025}, activeYears(t, db), "previous active year must survive a failed activation")
}

// TestYearRegistry_CreateActive_ClearsOthers は有効状態で作成すると他の年が無効化されることを検証します。
func TestYearRegistry_CreateActive_ClearsOthers(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	for _, year := range []int{2023, 2024, 2025} {
		_, err := uc.CreateYear(ctx, usecase.Input{Year: year, IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, []int{year}, activeYears(t, db))
	}

	_, err := uc.UpdateYear(ctx, 2023, usecase.Input{IsActive: true, Title: "Back to 2023"})
	require.NoError(t, err)
	assert.Equal(t, []int{2023}, activeYears(t, db))
}

// TestYearRegistry_CreateYear_Errors は範囲外と重複のエラーを検証します。
func TestYearRegistry_CreateYear_Errors(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	for _, year := range []int{2019, 2051} {
		_, err := uc.CreateYear(ctx, usecase.Input{Year: year})
		assert.ErrorIs(t, err, usecase.ErrInvalidYear, year)
	}

	created, err := uc.CreateYear(ctx, usecase.Input{Year: 2020})
	require.NoError(t, err)
	assert.Equal(t, "Top 50 Most Valuable Brands in Nigeria 2020", created.Title)
	assert.Equal(t, 50, created.TotalBrands)

	_, err = uc.CreateYear(ctx, usecase.Input{Year: 2020})
	assert.ErrorIs(t, err, usecase.ErrDuplicateYear)
}

// TestYearRegistry_LegacyMultipleActive は複数の有効な年が残っていても決定的に1つを選ぶことを検証します。
func TestYearRegistry_LegacyMultipleActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	rows := []entity.YearRecord{
		{Year: 2024, Title: "a", IsActive: true, Timestamps: fields.Timestamps{UpdatedAt: now.Add(-time.Hour)}},
		{Year: 2023, Title: "b", IsActive: true, Timestamps: fields.Timestamps{UpdatedAt: now}},
		{Year: 2022, Title: "c", IsActive: true, Timestamps: fields.Timestamps{UpdatedAt: now}},
	}
	// gormのUpdatedAt自動設定を避けるため列を直接書き込む
	for _, r := range rows {
		require.NoError(t, db.Exec(
			"INSERT INTO yearly_rankings (year, title, is_active, is_published, is_complete, total_brands, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			r.Year, r.Title, true, false, false, 50, r.UpdatedAt, r.UpdatedAt,
		).Error)
	}

	y, err := newUsecase(db).ResolveEffectiveYear(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2023, y)
}

// TestCountsForYear は公開済みのものだけが年ごとに数えられることを検証します。
func TestCountsForYear(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	pub := fields.Publication{IsPublished: true}
	require.NoError(t, db.Create(&[]brands.Brand{
		{Year: 2025, Title: "MTN", Slug: "mtn", CurrentRank: 1, Publication: pub},
		{Year: 2025, Title: "Draft", Slug: "draft", CurrentRank: 2},
		{Year: 2026, Title: "MTN", Slug: "mtn", CurrentRank: 1, Publication: pub},
	}).Error)
	require.NoError(t, db.Create(&[]blog.Post{
		{Year: 2025, Title: "Live", Slug: "live", Status: blog.StatusPublished, Publication: pub},
		{Year: 2025, Title: "Flagged but draft", Slug: "flagged", Status: blog.StatusDraft, Publication: pub},
	}).Error)
	require.NoError(t, db.Create(&insights.Insight{Year: 2025, Title: "FMCG", Slug: "fmcg", InsightType: insights.TypeForecast, Publication: pub}).Error)

	c, err := uc.CountsForYear(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, entity.Counts{Brands: 1, BlogPosts: 1, Insights: 1}, c)

	c, err = uc.CountsForYear(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, entity.Counts{}, c)

	_, err = uc.CreateYear(ctx, usecase.Input{Year: 2025, IsActive: true})
	require.NoError(t, err)
	_, err = uc.CreateYear(ctx, usecase.Input{Year: 2026})
	require.NoError(t, err)

	list, current, err := uc.ListYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2025, current)
	require.Len(t, list, 2)
	assert.Equal(t, 2026, list[0].Year)
	assert.Equal(t, int64(1), list[0].Counts.Brands)
}

// TestDuplicateYear は複製時に設定が引き継がれ、移行ログが記録されることを検証します。
func TestDuplicateYear(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	_, err := uc.CreateYear(ctx, usecase.Input{Year: 2025, IsActive: true, IsPublished: true, TotalBrands: 100, ResearchMethodology: "survey"})
	require.NoError(t, err)

	y, err := uc.DuplicateYear(ctx, 2025, 2026, "editor")
	require.NoError(t, err)
	assert.Equal(t, 100, y.TotalBrands)
	assert.Equal(t, "survey", y.ResearchMethodology)
	assert.False(t, y.IsActive)
	assert.False(t, y.IsPublished)
	assert.Equal(t, []int{2025}, activeYears(t, db))

	logs, err := uc.ListMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.MigrationNewYearSetup, logs[0].MigrationType)
	require.NotNil(t, logs[0].FromYear)
	assert.Equal(t, 2025, *logs[0].FromYear)
	assert.Equal(t, "editor", logs[0].InitiatedBy)

	_, err = uc.DuplicateYear(ctx, 2025, 2026, "editor")
	assert.ErrorIs(t, err, usecase.ErrDuplicateYear)

	_, err = uc.DuplicateYear(ctx, 2019, 2027, "editor")
	assert.ErrorIs(t, err, usecase.ErrYearNotFound)
}

// TestDeleteYear は削除と存在しない年の削除を検証します。
func TestDeleteYear(t *testing.T) {
	db := setupTestDB(t)
	uc := newUsecase(db)
	ctx := context.Background()

	_, err := uc.CreateYear(ctx, usecase.Input{Year: 2025})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteYear(ctx, 2025))
	assert.ErrorIs(t, uc.DeleteYear(ctx, 2025), usecase.ErrYearNotFound)

	_, err = uc.GetYear(ctx, 2025)
	assert.ErrorIs(t, err, usecase.ErrYearNotFound)
}
