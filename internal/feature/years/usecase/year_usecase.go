package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"topbrands_backend/internal/feature/years/domain/entity"
)

// migrationHistory is how many migration log rows the dashboard lists.
const migrationHistory = 50

// YearRepository abstracts the persistence layer for the year registry.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type YearRepository interface {
	// List returns every year, newest first.
	List(ctx context.Context) ([]entity.YearRecord, error)
	FindByYear(ctx context.Context, year int) (*entity.YearRecord, error)
	// Create inserts y. When y is active every other year is deactivated in the same transaction.
	Create(ctx context.Context, y *entity.YearRecord) error
	// Update saves y with the same activation rule as Create.
	Update(ctx context.Context, y *entity.YearRecord) error
	Delete(ctx context.Context, year int) error
	// SetActive deactivates every other year and activates year in one transaction.
	SetActive(ctx context.Context, year int) error
	// ActiveYear returns the active year. When several are active the most
	// recently updated wins, then the higher year.
	ActiveYear(ctx context.Context) (int, bool, error)
	// CreateWithLog inserts y and log in one transaction.
	CreateWithLog(ctx context.Context, y *entity.YearRecord, log *entity.MigrationLog) error
	ListMigrations(ctx context.Context, limit int) ([]entity.MigrationLog, error)
}

// CountRepository counts published content per year.
type CountRepository interface {
	CountsForYear(ctx context.Context, year int) (entity.Counts, error)
}

// Input carries the editable year fields.
type Input struct {
	Year                int
	Title               string
	Description         string
	IsActive            bool
	IsPublished         bool
	IsComplete          bool
	TotalBrands         int
	ResearchMethodology string
	DataCollectionStart *time.Time
	DataCollectionEnd   *time.Time
	PublicationDate     *time.Time
}

// YearWithCounts pairs a record with its live counts.
type YearWithCounts struct {
	entity.YearRecord
	Counts entity.Counts
}

// YearUsecase maintains the ranking years and resolves the year a request applies to.
type YearUsecase struct {
	repo     YearRepository
	counts   CountRepository
	fallback int
}

// NewYearUsecase creates a new YearUsecase. fallback is used when no year is active.
func NewYearUsecase(repo YearRepository, counts CountRepository, fallback int) *YearUsecase {
	return &YearUsecase{repo: repo, counts: counts, fallback: fallback}
}

// ResolveEffectiveYear returns requested when given, otherwise the active year,
// otherwise the configured fallback.
func (u *YearUsecase) ResolveEffectiveYear(ctx context.Context, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	year, ok, err := u.repo.ActiveYear(ctx)
	if err != nil {
		return 0, fmt.Errorf("active year: %w", err)
	}
	if !ok {
		return u.fallback, nil
	}
	return year, nil
}

// CreateYear registers a new ranking year.
func (u *YearUsecase) CreateYear(ctx context.Context, in Input) (*entity.YearRecord, error) {
	if !entity.ValidYear(in.Year) {
		return nil, ErrInvalidYear
	}
	y := &entity.YearRecord{Year: in.Year}
	assign(y, in)
	if err := u.repo.Create(ctx, y); err != nil {
		return nil, fmt.Errorf("create year %d: %w", in.Year, err)
	}
	if y.IsActive {
		slog.Info("active year changed", "year", y.Year)
	}
	return y, nil
}

// SetActive makes year the only active year.
func (u *YearUsecase) SetActive(ctx context.Context, year int) error {
	if err := u.repo.SetActive(ctx, year); err != nil {
		return fmt.Errorf("activate year %d: %w", year, err)
	}
	slog.Info("active year changed", "year", year)
	return nil
}

// CountsForYear returns live counts of published content tagged with year.
func (u *YearUsecase) CountsForYear(ctx context.Context, year int) (entity.Counts, error) {
	return u.counts.CountsForYear(ctx, year)
}

// ListYears returns every year with its counts, and the effective current year.
func (u *YearUsecase) ListYears(ctx context.Context) ([]YearWithCounts, int, error) {
	records, err := u.repo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]YearWithCounts, 0, len(records))
	for _, r := range records {
		c, err := u.counts.CountsForYear(ctx, r.Year)
		if err != nil {
			return nil, 0, fmt.Errorf("counts for %d: %w", r.Year, err)
		}
		out = append(out, YearWithCounts{YearRecord: r, Counts: c})
	}
	current, err := u.ResolveEffectiveYear(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	return out, current, nil
}

// GetYear returns one year with its counts.
func (u *YearUsecase) GetYear(ctx context.Context, year int) (*YearWithCounts, error) {
	r, err := u.repo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	c, err := u.counts.CountsForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("counts for %d: %w", year, err)
	}
	return &YearWithCounts{YearRecord: *r, Counts: c}, nil
}

// UpdateYear replaces the editable fields of year. A zero in.Year keeps the number.
func (u *YearUsecase) UpdateYear(ctx context.Context, year int, in Input) (*entity.YearRecord, error) {
	y, err := u.repo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if in.Year != 0 && in.Year != y.Year {
		if !entity.ValidYear(in.Year) {
			return nil, ErrInvalidYear
		}
		y.Year = in.Year
	}
	wasActive := y.IsActive
	assign(y, in)
	if err := u.repo.Update(ctx, y); err != nil {
		return nil, fmt.Errorf("update year %d: %w", year, err)
	}
	if y.IsActive && !wasActive {
		slog.Info("active year changed", "year", y.Year)
	}
	return y, nil
}

// DeleteYear removes a year record. Content tagged with it is left in place.
func (u *YearUsecase) DeleteYear(ctx context.Context, year int) error {
	if err := u.repo.Delete(ctx, year); err != nil {
		return err
	}
	slog.Warn("year deleted", "year", year)
	return nil
}

// DuplicateYear creates newYear from source's size and methodology. The new
// year starts inactive and unpublished, and a migration log row is written.
func (u *YearUsecase) DuplicateYear(ctx context.Context, source, newYear int, initiatedBy string) (*entity.YearRecord, error) {
	if !entity.ValidYear(newYear) {
		return nil, ErrInvalidYear
	}
	src, err := u.repo.FindByYear(ctx, source)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	y := &entity.YearRecord{
		Year:                newYear,
		Title:               entity.DefaultTitle(newYear),
		Description:         fmt.Sprintf("The %d edition of Nigeria's most comprehensive brand ranking.", newYear),
		TotalBrands:         src.TotalBrands,
		ResearchMethodology: src.ResearchMethodology,
	}
	log := &entity.MigrationLog{
		MigrationType:  entity.MigrationNewYearSetup,
		FromYear:       &src.Year,
		ToYear:         newYear,
		Status:         entity.MigrationCompleted,
		Description:    fmt.Sprintf("Created new year %d based on %d", newYear, src.Year),
		ItemsProcessed: 1,
		ItemsTotal:     1,
		InitiatedBy:    initiatedBy,
		StartedAt:      &now,
		CompletedAt:    &now,
	}
	if err := u.repo.CreateWithLog(ctx, y, log); err != nil {
		return nil, fmt.Errorf("duplicate year %d into %d: %w", source, newYear, err)
	}
	slog.Info("year duplicated", "from", source, "to", newYear, "by", initiatedBy)
	return y, nil
}

// ListMigrations returns the most recent migration log rows.
func (u *YearUsecase) ListMigrations(ctx context.Context) ([]entity.MigrationLog, error) {
	return u.repo.ListMigrations(ctx, migrationHistory)
}

func assign(y *entity.YearRecord, in Input) {
	y.Title = strings.TrimSpace(in.Title)
	if y.Title == "" {
		y.Title = entity.DefaultTitle(y.Year)
	}
	y.Description = in.Description
	y.IsActive = in.IsActive
	y.IsPublished = in.IsPublished
	y.IsComplete = in.IsComplete
	y.TotalBrands = in.TotalBrands
	if y.TotalBrands <= 0 {
		y.TotalBrands = entity.DefaultTotalBrands
	}
	y.ResearchMethodology = in.ResearchMethodology
	y.DataCollectionStart = in.DataCollectionStart
	y.DataCollectionEnd = in.DataCollectionEnd
	y.PublicationDate = in.PublicationDate
}
