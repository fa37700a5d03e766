package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"topbrands_backend/internal/feature/brands/domain/entity"
)

var (
	viewsWeight  = decimal.RequireFromString("0.3")
	ratingWeight = decimal.NewFromInt(20)
	maxRating    = decimal.NewFromInt(5)
)

// PopularityScore is views*0.3 + customer_rating*20.
// It fails for ratings outside 0-5 and negative view counts.
func PopularityScore(b *entity.Brand) (decimal.Decimal, error) {
	if b.CustomerRating.IsNegative() || b.CustomerRating.GreaterThan(maxRating) {
		return decimal.Zero, fmt.Errorf("%w: brand %q has %s", ErrInvalidRating, b.Slug, b.CustomerRating)
	}
	if b.ViewsCount < 0 {
		return decimal.Zero, fmt.Errorf("brand %q has negative views %d", b.Slug, b.ViewsCount)
	}
	return decimal.NewFromInt(b.ViewsCount).Mul(viewsWeight).Add(b.CustomerRating.Mul(ratingWeight)), nil
}

// MostPopular returns the ten highest scoring brands of the effective year.
// If any brand cannot be scored the whole result falls back to current_rank
// descending, and the failure is logged rather than returned.
func (u *BrandUsecase) MostPopular(ctx context.Context, year *int) ([]entity.Brand, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}

	brands, err := u.repo.ListTop(ctx, f, "", 0)
	if err == nil {
		var ranked []entity.Brand
		if ranked, err = rankByPopularity(brands); err == nil {
			return ranked, nil
		}
	}

	slog.Warn("popularity scoring failed, falling back to rank order", "error", err, "year", *f.Year)
	return u.repo.ListTop(ctx, f, "-current_rank", mostPopularSize)
}

func rankByPopularity(brands []entity.Brand) ([]entity.Brand, error) {
	scores := make(map[uint]decimal.Decimal, len(brands))
	for i := range brands {
		s, err := PopularityScore(&brands[i])
		if err != nil {
			return nil, err
		}
		scores[brands[i].ID] = s
	}

	sort.SliceStable(brands, func(i, j int) bool {
		si, sj := scores[brands[i].ID], scores[brands[j].ID]
		if !si.Equal(sj) {
			return si.GreaterThan(sj)
		}
		return brands[i].CurrentRank < brands[j].CurrentRank
	})
	if len(brands) > mostPopularSize {
		brands = brands[:mostPopularSize]
	}
	return brands, nil
}
