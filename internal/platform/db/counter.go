package db

import (
	"context"

	"gorm.io/gorm"
)

// IncrementColumn adds one to column on the rows matched by query and returns
// the new value. The update is a single SQL expression so concurrent callers
// never lose increments. column must come from a fixed whitelist.
func IncrementColumn(ctx context.Context, db *gorm.DB, model any, column, query string, args ...any) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(model).Where(query, args...).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRows
		}

		var values []int64
		if err := tx.Model(model).Where(query, args...).Limit(1).Pluck(column, &values).Error; err != nil {
			return err
		}
		if len(values) == 0 {
			return ErrNoRows
		}
		value = values[0]
		return nil
	})
	return value, err
}
