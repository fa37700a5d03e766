package db

import (
	"strings"

	"gorm.io/gorm"

	"topbrands_backend/internal/shared/pagination"
)

// Scope is a reusable gorm query fragment.
type Scope = func(*gorm.DB) *gorm.DB

// InYear restricts to rows tagged with year.
func InYear(year int) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("year = ?", year)
	}
}

// Published restricts to publicly visible rows.
func Published() Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_published = ?", true)
	}
}

// Search matches term case-insensitively as a substring of any column.
// An empty term matches everything.
func Search(term string, columns ...string) Scope {
	term = strings.TrimSpace(term)
	return func(tx *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return tx
		}
		like := "%" + escapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, like)
		}
		return tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Ordering applies requested ("field" or "-field") when allowed maps it to a
// column, and falls back to the given order clauses otherwise.
func Ordering(requested string, allowed map[string]string, fallback ...string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		desc := strings.HasPrefix(requested, "-")
		if col, ok := allowed[strings.TrimPrefix(requested, "-")]; ok {
			if desc {
				return tx.Order(col + " DESC").Order("id")
			}
			return tx.Order(col + " ASC").Order("id")
		}
		for _, o := range fallback {
			tx = tx.Order(o)
		}
		return tx.Order("id")
	}
}

// Paginate applies limit/offset for page.
func Paginate(page pagination.Page) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(page.Offset()).Limit(page.Size)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
