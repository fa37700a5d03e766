package dto

import (
	"time"

	"topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/feature/years/usecase"
)

// dateLayout はリクエスト・レスポンスでの日付形式です。
const dateLayout = "2006-01-02"

// YearResponse は年レコードと件数のレスポンスDTOです。
type YearResponse struct {
	ID                  uint      `json:"id"`
	Year                int       `json:"year"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	IsActive            bool      `json:"is_active"`
	IsPublished         bool      `json:"is_published"`
	IsComplete          bool      `json:"is_complete"`
	TotalBrands         int       `json:"total_brands"`
	ResearchMethodology string    `json:"research_methodology"`
	DataCollectionStart *string   `json:"data_collection_start"`
	DataCollectionEnd   *string   `json:"data_collection_end"`
	PublicationDate     *string   `json:"publication_date"`
	BrandsCount         int64     `json:"brands_count"`
	BlogPostsCount      int64     `json:"blog_posts_count"`
	InsightsCount       int64     `json:"insights_count"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// YearsResponse は公開APIの年一覧です。
type YearsResponse struct {
	Years       []YearResponse `json:"years"`
	CurrentYear int            `json:"current_year"`
}

// YearRequest は年の作成・更新リクエストです。日付はYYYY-MM-DD形式です。
type YearRequest struct {
	Year                int    `json:"year"`
	Title               string `json:"title" binding:"max=200"`
	Description         string `json:"description"`
	IsActive            bool   `json:"is_active"`
	IsPublished         bool   `json:"is_published"`
	IsComplete          bool   `json:"is_complete"`
	TotalBrands         int    `json:"total_brands" binding:"gte=0"`
	ResearchMethodology string `json:"research_methodology"`
	DataCollectionStart string `json:"data_collection_start" binding:"omitempty,datetime=2006-01-02"`
	DataCollectionEnd   string `json:"data_collection_end" binding:"omitempty,datetime=2006-01-02"`
	PublicationDate     string `json:"publication_date" binding:"omitempty,datetime=2006-01-02"`
}

// DuplicateRequest は年の複製リクエストです。
type DuplicateRequest struct {
	NewYear int `json:"new_year" binding:"required"`
}

// MigrationResponse は移行ログのレスポンスDTOです。
type MigrationResponse struct {
	ID             uint       `json:"id"`
	MigrationType  string     `json:"migration_type"`
	FromYear       *int       `json:"from_year"`
	ToYear         int        `json:"to_year"`
	Status         string     `json:"status"`
	Description    string     `json:"description"`
	ItemsProcessed int        `json:"items_processed"`
	ItemsTotal     int        `json:"items_total"`
	ErrorMessage   string     `json:"error_message"`
	InitiatedBy    string     `json:"initiated_by"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Input はリクエストをusecaseの入力へ変換します。日付はbindingで検証済みです。
func (r YearRequest) Input() usecase.Input {
	return usecase.Input{
		Year:                r.Year,
		Title:               r.Title,
		Description:         r.Description,
		IsActive:            r.IsActive,
		IsPublished:         r.IsPublished,
		IsComplete:          r.IsComplete,
		TotalBrands:         r.TotalBrands,
		ResearchMethodology: r.ResearchMethodology,
		DataCollectionStart: parseDate(r.DataCollectionStart),
		DataCollectionEnd:   parseDate(r.DataCollectionEnd),
		PublicationDate:     parseDate(r.PublicationDate),
	}
}

// NewYearRequest は既存の年から更新リクエストの初期値を作ります。
// バインド時にリクエストへ含まれないフィールドは現在の値のまま残ります。
func NewYearRequest(y entity.YearRecord) YearRequest {
	return YearRequest{
		Year:                y.Year,
		Title:               y.Title,
		Description:         y.Description,
		IsActive:            y.IsActive,
		IsPublished:         y.IsPublished,
		IsComplete:          y.IsComplete,
		TotalBrands:         y.TotalBrands,
		ResearchMethodology: y.ResearchMethodology,
		DataCollectionStart: deref(formatDate(y.DataCollectionStart)),
		DataCollectionEnd:   deref(formatDate(y.DataCollectionEnd)),
		PublicationDate:     deref(formatDate(y.PublicationDate)),
	}
}

// NewYearResponse はレコードと件数をレスポンスへ変換します。
func NewYearResponse(y entity.YearRecord, c entity.Counts) YearResponse {
	return YearResponse{
		ID:                  y.ID,
		Year:                y.Year,
		Title:               y.Title,
		Description:         y.Description,
		IsActive:            y.IsActive,
		IsPublished:         y.IsPublished,
		IsComplete:          y.IsComplete,
		TotalBrands:         y.TotalBrands,
		ResearchMethodology: y.ResearchMethodology,
		DataCollectionStart: formatDate(y.DataCollectionStart),
		DataCollectionEnd:   formatDate(y.DataCollectionEnd),
		PublicationDate:     formatDate(y.PublicationDate),
		BrandsCount:         c.Brands,
		BlogPostsCount:      c.BlogPosts,
		InsightsCount:       c.Insights,
		CreatedAt:           y.CreatedAt,
		UpdatedAt:           y.UpdatedAt,
	}
}

// NewYearList は件数付きの一覧を変換します。
func NewYearList(ys []usecase.YearWithCounts) []YearResponse {
	out := make([]YearResponse, 0, len(ys))
	for _, y := range ys {
		out = append(out, NewYearResponse(y.YearRecord, y.Counts))
	}
	return out
}

// NewMigrationList は移行ログ一覧を変換します。
func NewMigrationList(logs []entity.MigrationLog) []MigrationResponse {
	out := make([]MigrationResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, MigrationResponse{
			ID:             l.ID,
			MigrationType:  l.MigrationType,
			FromYear:       l.FromYear,
			ToYear:         l.ToYear,
			Status:         l.Status,
			Description:    l.Description,
			ItemsProcessed: l.ItemsProcessed,
			ItemsTotal:     l.ItemsTotal,
			ErrorMessage:   l.ErrorMessage,
			InitiatedBy:    l.InitiatedBy,
			StartedAt:      l.StartedAt,
			CompletedAt:    l.CompletedAt,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
