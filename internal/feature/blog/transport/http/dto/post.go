package dto

import (
	"time"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/usecase"
	catalogdto "topbrands_backend/internal/feature/catalog/transport/http/dto"
	"topbrands_backend/internal/shared/fields"
)

// PostResponse は一覧用の記事DTOです。
type PostResponse struct {
	ID            uint                              `json:"id"`
	Year          int                               `json:"year"`
	Title         string                            `json:"title"`
	Slug          string                            `json:"slug"`
	Excerpt       string                            `json:"excerpt"`
	FeaturedImage string                            `json:"featured_image"`
	AuthorName    string                            `json:"author_name"`
	Category      *catalogdto.ClassificationSummary `json:"category"`
	Status        string                            `json:"status"`
	ReadTime      int                               `json:"read_time"`
	IsFeatured    bool                              `json:"is_featured"`
	IsPublished   bool                              `json:"is_published"`
	Tags          []string                          `json:"tags"`
	ViewsCount    int64                             `json:"views_count"`
	LikesCount    int64                             `json:"likes_count"`
	PublishedAt   *time.Time                        `json:"published_at"`
}

// PostDetailResponse は詳細用の記事DTOです。
type PostDetailResponse struct {
	PostResponse
	Content          string    `json:"content"`
	FeaturedImageAlt string    `json:"featured_image_alt"`
	AllowComments    bool      `json:"allow_comments"`
	SharesCount      int64     `json:"shares_count"`
	MetaTitle        string    `json:"meta_title"`
	MetaDescription  string    `json:"meta_description"`
	MetaKeywords     string    `json:"meta_keywords"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IncrementResponse はカウンター更新後の値です。
type IncrementResponse map[string]int64

// PostRequest は記事の作成・更新リクエストです。
type PostRequest struct {
	Year             *int   `json:"year"`
	Title            string `json:"title" binding:"required,max=300"`
	Slug             string `json:"slug" binding:"max=300"`
	Excerpt          string `json:"excerpt" binding:"max=500"`
	Content          string `json:"content"`
	FeaturedImage    string `json:"featured_image" binding:"max=255"`
	FeaturedImageAlt string `json:"featured_image_alt" binding:"max=200"`
	AuthorName       string `json:"author_name" binding:"max=150"`
	CategoryID       *uint  `json:"category_id"`
	Status           string `json:"status" binding:"omitempty,oneof=draft published archived"`
	ReadTime         int    `json:"read_time" binding:"gte=0"`
	IsFeatured       bool   `json:"is_featured"`
	AllowComments    *bool  `json:"allow_comments"`
	Tags             string `json:"tags" binding:"max=500"`
	IsPublished      *bool  `json:"is_published"`
	MetaTitle        string `json:"meta_title" binding:"max=60"`
	MetaDescription  string `json:"meta_description" binding:"max=160"`
	MetaKeywords     string `json:"meta_keywords" binding:"max=255"`
}

// Input はリクエストをusecaseの入力へ変換します。
// allow_comments と is_published は省略時にtrueです。
func (r PostRequest) Input() usecase.Input {
	in := usecase.Input{
		Year:             r.Year,
		Title:            r.Title,
		Slug:             r.Slug,
		Excerpt:          r.Excerpt,
		Content:          r.Content,
		FeaturedImage:    r.FeaturedImage,
		FeaturedImageAlt: r.FeaturedImageAlt,
		AuthorName:       r.AuthorName,
		CategoryID:       r.CategoryID,
		Status:           entity.Status(r.Status),
		ReadTime:         r.ReadTime,
		IsFeatured:       r.IsFeatured,
		AllowComments:    true,
		Tags:             r.Tags,
		IsPublished:      true,
		SEO: fields.SEO{
			MetaTitle:       r.MetaTitle,
			MetaDescription: r.MetaDescription,
			MetaKeywords:    r.MetaKeywords,
		},
	}
	if r.AllowComments != nil {
		in.AllowComments = *r.AllowComments
	}
	if r.IsPublished != nil {
		in.IsPublished = *r.IsPublished
	}
	return in
}

// NewPostRequest は既存の記事から更新リクエストの初期値を作ります。
// バインド時にリクエストへ含まれないフィールドは現在の値のまま残ります。
func NewPostRequest(p entity.Post) PostRequest {
	year := p.Year
	allow := p.AllowComments
	published := p.IsPublished
	return PostRequest{
		Year:             &year,
		Title:            p.Title,
		Slug:             p.Slug,
		Excerpt:          p.Excerpt,
		Content:          p.Content,
		FeaturedImage:    p.FeaturedImage,
		FeaturedImageAlt: p.FeaturedImageAlt,
		AuthorName:       p.AuthorName,
		CategoryID:       p.CategoryID,
		Status:           string(p.Status),
		ReadTime:         p.ReadTime,
		IsFeatured:       p.IsFeatured,
		AllowComments:    &allow,
		Tags:             p.Tags,
		IsPublished:      &published,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
	}
}

// NewPostResponse はエンティティを一覧用DTOへ変換します。
func NewPostResponse(p entity.Post) PostResponse {
	return PostResponse{
		ID:            p.ID,
		Year:          p.Year,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImagePath(),
		AuthorName:    p.AuthorName,
		Category:      catalogdto.NewClassificationSummary(p.Category),
		Status:        string(p.Status),
		ReadTime:      p.ReadTime,
		IsFeatured:    p.IsFeatured,
		IsPublished:   p.IsPublished,
		Tags:          p.TagList(),
		ViewsCount:    p.ViewsCount,
		LikesCount:    p.LikesCount,
		PublishedAt:   p.PublishedAt,
	}
}

// NewPostList は記事一覧を変換します。
func NewPostList(posts []entity.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// NewPostDetailResponse はエンティティを詳細DTOへ変換します。
func NewPostDetailResponse(p entity.Post) PostDetailResponse {
	return PostDetailResponse{
		PostResponse:     NewPostResponse(p),
		Content:          p.Content,
		FeaturedImageAlt: p.FeaturedImageAlt,
		AllowComments:    p.AllowComments,
		SharesCount:      p.SharesCount,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
