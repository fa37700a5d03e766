package dto

import "topbrands_backend/internal/feature/blog/domain/entity"

// TagResponse はブログタグのJSON表現です。
type TagResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// NewTagResponse はエンティティからレスポンスを組み立てます。
func NewTagResponse(t entity.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug, Description: t.Description}
}

// NewTagList は一覧レスポンスを組み立てます。
func NewTagList(tags []entity.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTagResponse(t))
	}
	return out
}
