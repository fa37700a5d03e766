package dto

import (
	"time"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/catalog/usecase"
)

// ClassificationSummary は他のリソースに埋め込む分類の要約です。
type ClassificationSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ClassificationResponse は分類一覧・詳細のレスポンスDTOです。
type ClassificationResponse struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"is_active"`
	Country     string    `json:"country,omitempty"`
	State       string    `json:"state,omitempty"`
	City        string    `json:"city,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassificationRequest は分類の作成・更新リクエストです。
type ClassificationRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"max=100"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Icon        string `json:"icon" binding:"max=50"`
	IsActive    *bool  `json:"is_active"`
	Country     string `json:"country" binding:"max=100"`
	State       string `json:"state" binding:"max=100"`
	City        string `json:"city" binding:"max=100"`
}

// Input はリクエストをusecaseの入力へ変換します。
func (r ClassificationRequest) Input() usecase.Input {
	return usecase.Input{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		IsActive:    r.IsActive,
		Country:     r.Country,
		State:       r.State,
		City:        r.City,
	}
}

// NewClassificationRequest は既存の分類から更新リクエストの初期値を作ります。
func NewClassificationRequest(c entity.Classification) ClassificationRequest {
	active := c.IsActive
	return ClassificationRequest{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		IsActive:    &active,
		Country:     c.Country,
		State:       c.State,
		City:        c.City,
	}
}

// NewClassificationSummary はnilを許容して要約を生成します。
func NewClassificationSummary(c *entity.Classification) *ClassificationSummary {
	if c == nil {
		return nil
	}
	return &ClassificationSummary{ID: c.ID, Name: c.Name, Slug: c.Slug, Color: c.Color, Icon: c.Icon}
}

// NewClassificationResponse はエンティティをレスポンスへ変換します。
func NewClassificationResponse(c entity.Classification) ClassificationResponse {
	return ClassificationResponse{
		ID:          c.ID,
		Kind:        string(c.Kind),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		IsActive:    c.IsActive,
		Country:     c.Country,
		State:       c.State,
		City:        c.City,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewClassificationList は一覧を変換します。
func NewClassificationList(cs []entity.Classification) []ClassificationResponse {
	out := make([]ClassificationResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewClassificationResponse(c))
	}
	return out
}
