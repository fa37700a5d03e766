// Package dto はsettingsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"topbrands_backend/internal/feature/settings/domain/entity"
	"topbrands_backend/internal/feature/settings/usecase"
)

// ConfigurationRequest はシステム設定の作成・更新リクエストです。
// is_activeとrequires_adminは省略時trueです。
type ConfigurationRequest struct {
	Key           string `json:"key" binding:"required,max=100"`
	Value         string `json:"value" binding:"required"`
	Description   string `json:"description"`
	IsActive      *bool  `json:"is_active"`
	IsPublic      bool   `json:"is_public"`
	RequiresAdmin *bool  `json:"requires_admin"`
}

// NewConfigurationRequest は既存の設定から更新リクエストの初期値を作ります。
func NewConfigurationRequest(c entity.Configuration) ConfigurationRequest {
	active, requiresAdmin := c.IsActive, c.RequiresAdmin
	return ConfigurationRequest{
		Key:           c.Key,
		Value:         c.Value,
		Description:   c.Description,
		IsActive:      &active,
		IsPublic:      c.IsPublic,
		RequiresAdmin: &requiresAdmin,
	}
}

// Input はリクエストをusecaseの入力へ変換します。
func (r ConfigurationRequest) Input() usecase.Input {
	return usecase.Input{
		Key:           r.Key,
		Value:         r.Value,
		Description:   r.Description,
		IsActive:      r.IsActive == nil || *r.IsActive,
		IsPublic:      r.IsPublic,
		RequiresAdmin: r.RequiresAdmin == nil || *r.RequiresAdmin,
	}
}

// ConfigurationResponse はシステム設定のJSON表現です。
type ConfigurationResponse struct {
	ID            uint      `json:"id"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	IsPublic      bool      `json:"is_public"`
	RequiresAdmin bool      `json:"requires_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewConfigurationResponse はエンティティからレスポンスを組み立てます。
func NewConfigurationResponse(c entity.Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		ID:            c.ID,
		Key:           c.Key,
		Value:         c.Value,
		Description:   c.Description,
		IsActive:      c.IsActive,
		IsPublic:      c.IsPublic,
		RequiresAdmin: c.RequiresAdmin,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// NewConfigurationList は一覧レスポンスを組み立てます。
func NewConfigurationList(cs []entity.Configuration) []ConfigurationResponse {
	out := make([]ConfigurationResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewConfigurationResponse(c))
	}
	return out
}
