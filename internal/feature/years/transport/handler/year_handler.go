// Package handler はyearsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/feature/years/transport/http/dto"
	"topbrands_backend/internal/feature/years/usecase"
	jwtmw "topbrands_backend/internal/platform/jwt"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/params"
)

// YearUsecase は年レジストリのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type YearUsecase interface {
	ListYears(ctx context.Context) ([]usecase.YearWithCounts, int, error)
	GetYear(ctx context.Context, year int) (*usecase.YearWithCounts, error)
	CreateYear(ctx context.Context, in usecase.Input) (*entity.YearRecord, error)
	UpdateYear(ctx context.Context, year int, in usecase.Input) (*entity.YearRecord, error)
	DeleteYear(ctx context.Context, year int) error
	SetActive(ctx context.Context, year int) error
	DuplicateYear(ctx context.Context, source, newYear int, initiatedBy string) (*entity.YearRecord, error)
	ListMigrations(ctx context.Context) ([]entity.MigrationLog, error)
	CountsForYear(ctx context.Context, year int) (entity.Counts, error)
}

// YearHandler は年レジストリのHTTPリクエストを処理します。
type YearHandler struct {
	uc YearUsecase
}

// NewYearHandler は指定されたusecaseでYearHandlerを生成します。
func NewYearHandler(uc YearUsecase) *YearHandler {
	return &YearHandler{uc: uc}
}

// List は全ての年と件数、現在の年を返します。
//
// エンドポイント例:
// GET /api/years → {"years": [...], "current_year": 2025}
func (h *YearHandler) List(c *gin.Context) {
	years, current, err := h.uc.ListYears(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.YearsResponse{Years: dto.NewYearList(years), CurrentYear: current})
}

// Get は1つの年を返します。GET /api/dashboard/years/:year
func (h *YearHandler) Get(c *gin.Context) {
	year, err := params.PathYear(c, "year")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	y, err := h.uc.GetYear(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewYearResponse(y.YearRecord, y.Counts))
}

// Create は年を作成します。POST /api/dashboard/years
func (h *YearHandler) Create(c *gin.Context) {
	var req dto.YearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	y, err := h.uc.CreateYear(c.Request.Context(), req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewYearResponse(*y, entity.Counts{}))
}

// Update は年を更新します。送られたフィールドのみ変更します。
// PUT・PATCH /api/dashboard/years/:year
func (h *YearHandler) Update(c *gin.Context) {
	year, err := params.PathYear(c, "year")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	current, err := h.uc.GetYear(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	req := dto.NewYearRequest(current.YearRecord)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	y, err := h.uc.UpdateYear(c.Request.Context(), year, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	counts, err := h.uc.CountsForYear(c.Request.Context(), y.Year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewYearResponse(*y, counts))
}

// Delete は年を削除します。DELETE /api/dashboard/years/:year
func (h *YearHandler) Delete(c *gin.Context) {
	year, err := params.PathYear(c, "year")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if err := h.uc.DeleteYear(c.Request.Context(), year); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetActive は指定年を唯一の有効な年にします。
//
// エンドポイント例:
// POST /api/dashboard/years/2026/set_active → {"message": "Year 2026 is now active", "active_year": 2026}
func (h *YearHandler) SetActive(c *gin.Context) {
	year, err := params.PathYear(c, "year")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if err := h.uc.SetActive(c.Request.Context(), year); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Year %d is now active", year),
		"active_year": year,
	})
}

// Duplicate は指定年を元に新しい年を作成します。
// POST /api/dashboard/years/2025/duplicate {"new_year": 2026}
func (h *YearHandler) Duplicate(c *gin.Context) {
	source, err := params.PathYear(c, "year")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	var req dto.DuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	y, err := h.uc.DuplicateYear(c.Request.Context(), source, req.NewYear, c.GetString(jwtmw.ContextUsername))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   fmt.Sprintf("Year %d created successfully", y.Year),
		"year_data": dto.NewYearResponse(*y, entity.Counts{}),
	})
}

// Migrations は最近の移行ログを返します。GET /api/dashboard/migrations
func (h *YearHandler) Migrations(c *gin.Context) {
	logs, err := h.uc.ListMigrations(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMigrationList(logs))
}
