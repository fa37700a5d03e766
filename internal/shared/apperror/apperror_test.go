package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
	os.Exit(m.Run())
}

func TestKindOf(t *testing.T) {
	errMissing := NotFound("year not found")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", errMissing, KindNotFound},
		{"wrapped", fmt.Errorf("get year 2030: %w", errMissing), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"conflict", Conflict("dup"), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
	assert.ErrorIs(t, fmt.Errorf("x: %w", errMissing), errMissing)
}

func TestKind_Status(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindBadRequest.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusConflict, KindConflict.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	assert.NoError(t, fe.Err())

	fe.Add("current_rank", "Ensure this value is less than or equal to 50")
	err := fe.Err()
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, KindOf(err))
}

type rankBody struct {
	Title       string `json:"title" binding:"required"`
	CurrentRank int    `json:"current_rank" binding:"min=1,max=50"`
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", NotFound("brand not found"), http.StatusNotFound, `{"error":"brand not found"}`},
		{"wrapped conflict", fmt.Errorf("create: %w", Conflict("slug already exists for year")), http.StatusConflict, `{"error":"slug already exists for year"}`},
		{"internal hidden", errors.New("pq: connection reset"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"fields", Invalid(map[string][]string{"year": {"bad"}}), http.StatusBadRequest, `{"errors":{"year":["bad"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { Respond(c, tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRespondBind_FieldNames(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body rankBody
		if err := c.ShouldBindJSON(&body); err != nil {
			RespondBind(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"current_rank":51}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var out struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out.Errors, "title")
	assert.Contains(t, out.Errors, "current_rank")
}

func TestRespondBind_MalformedJSON(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body rankBody
		if err := c.ShouldBindJSON(&body); err != nil {
			RespondBind(c, err)
			return
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
