package params

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestYear(t *testing.T) {
	y, err := Year(newContext("/brands"))
	require.NoError(t, err)
	assert.Nil(t, y)

	y, err = Year(newContext("/brands?year=2024"))
	require.NoError(t, err)
	require.NotNil(t, y)
	assert.Equal(t, 2024, *y)

	_, err = Year(newContext("/brands?year=latest"))
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestBool(t *testing.T) {
	tests := []struct {
		query string
		want  *bool
	}{
		{"/?is_featured=true", ptr(true)},
		{"/?is_featured=0", ptr(false)},
		{"/?is_featured=maybe", nil},
		{"/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Bool(newContext(tt.query), "is_featured"))
		})
	}
}

func TestID(t *testing.T) {
	c := newContext("/")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := ID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, bad := range []string{"0", "-1", "abc"} {
		c.Params = gin.Params{{Key: "id", Value: bad}}
		_, err := ID(c, "id")
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func ptr(v bool) *bool { return &v }
