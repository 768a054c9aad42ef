package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func contextWithQuery(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  dto.PaginationRequest
	}{
		{"", dto.PaginationRequest{Page: 1, PageSize: DefaultPageSize}},
		{"page=3&pageSize=5", dto.PaginationRequest{Page: 3, PageSize: 5}},
		{"page=-1&pageSize=1000", dto.PaginationRequest{Page: 1, PageSize: DefaultPageSize}},
		{"page=abc", dto.PaginationRequest{Page: 1, PageSize: DefaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePaginationParams(contextWithQuery(tt.query)))
		})
	}
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(dto.PaginationRequest{Page: 2, PageSize: 10}, 25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = CalculateSliceIndices(dto.PaginationRequest{Page: 3, PageSize: 10}, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = CalculateSliceIndices(dto.PaginationRequest{Page: 9, PageSize: 10}, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestParseIDParam(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}, {Key: "bad", Value: "x"}, {Key: "neg", Value: "-2"}}

	id, err := ParseIDParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseIDParam(c, "bad")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidationFailed))
	_, err = ParseIDParam(c, "neg")
	assert.Error(t, err)
}

func TestParseIDList(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, ParseIDList([]string{"1,2", "x", " 3 ", "-4"}))
	assert.Nil(t, ParseIDList(nil))
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty("   "))
	assert.Equal(t, "abc", *NilIfEmpty(" abc "))
	assert.Nil(t, TrimOptional(nil))
	blank := "  "
	assert.Nil(t, TrimOptional(&blank))
	padded := " Via Roma 1 "
	assert.Equal(t, "Via Roma 1", *TrimOptional(&padded))
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"croce", "%croce%"},
		{"_", `%\_%`},
		{"100%", `%100\%%`},
		{`a\b`, `%a\\b%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.term))
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
