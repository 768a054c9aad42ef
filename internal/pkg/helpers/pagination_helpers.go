package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1
)

// ParsePaginationParams extracts page and pageSize, falling back to defaults on bad input
func ParsePaginationParams(c *gin.Context) dto.PaginationRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return dto.PaginationRequest{Page: page, PageSize: size}
}

// CalculateSliceIndices returns the bounds of the requested page inside a list of totalItems
func CalculateSliceIndices(p dto.PaginationRequest, totalItems int) (start, end int) {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}

	start = (page - 1) * size
	end = start + size
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
