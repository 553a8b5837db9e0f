package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents optional pagination parameters. A zero
// PageSize means the caller did not ask for a page and the full
// collection is returned.
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from the request.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if pageSize <= 0 {
		return PaginationParams{Page: 1}
	}

	if page <= 0 {
		page = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// Slice applies the params to an index range of length n, returning the
// start and end offsets to keep.
func (p PaginationParams) Slice(n int) (int, int) {
	if p.PageSize <= 0 {
		return 0, n
	}
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.PageSize
	if end > n {
		end = n
	}
	return start, end
}
