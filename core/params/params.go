package params

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/constants"
)

// QueryParams holds the common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams(c echo.Context) *QueryParams {
	p := &QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if n, err := strconv.Atoi(c.QueryParam("page_number")); err == nil && n > 0 {
		p.PageNumber = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && n > 0 {
		p.PageSize = n
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	return p
}
