package query

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination is page-numbered paging shared by every list endpoint.
type Pagination struct {
	Page  int
	Limit int
}

// Offset converts the page number into a row offset.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func GetPaginationFromQuery(reqCtx *gin.Context) (*Pagination, error) {
	pageStr := reqCtx.DefaultQuery("page", "1")
	limitStr := reqCtx.DefaultQuery("limit", strconv.Itoa(DefaultLimit))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return nil, fmt.Errorf("invalid page number")
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("invalid limit number")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Pagination{
		Page:  page,
		Limit: limit,
	}, nil
}
