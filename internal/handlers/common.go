package handlers

import (
	"net/http"
	"strconv"

	"teamcook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/page_size query params with the usual defaults.
// It responds with a validation error and returns false on bad input.
func parsePagination(c *gin.Context) (page, pageSize int, ok bool) {
	page, pageSize = 1, 10
	if pageStr := c.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			utils.RespondValidationFailed(c, "page must be a positive integer")
			return 0, 0, false
		}
		page = p
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 {
			utils.RespondValidationFailed(c, "page_size must be a positive integer")
			return 0, 0, false
		}
		pageSize = ps
	}
	return page, pageSize, true
}

// parseIDParam reads the :id path parameter as int64. It responds with a
// validation error and returns false on bad input.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "invalid ID format: "+err.Error())
		return 0, false
	}
	return id, true
}

// parseOptionalIDQuery reads an optional int64 query parameter. It responds
// with a validation error and returns ok=false on bad input.
func parseOptionalIDQuery(c *gin.Context, name string) (*int64, bool) {
	valueStr := c.Query(name)
	if valueStr == "" {
		return nil, true
	}
	value, err := utils.StrToInt64(valueStr)
	if err != nil {
		utils.RespondValidationFailed(c, "invalid "+name+" format: "+err.Error())
		return nil, false
	}
	return &value, true
}

// respondPaginated writes the standard list envelope.
func respondPaginated(c *gin.Context, data interface{}, total, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
