package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/service"
	"github.com/snnyvrz/library-api/internal/validation"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidID      = "INVALID_ID"
	CodeInternalError  = "INTERNAL_ERROR"
)

type listQuery struct {
	pageNumber int
	pageSize   int
	field      string
}

func parseListQuery(c *gin.Context) listQuery {
	return listQuery{
		pageNumber: parseIntQuery(c, "pageNumber", 0),
		pageSize:   parseIntQuery(c, "pageSize", repository.DefaultPageSize),
		field:      c.DefaultQuery("field", repository.DefaultSortField),
	}
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

// parseUintQuery returns nil when key is absent and ok=false when it is
// present but not a positive integer.
func parseUintQuery(c *gin.Context, key string) (v *uint, ok bool) {
	s, present := c.GetQuery(key)
	if !present {
		return nil, true
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return nil, false
	}
	id := uint(n)
	return &id, true
}

func optionalQuery(c *gin.Context, key string) *string {
	if s, ok := c.GetQuery(key); ok {
		return &s
	}
	return nil
}

func parseID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || n == 0 {
		writeError(c, http.StatusBadRequest,
			CodeInvalidID,
			"id must be a positive integer",
		)
		return 0, false
	}
	return uint(n), true
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// writeServiceError maps service error kinds to statuses. Anything else
// is logged and reported as a 500 without leaking details.
func writeServiceError(c *gin.Context, err error) {
	if e, ok := service.AsError(err); ok {
		switch e.Kind {
		case service.KindNotFound:
			writeError(c, http.StatusNotFound, CodeNotFound, e.Message)
			return
		case service.KindConflict:
			writeError(c, http.StatusConflict, CodeConflict, e.Message)
			return
		case service.KindInvalidRequest:
			writeError(c, http.StatusBadRequest, CodeInvalidRequest, e.Message)
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"error", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"request_id", requestID(c),
	)

	writeError(c, http.StatusInternalServerError,
		CodeInternalError,
		"internal server error",
	)
}
