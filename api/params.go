package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

// pathID reads the :id parameter. It writes a 404 and returns false for
// anything that is not a positive integer, since no such object can exist.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "not found"})
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string, verr *domain.ValidationError) int64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		verr.Add(name, "a valid integer is required")
		return 0
	}
	return id
}

func queryDay(c *gin.Context, name string, verr *domain.ValidationError) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	day, err := time.Parse(dayLayout, raw)
	if err != nil {
		verr.Add(name, "date has wrong format, use YYYY-MM-DD")
		return nil
	}
	return &day
}

// rejectFilter reports a malformed query filter. The list's authorization
// error wins over the filter error, so callers who could not list at all
// never see field details.
func rejectFilter(c *gin.Context, kind policy.Kind, verr *domain.ValidationError) bool {
	if verr.Empty() {
		return false
	}
	if err := policy.Authorize(kind, identityFrom(c), policy.ActionList, nil); err != nil {
		writeError(c, err)
		return true
	}
	writeError(c, verr)
	return true
}
