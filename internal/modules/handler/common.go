package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/serializer"
	"github.com/convoycubano1-glitch/boostify-progress/internal/modules/service"
	"github.com/convoycubano1-glitch/boostify-progress/internal/pkg/paging"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ownerID pulls the authenticated account id set by the auth middleware.
// Routes are registered behind the middleware, so a miss is a programming
// error surfaced as 401 rather than a panic.
func ownerID(c *gin.Context) (string, bool) {
	v, ok := c.Get("owner_id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return "", false
	}
	return id, true
}

func ownerName(c *gin.Context) string {
	if v, ok := c.Get("owner_name"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// respondServiceError maps service errors onto the response envelope.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrPhaseNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error(), nil))
	case errors.Is(err, paging.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid cursor", err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
