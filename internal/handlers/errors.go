package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to statuses. Unknown errors are logged and
// hidden behind a generic 500.
func (h *Handler) writeError(c *gin.Context, event string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.log.Errorw(event, "err", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// idParam parses the :id path parameter, writing a 400 when it is not a positive integer.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// aquariumIDQuery parses the required ?aquarium_id= query parameter.
func aquariumIDQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("aquarium_id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aquarium_id is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid aquarium_id"})
		return 0, false
	}
	return id, true
}
