package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errLimitInvalid = "invalid 'limit'; use a positive integer"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// @Summary  Record a sensor reading
// @Tags     sensor_data
// @Accept   json
// @Produce  json
// @Param    body  body      service.SensorInput  true  "reading"
// @Success  201   {object}  models.SensorReading
// @Failure  400   {object}  map[string]string
// @Failure  403   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/v1/sensor_data [post]
// @Security BearerAuth
func (h *Handler) createSensorData(c *gin.Context) {
	var in service.SensorInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	r, err := h.services.Sensors.Record(c.Request.Context(), userID(c), in)
	if err != nil {
		h.writeError(c, "sensor_data_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// @Summary      List sensor readings
// @Description  Newest first. 'from' accepts RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'.
// @Tags         sensor_data
// @Produce      json
// @Param        aquarium_id  query     int     true   "aquarium id"
// @Param        from         query     string  false  "inclusive lower bound"  example(2025-08-01)
// @Param        limit        query     int     false  "page size (default 100, max 1000)"
// @Success      200          {object}  map[string]interface{}  "count, sensor_data"
// @Failure      400          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /api/v1/sensor_data [get]
// @Security     BearerAuth
func (h *Handler) listSensorData(c *gin.Context) {
	f, ok := historyFilter(c)
	if !ok {
		return
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		f.Limit = n
	}

	list, err := h.services.Sensors.List(c.Request.Context(), userID(c), f)
	if err != nil {
		h.writeError(c, "sensor_data_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "sensor_data": list})
}

// @Summary  Record a feeding
// @Tags     feeding_logs
// @Accept   json
// @Produce  json
// @Param    body  body      service.FeedingInput  true  "feeding"
// @Success  201   {object}  models.FeedingLog
// @Failure  400   {object}  map[string]string
// @Failure  403   {object}  map[string]string
// @Router   /api/v1/feeding_logs [post]
// @Security BearerAuth
func (h *Handler) createFeedingLog(c *gin.Context) {
	var in service.FeedingInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	l, err := h.services.Feedings.Record(c.Request.Context(), userID(c), in)
	if err != nil {
		h.writeError(c, "feeding_log_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary  List feeding logs
// @Tags     feeding_logs
// @Produce  json
// @Param    aquarium_id  query     int     true   "aquarium id"
// @Param    from         query     string  false  "inclusive lower bound"
// @Success  200          {object}  map[string]interface{}  "count, feeding_logs"
// @Failure  400          {object}  map[string]string
// @Failure  403          {object}  map[string]string
// @Router   /api/v1/feeding_logs [get]
// @Security BearerAuth
func (h *Handler) listFeedingLogs(c *gin.Context) {
	f, ok := historyFilter(c)
	if !ok {
		return
	}
	list, err := h.services.Feedings.List(c.Request.Context(), userID(c), f)
	if err != nil {
		h.writeError(c, "feeding_log_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "feeding_logs": list})
}

// historyFilter reads aquarium_id and the optional from bound.
func historyFilter(c *gin.Context) (service.HistoryFilter, bool) {
	aqID, ok := aquariumIDQuery(c)
	if !ok {
		return service.HistoryFilter{}, false
	}
	f := service.HistoryFilter{AquariumID: aqID}
	if qs := c.Query("from"); qs != "" {
		from, err := parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return service.HistoryFilter{}, false
		}
		f.From = from
	}
	return f, true
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
