package handlers

import (
	"net/http"
	"strconv"

	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Create an alert
// @Description  Notifications (e.g. DANGER_SENSOR) are resolved by operators; CMD_* alerts are device commands.
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        body  body      service.AlertInput  true  "alert"
// @Success      201   {object}  models.Alert
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/alerts [post]
// @Security     BearerAuth
func (h *Handler) createAlert(c *gin.Context) {
	var in service.AlertInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	a, err := h.services.Alerts.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		h.writeError(c, "alert_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary  List an aquarium's alerts, oldest first
// @Tags     alerts
// @Produce  json
// @Param    aquarium_id  query     int     true   "aquarium id"
// @Param    type         query     string  false  "alert type"  Enums(CMD_FEED,CMD_UPDATE_SETTINGS,DANGER_SENSOR)
// @Param    resolved     query     bool    false  "filter by resolved flag"
// @Success  200          {object}  map[string]interface{}  "count, alerts"
// @Failure  400          {object}  map[string]string
// @Failure  403          {object}  map[string]string
// @Router   /api/v1/alerts [get]
// @Security BearerAuth
func (h *Handler) listAlerts(c *gin.Context) {
	f, ok := alertFilter(c)
	if !ok {
		return
	}
	list, err := h.services.Alerts.List(c.Request.Context(), userID(c), f)
	if err != nil {
		h.writeError(c, "alert_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "alerts": list})
}

// @Summary      Delete an alert
// @Description  Devices acknowledge an executed command by deleting it.
// @Tags         alerts
// @Param        id   path  int  true  "alert id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/alerts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteAlert(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.services.Alerts.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, "alert_delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary  Mark a notification as resolved
// @Tags     alerts
// @Produce  json
// @Param    id   path      int  true  "alert id"
// @Success  200  {object}  models.Alert
// @Failure  400  {object}  map[string]string  "commands cannot be resolved"
// @Failure  403  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/alerts/{id}/resolve [post]
// @Security BearerAuth
func (h *Handler) resolveAlert(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := h.services.Alerts.Resolve(c.Request.Context(), userID(c), id)
	if err != nil {
		h.writeError(c, "alert_resolve_failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func alertFilter(c *gin.Context) (service.AlertFilter, bool) {
	aqID, ok := aquariumIDQuery(c)
	if !ok {
		return service.AlertFilter{}, false
	}
	f := service.AlertFilter{AquariumID: aqID, Type: c.Query("type")}
	if qs := c.Query("resolved"); qs != "" {
		b, err := strconv.ParseBool(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'resolved'; use true or false"})
			return service.AlertFilter{}, false
		}
		f.Resolved = &b
	}
	return f, true
}
