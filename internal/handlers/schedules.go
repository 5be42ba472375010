package handlers

import (
	"net/http"

	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Create a feeding schedule
// @Description  type "interval" needs interval_hours; type "daily_times" needs daily_times as ["HH:MM", ...].
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body      service.ScheduleInput  true  "schedule"
// @Success      201   {object}  models.Schedule
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/schedules [post]
// @Security     BearerAuth
func (h *Handler) createSchedule(c *gin.Context) {
	var in service.ScheduleInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	s, err := h.services.Schedules.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		h.writeError(c, "schedule_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// @Summary  List an aquarium's schedules
// @Tags     schedules
// @Produce  json
// @Param    aquarium_id  query     int  true  "aquarium id"
// @Success  200          {object}  map[string]interface{}  "count, schedules"
// @Failure  400          {object}  map[string]string
// @Failure  403          {object}  map[string]string
// @Router   /api/v1/schedules [get]
// @Security BearerAuth
func (h *Handler) listSchedules(c *gin.Context) {
	aqID, ok := aquariumIDQuery(c)
	if !ok {
		return
	}
	list, err := h.services.Schedules.List(c.Request.Context(), userID(c), aqID)
	if err != nil {
		h.writeError(c, "schedule_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "schedules": list})
}

// @Summary  Get a schedule
// @Tags     schedules
// @Produce  json
// @Param    id   path      int  true  "schedule id"
// @Success  200  {object}  models.Schedule
// @Failure  403  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/schedules/{id} [get]
// @Security BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s, err := h.services.Schedules.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.writeError(c, "schedule_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary  Replace a schedule
// @Tags     schedules
// @Accept   json
// @Produce  json
// @Param    id    path      int                    true  "schedule id"
// @Param    body  body      service.ScheduleInput  true  "schedule"
// @Success  200   {object}  models.Schedule
// @Failure  400   {object}  map[string]string
// @Failure  403   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/v1/schedules/{id} [put]
// @Security BearerAuth
func (h *Handler) updateSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.ScheduleInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	s, err := h.services.Schedules.Update(c.Request.Context(), userID(c), id, in)
	if err != nil {
		h.writeError(c, "schedule_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary  Delete a schedule
// @Tags     schedules
// @Param    id   path  int  true  "schedule id"
// @Success  204
// @Failure  403  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/schedules/{id} [delete]
// @Security BearerAuth
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.services.Schedules.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, "schedule_delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
