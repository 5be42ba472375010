package handlers

import (
	"net/http"

	"aquascape/internal/command"
	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type feedNowRequest struct {
	Volume decimal.NullDecimal `json:"volume"`
}

type settingsRequest struct {
	FeedingVolumeGrams decimal.NullDecimal `json:"feeding_volume_grams"`
	FeedingPeriodHours *int                `json:"feeding_period_hours"`
	Name               *string             `json:"name"`
	SizeLitres         decimal.NullDecimal `json:"size_litres"`
}

// @Summary  Create an aquarium
// @Tags     aquariums
// @Accept   json
// @Produce  json
// @Param    body  body      service.AquariumInput  true  "aquarium"
// @Success  201   {object}  models.Aquarium
// @Failure  400   {object}  map[string]string
// @Failure  401   {object}  map[string]string
// @Router   /api/v1/aquariums [post]
// @Security BearerAuth
func (h *Handler) createAquarium(c *gin.Context) {
	var in service.AquariumInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	a, err := h.services.Aquariums.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		h.writeError(c, "aquarium_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary  List the caller's aquariums
// @Tags     aquariums
// @Produce  json
// @Success  200  {object}  map[string]interface{}  "count, aquariums"
// @Failure  401  {object}  map[string]string
// @Router   /api/v1/aquariums [get]
// @Security BearerAuth
func (h *Handler) listAquariums(c *gin.Context) {
	list, err := h.services.Aquariums.List(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, "aquarium_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "aquariums": list})
}

// @Summary  Get an aquarium
// @Tags     aquariums
// @Produce  json
// @Param    id   path      int  true  "aquarium id"
// @Success  200  {object}  models.Aquarium
// @Failure  403  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/aquariums/{id} [get]
// @Security BearerAuth
func (h *Handler) getAquarium(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := h.services.Aquariums.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.writeError(c, "aquarium_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary  Replace an aquarium's settings
// @Tags     aquariums
// @Accept   json
// @Produce  json
// @Param    id    path      int                    true  "aquarium id"
// @Param    body  body      service.AquariumInput  true  "aquarium"
// @Success  200   {object}  models.Aquarium
// @Failure  400   {object}  map[string]string
// @Failure  403   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/v1/aquariums/{id} [put]
// @Security BearerAuth
func (h *Handler) updateAquarium(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.AquariumInput
	if !h.bindJSONOrBadRequest(c, &in) {
		return
	}
	a, err := h.services.Aquariums.Update(c.Request.Context(), userID(c), id, in)
	if err != nil {
		h.writeError(c, "aquarium_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary  Delete an aquarium and its history
// @Tags     aquariums
// @Param    id   path  int  true  "aquarium id"
// @Success  204
// @Failure  403  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/aquariums/{id} [delete]
// @Security BearerAuth
func (h *Handler) deleteAquarium(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.services.Aquariums.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, "aquarium_delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary  Queue a manual feed for the device
// @Tags     aquariums
// @Accept   json
// @Produce  json
// @Param    id    path      int             true  "aquarium id"
// @Param    body  body      feedNowRequest  false  "volume in grams"
// @Success  201   {object}  models.Alert
// @Failure  400   {object}  map[string]string
// @Failure  403   {object}  map[string]string
// @Router   /api/v1/aquariums/{id}/feed_now [post]
// @Security BearerAuth
func (h *Handler) feedNow(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req feedNowRequest
	if c.Request.ContentLength != 0 && !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	a, err := h.services.Alerts.FeedNow(c.Request.Context(), userID(c), id, req.Volume)
	if err != nil {
		h.writeError(c, "feed_now_failed", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary  Queue a settings update for the device
// @Tags     aquariums
// @Accept   json
// @Produce  json
// @Param    id    path      int              true  "aquarium id"
// @Param    body  body      settingsRequest  true  "fields to change"
// @Success  201   {object}  models.Alert
// @Failure  400   {object}  map[string]string
// @Failure  403   {object}  map[string]string
// @Router   /api/v1/aquariums/{id}/settings [post]
// @Security BearerAuth
func (h *Handler) updateSettings(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req settingsRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	a, err := h.services.Alerts.UpdateSettings(c.Request.Context(), userID(c), id, command.UpdateSettings{
		FeedingVolumeGrams: req.FeedingVolumeGrams,
		FeedingPeriodHours: req.FeedingPeriodHours,
		Name:               req.Name,
		SizeLitres:         req.SizeLitres,
	})
	if err != nil {
		h.writeError(c, "settings_update_failed", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}
