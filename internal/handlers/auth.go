package handlers

import (
	"errors"
	"net/http"

	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both sign-up and sign-in.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary  Register a user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      authCredentials  true  "credentials"
// @Success  200   {object}  map[string]int64
// @Failure  400   {object}  map[string]string
// @Failure  409   {object}  map[string]string
// @Failure  429   {object}  map[string]string
// @Router   /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrUserExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary  Exchange credentials for a token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      authCredentials  true  "credentials"
// @Success  200   {object}  map[string]string
// @Failure  400   {object}  map[string]string
// @Failure  401   {object}  map[string]string
// @Failure  429   {object}  map[string]string
// @Router   /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
