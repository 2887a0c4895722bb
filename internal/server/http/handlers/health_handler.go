package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/qrorder/internal/server/http/dto"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	facade HealthFacade
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.Failure("database unavailable"))
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"status": "ok"}))
}
