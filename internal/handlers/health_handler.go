package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type HealthHandler struct {
	model string
}

func NewHealthHandler(model string) *HealthHandler {
	return &HealthHandler{model: model}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status: "ok",
		Model:  h.model,
	})
}
