package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// ModelsController lists the generation model presets
type ModelsController struct {
	current ai.Model
	logger  *zap.Logger
}

// NewModelsController creates a new models controller. current is the
// model used when a request does not name one.
func NewModelsController(current ai.Model, logger *zap.Logger) *ModelsController {
	return &ModelsController{current: current, logger: logger}
}

// List returns the model presets
// @Summary      List models
// @Tags         Models
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]minutesdto.ModelResponse}
// @Router       /models [get]
func (mc *ModelsController) List(c echo.Context) error {
	return HandleSuccess(mc.logger, c, presenter.ToModelResponses(ai.Presets(), mc.current))
}
