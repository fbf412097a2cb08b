package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/dto"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type assistantService interface {
	Chat(ctx context.Context, req dto.ChatRequest) dto.ChatResponse
}

// AssistantHandler exposes the virtual assistant chat endpoint.
type AssistantHandler struct {
	service assistantService
}

// NewAssistantHandler builds a new handler.
func NewAssistantHandler(service assistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Chat godoc
// @Summary Ask the virtual assistant about the teacher's own data
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Chat turn"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.Chat(c.Request.Context(), req), nil)
}
