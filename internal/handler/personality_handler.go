package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petriapp/petri-backend/internal/ai"
	"github.com/petriapp/petri-backend/internal/middleware"
	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/service"
)

type PersonalityHandler struct {
	svc service.PersonalityService
}

func NewPersonalityHandler(svc service.PersonalityService) *PersonalityHandler {
	return &PersonalityHandler{svc: svc}
}

type SetPersonalityRequest struct {
	Name       string                 `json:"name"`
	Tone       string                 `json:"tone"`
	Background string                 `json:"background"`
	Traits     map[string]interface{} `json:"traits"`
	VoiceID    string                 `json:"voice_id"`
}

type PersonalityResponse struct {
	TreeID     uint64                 `json:"tree_id"`
	Name       string                 `json:"name"`
	Tone       string                 `json:"tone"`
	Background string                 `json:"background,omitempty"`
	Traits     map[string]interface{} `json:"traits,omitempty"`
	VoiceID    string                 `json:"voice_id"`
}

func (h *PersonalityHandler) Set(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	var req SetPersonalityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid json"))
	}
	p, err := h.svc.Set(c.Request().Context(), treeID, middleware.UserID(c), service.SetPersonalityInput{
		Name:       req.Name,
		Tone:       req.Tone,
		Background: req.Background,
		Traits:     req.Traits,
		VoiceID:    req.VoiceID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPersonalityResponse(p))
}

func (h *PersonalityHandler) Get(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	p, err := h.svc.Get(c.Request().Context(), treeID, middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPersonalityResponse(p))
}

// Voices serves the static synthesis voice catalog.
func (h *PersonalityHandler) Voices(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"voices": ai.Voices()})
}

func toPersonalityResponse(p *model.TreePersonality) PersonalityResponse {
	return PersonalityResponse{
		TreeID:     p.TreeID,
		Name:       p.Name,
		Tone:       p.Tone,
		Background: p.Background,
		Traits:     p.Traits,
		VoiceID:    p.VoiceID,
	}
}
