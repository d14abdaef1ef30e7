package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/petriapp/petri-backend/internal/middleware"
	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/service"
)

type HealthHandler struct {
	svc service.HealthService
}

func NewHealthHandler(svc service.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

type RecordHealthRequest struct {
	HealthScore float64 `json:"health_score"`
	EventType   string  `json:"event_type"`
	Description *string `json:"description"`
}

type HealthEntryResponse struct {
	ID          uint64  `json:"id"`
	TreeID      uint64  `json:"tree_id"`
	HealthScore float64 `json:"health_score"`
	TokenValue  float64 `json:"token_value"`
	EventType   string  `json:"event_type"`
	Description *string `json:"description,omitempty"`
	RecordedAt  string  `json:"recorded_at"`
}

type RecordHealthResponse struct {
	Entry HealthEntryResponse `json:"entry"`
	Tree  TreeResponse        `json:"tree"`
}

func (h *HealthHandler) Record(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	var req RecordHealthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid json"))
	}
	entry, tree, err := h.svc.RecordEvent(c.Request().Context(), treeID, middleware.UserID(c), req.HealthScore, req.EventType, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, RecordHealthResponse{
		Entry: toHealthEntryResponse(entry),
		Tree:  toTreeResponse(tree),
	})
}

func (h *HealthHandler) History(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.svc.History(c.Request().Context(), treeID, middleware.UserID(c), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := make([]HealthEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toHealthEntryResponse(&entries[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"history": resp})
}

func toHealthEntryResponse(entry *model.HealthHistory) HealthEntryResponse {
	return HealthEntryResponse{
		ID:          entry.ID,
		TreeID:      entry.TreeID,
		HealthScore: entry.HealthScore,
		TokenValue:  entry.TokenValue,
		EventType:   entry.EventType,
		Description: entry.Description,
		RecordedAt:  entry.RecordedAt.Format(time.RFC3339),
	}
}
