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

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Message      string `json:"message"`
	IncludeAudio bool   `json:"include_audio"`
}

type ChatResponse struct {
	TreeName     string   `json:"tree_name"`
	UserMessage  string   `json:"user_message"`
	Response     string   `json:"response"`
	Emotions     []string `json:"emotions,omitempty"`
	Action       string   `json:"action,omitempty"`
	AudioURL     *string  `json:"audio_url,omitempty"`
	HealthScore  float64  `json:"health_score"`
	CurrentValue float64  `json:"current_value"`
}

type ChatMessageResponse struct {
	ID        uint64  `json:"id"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	AudioURL  *string `json:"audio_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func (h *ChatHandler) Chat(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid json"))
	}
	res, err := h.svc.Chat(c.Request().Context(), treeID, middleware.UserID(c), req.Message, req.IncludeAudio)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, ChatResponse{
		TreeName:     res.TreeName,
		UserMessage:  res.UserMessage,
		Response:     res.Response,
		Emotions:     res.Emotions,
		Action:       res.Action,
		AudioURL:     res.AudioURL,
		HealthScore:  res.HealthScore,
		CurrentValue: res.CurrentValue,
	})
}

func (h *ChatHandler) History(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	messages, err := h.svc.History(c.Request().Context(), treeID, middleware.UserID(c), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, toChatMessageResponse(&messages[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": resp})
}

func toChatMessageResponse(m *model.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		AudioURL:  m.AudioURL,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
