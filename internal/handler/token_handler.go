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

type TokenHandler struct {
	svc service.TokenService
}

func NewTokenHandler(svc service.TokenService) *TokenHandler {
	return &TokenHandler{svc: svc}
}

type TokenResponse struct {
	ID           uint64  `json:"id"`
	TokenID      string  `json:"token_id"`
	TreeID       uint64  `json:"tree_id"`
	OwnerID      uint64  `json:"owner_id"`
	MetadataURI  *string `json:"metadata_uri,omitempty"`
	ImageURI     *string `json:"image_uri,omitempty"`
	BaseValue    float64 `json:"base_value"`
	CurrentValue float64 `json:"current_value"`
	CreatedAt    string  `json:"created_at"`
}

func (h *TokenHandler) Mint(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	token, err := h.svc.Mint(c.Request().Context(), treeID, middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toTokenResponse(token))
}

func (h *TokenHandler) Get(c echo.Context) error {
	token, err := h.svc.Get(c.Request().Context(), c.Param("tokenId"), middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTokenResponse(token))
}

func (h *TokenHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	tokens, err := h.svc.List(c.Request().Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := make([]TokenResponse, 0, len(tokens))
	for i := range tokens {
		resp = append(resp, toTokenResponse(&tokens[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tokens": resp})
}

func toTokenResponse(token *model.Token) TokenResponse {
	return TokenResponse{
		ID:           token.ID,
		TokenID:      token.TokenID,
		TreeID:       token.TreeID,
		OwnerID:      token.OwnerID,
		MetadataURI:  token.MetadataURI,
		ImageURI:     token.ImageURI,
		BaseValue:    token.BaseValue,
		CurrentValue: token.CurrentValue,
		CreatedAt:    token.CreatedAt.Format(time.RFC3339),
	}
}
