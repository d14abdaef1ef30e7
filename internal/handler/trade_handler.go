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

type TradeHandler struct {
	svc service.TradeService
}

func NewTradeHandler(svc service.TradeService) *TradeHandler {
	return &TradeHandler{svc: svc}
}

type ExecuteTradeRequest struct {
	TradeType    string  `json:"trade_type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

type TradeResponse struct {
	ID           uint64  `json:"id"`
	TokenID      uint64  `json:"token_id"`
	UserID       uint64  `json:"user_id"`
	TradeType    string  `json:"trade_type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalValue   float64 `json:"total_value"`
	CreatedAt    string  `json:"created_at"`
}

func (h *TradeHandler) Execute(c echo.Context) error {
	var req ExecuteTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid json"))
	}
	trade, err := h.svc.Execute(c.Request().Context(), c.Param("tokenId"), middleware.UserID(c), req.TradeType, req.Quantity, req.PricePerUnit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toTradeResponse(trade))
}

func (h *TradeHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	trades, err := h.svc.ListByToken(c.Request().Context(), c.Param("tokenId"), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := make([]TradeResponse, 0, len(trades))
	for i := range trades {
		resp = append(resp, toTradeResponse(&trades[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"trades": resp})
}

func toTradeResponse(trade *model.Trade) TradeResponse {
	return TradeResponse{
		ID:           trade.ID,
		TokenID:      trade.TokenID,
		UserID:       trade.UserID,
		TradeType:    string(trade.TradeType),
		Quantity:     trade.Quantity,
		PricePerUnit: trade.PricePerUnit,
		TotalValue:   trade.TotalValue,
		CreatedAt:    trade.CreatedAt.Format(time.RFC3339),
	}
}
