package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petriapp/petri-backend/internal/middleware"
	"github.com/petriapp/petri-backend/internal/service"
)

type PortfolioHandler struct {
	svc service.PortfolioService
}

func NewPortfolioHandler(svc service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

type PortfolioEntryResponse struct {
	Tree  TreeResponse   `json:"tree"`
	Token *TokenResponse `json:"token,omitempty"`
}

type PortfolioResponse struct {
	Entries    []PortfolioEntryResponse `json:"entries"`
	TotalTrees int64                    `json:"total_trees"`
	TotalValue float64                  `json:"total_value"`
}

func (h *PortfolioHandler) Me(c echo.Context) error {
	portfolio, err := h.svc.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := PortfolioResponse{
		Entries:    make([]PortfolioEntryResponse, 0, len(portfolio.Entries)),
		TotalTrees: portfolio.TotalTrees,
		TotalValue: portfolio.TotalValue,
	}
	for i := range portfolio.Entries {
		entry := PortfolioEntryResponse{Tree: toTreeResponse(&portfolio.Entries[i].Tree)}
		if portfolio.Entries[i].Token != nil {
			tr := toTokenResponse(portfolio.Entries[i].Token)
			entry.Token = &tr
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return c.JSON(http.StatusOK, resp)
}
