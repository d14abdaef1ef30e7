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

type TreeHandler struct {
	svc service.TreeService
}

func NewTreeHandler(svc service.TreeService) *TreeHandler {
	return &TreeHandler{svc: svc}
}

type PlantTreeRequest struct {
	Species      string  `json:"species"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName *string `json:"location_name"`
	Nickname     *string `json:"nickname"`
	Description  *string `json:"description"`
	PhotoURL     *string `json:"photo_url"`
}

type TreeResponse struct {
	ID           uint64  `json:"id"`
	UserID       uint64  `json:"user_id"`
	Species      string  `json:"species"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName *string `json:"location_name,omitempty"`
	Nickname     *string `json:"nickname,omitempty"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	IsPublic     bool    `json:"is_public"`
	HealthScore  float64 `json:"health_score"`
	CurrentValue float64 `json:"current_value"`
	PlantedAt    string  `json:"planted_at"`
}

type TreeListResponse struct {
	Trees []TreeResponse `json:"trees"`
	Total int64          `json:"total"`
}

type SetVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

func (h *TreeHandler) Plant(c echo.Context) error {
	var req PlantTreeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid json"))
	}
	tree, err := h.svc.Plant(c.Request().Context(), middleware.UserID(c), service.PlantTreeInput{
		Species:      req.Species,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: req.LocationName,
		Nickname:     req.Nickname,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toTreeResponse(tree))
}

func (h *TreeHandler) Get(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	tree, err := h.svc.Get(c.Request().Context(), treeID, middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTreeResponse(tree))
}

func (h *TreeHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	trees, total, err := h.svc.List(c.Request().Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := TreeListResponse{
		Trees: make([]TreeResponse, 0, len(trees)),
		Total: total,
	}
	for i := range trees {
		resp.Trees = append(resp.Trees, toTreeResponse(&trees[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TreeHandler) SetVisibility(c echo.Context) error {
	treeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid tree id"))
	}
	var req SetVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", "invalid json"))
	}
	tree, err := h.svc.SetVisibility(c.Request().Context(), treeID, middleware.UserID(c), req.IsPublic)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTreeResponse(tree))
}

// Marketplace lists public trees for discovery. No ownership filter applies.
func (h *TreeHandler) Marketplace(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	trees, err := h.svc.ListPublic(c.Request().Context(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := make([]TreeResponse, 0, len(trees))
	for i := range trees {
		resp = append(resp, toTreeResponse(&trees[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"trees": resp})
}

func toTreeResponse(tree *model.Tree) TreeResponse {
	return TreeResponse{
		ID:           tree.ID,
		UserID:       tree.UserID,
		Species:      string(tree.Species),
		Latitude:     tree.Latitude,
		Longitude:    tree.Longitude,
		LocationName: tree.LocationName,
		Nickname:     tree.Nickname,
		Description:  tree.Description,
		PhotoURL:     tree.PhotoURL,
		IsPublic:     tree.IsPublic,
		HealthScore:  tree.HealthScore,
		CurrentValue: tree.CurrentValue,
		PlantedAt:    tree.PlantedAt.Format(time.RFC3339),
	}
}

func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
