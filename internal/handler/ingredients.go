package handler

import (
	"net/http"

	"github.com/ezazee/dapur-gempita-sub000/internal/apierror"
	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/middleware"
	"github.com/ezazee/dapur-gempita-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngredientsHandler struct {
	svc    service.IngredientService
	ledger service.LedgerService
}

func NewIngredientsHandler(svc service.IngredientService, ledger service.LedgerService) *IngredientsHandler {
	return &IngredientsHandler{svc: svc, ledger: ledger}
}

// Create godoc
// @Summary      Register a new ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateIngredientRequest true "Ingredient data"
// @Success      201  {object} dto.IngredientResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ingredients [post]
func (h *IngredientsHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List ingredients
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        name  query string false "Filter by name (substring)"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200   {object} dto.IngredientListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/ingredients [get]
func (h *IngredientsHandler) List(c *gin.Context) {
	var filter dto.IngredientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStockAlerts godoc
// @Summary      Ingredients at or below their minimum stock
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.IngredientResponse
// @Router       /v1/ingredients/alerts [get]
func (h *IngredientsHandler) LowStockAlerts(c *gin.Context) {
	resp, err := h.svc.LowStockAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load alerts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock godoc
// @Summary      Manual stock adjustment
// @Description  Writes an ADJUST movement through the ledger. Qty is a signed delta; the note is mandatory.
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Ingredient UUID"
// @Param        body body dto.AdjustStockRequest true "Signed delta and note"
// @Success      201  {object} dto.MovementResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ingredients/{id}/adjust [post]
func (h *IngredientsHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.ledger.Adjust(c.Request.Context(), actorID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Movements godoc
// @Summary      Stock ledger for one ingredient
// @Description  Append-only movement history, newest first.
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "Ingredient UUID"
// @Param        type  query string false "IN | OUT | ADJUST"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 100)"
// @Success      200   {object} dto.MovementListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/ingredients/{id}/movements [get]
func (h *IngredientsHandler) Movements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.ledger.ListMovements(c.Request.Context(), &id, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AllMovements lists the ledger across every ingredient.
func (h *IngredientsHandler) AllMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.ledger.ListMovements(c.Request.Context(), nil, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
