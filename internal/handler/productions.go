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

type ProductionsHandler struct{ svc service.ProductionService }

func NewProductionsHandler(svc service.ProductionService) *ProductionsHandler {
	return &ProductionsHandler{svc: svc}
}

// Produce godoc
// @Summary      Record a cooking event
// @Description  Stores the production and writes one OUT movement per ingredient used, all in a single transaction. Stock may go negative.
// @Tags         productions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ProduceRequest true "Ingredients consumed"
// @Success      201  {object} dto.ProductionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/productions [post]
func (h *ProductionsHandler) Produce(c *gin.Context) {
	var req dto.ProduceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Produce(c.Request.Context(), actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductionsHandler) Get(c *gin.Context) {
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

// List godoc
// @Summary      List productions
// @Tags         productions
// @Produce      json
// @Security     BearerAuth
// @Param        date  query string false "Production date YYYY-MM-DD"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200   {object} dto.ProductionListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/productions [get]
func (h *ProductionsHandler) List(c *gin.Context) {
	var filter dto.ProductionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list productions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
