package handler

import (
	"net/http"

	"github.com/ezazee/dapur-gempita-sub000/internal/apierror"
	"github.com/ezazee/dapur-gempita-sub000/internal/dto"
	"github.com/ezazee/dapur-gempita-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct{ svc service.AuditService }

func NewAuditHandler(svc service.AuditService) *AuditHandler { return &AuditHandler{svc: svc} }

// List godoc
// @Summary      Audit trail
// @Description  Workflow-level edit history (purchase amendments etc.), newest first. Stock changes live in the movement ledger, not here.
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        table     query string false "Filter by table"
// @Param        record_id query string false "Filter by record UUID"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Rows per page (default 50)"
// @Success      200       {object} dto.AuditLogListResponse
// @Failure      400       {object} apierror.APIError
// @Router       /v1/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	var filter dto.AuditLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list audit logs"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
