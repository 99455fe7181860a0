package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/petroerp/backend/internal/application/inventory"
)

// BatchHandler handles stock batch endpoints
type BatchHandler struct {
	BaseHandler
	batchService *inventoryapp.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batchService *inventoryapp.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Get handles GET /api/v1/batches/:id
func (h *BatchHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID")
		return
	}
	resp, err := h.batchService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/batches
func (h *BatchHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.batchService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListAvailable handles GET /api/v1/batches/available. The grade query
// parameter is required; only available batches are returned.
func (h *BatchHandler) ListAvailable(c *gin.Context) {
	grade := c.Query("grade")
	if grade == "" {
		h.BadRequest(c, "Missing grade query parameter")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	items, err := h.batchService.ListAvailableByGrade(c.Request.Context(), grade, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Draw handles POST /api/v1/batches/:id/draw
func (h *BatchHandler) Draw(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID")
		return
	}
	var req inventoryapp.DrawBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.batchService.Draw(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Adjust handles POST /api/v1/batches/:id/adjust
func (h *BatchHandler) Adjust(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID")
		return
	}
	var req inventoryapp.AdjustBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.batchService.Adjust(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Quarantine handles POST /api/v1/batches/:id/quarantine
func (h *BatchHandler) Quarantine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID")
		return
	}
	resp, err := h.batchService.Quarantine(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Release handles POST /api/v1/batches/:id/release
func (h *BatchHandler) Release(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID")
		return
	}
	resp, err := h.batchService.Release(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
