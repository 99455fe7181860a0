package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/petroerp/backend/internal/application/trade"
)

// ContractHandler handles contract endpoints
type ContractHandler struct {
	BaseHandler
	contractService *tradeapp.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *tradeapp.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create handles POST /api/v1/contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var req tradeapp.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.contractService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	resp, err := h.contractService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/contracts
func (h *ContractHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.contractService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Activate handles POST /api/v1/contracts/:id/activate
func (h *ContractHandler) Activate(c *gin.Context) {
	h.transition(c, h.contractService.Activate)
}

// Complete handles POST /api/v1/contracts/:id/complete
func (h *ContractHandler) Complete(c *gin.Context) {
	h.transition(c, h.contractService.Complete)
}

// Cancel handles POST /api/v1/contracts/:id/cancel
func (h *ContractHandler) Cancel(c *gin.Context) {
	h.transition(c, h.contractService.Cancel)
}

func (h *ContractHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*tradeapp.ContractResponse, error)) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	resp, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ShipmentHandler handles shipment endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *tradeapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *tradeapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// Nominate handles POST /api/v1/shipments
func (h *ShipmentHandler) Nominate(c *gin.Context) {
	var req tradeapp.NominateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.shipmentService.Nominate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/shipments/:id
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}
	resp, err := h.shipmentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByContract handles GET /api/v1/contracts/:id/shipments
func (h *ShipmentHandler) ListByContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	items, err := h.shipmentService.ListByContract(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// RecordLoading handles POST /api/v1/shipments/:id/load
func (h *ShipmentHandler) RecordLoading(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}
	var req tradeapp.RecordLoadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.shipmentService.RecordLoading(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordDischarge handles POST /api/v1/shipments/:id/discharge
func (h *ShipmentHandler) RecordDischarge(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}
	var req tradeapp.RecordDischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.shipmentService.RecordDischarge(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /api/v1/shipments/:id/cancel
func (h *ShipmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}
	resp, err := h.shipmentService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
