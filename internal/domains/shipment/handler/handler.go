package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	rulesModel "replenish-backend/internal/domains/rules/model"
	"replenish-backend/internal/domains/shipment/model"
	"replenish-backend/internal/domains/shipment/service"
	"replenish-backend/internal/shared/response"
)

type Handler struct {
	svc service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GeneratePlan calculates and stores a plan from current data
// POST /plans
func (h *Handler) GeneratePlan(c *gin.Context) {
	// An empty body means "plan the whole active catalog".
	var req model.CalculatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	plan, err := h.svc.GeneratePlan(c.Request.Context(), req.SKUs)
	if err != nil {
		if errors.Is(err, rulesModel.ErrNoActiveRules) {
			response.Conflict(c, "No active rules template; activate one before planning")
			return
		}
		response.InternalServerError(c, "Failed to generate shipment plan")
		return
	}

	response.Success(c, http.StatusCreated, plan)
}

// GetPlan fetches a stored plan
// GET /plans/:id
func (h *Handler) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrPlanNotFound) {
			response.NotFound(c, "Shipment plan not found")
			return
		}
		response.InternalServerError(c, "Failed to get shipment plan")
		return
	}

	response.Success(c, http.StatusOK, plan)
}

// AdjustLine overrides one line's final quantity
// PATCH /plans/:id/lines/:sku
func (h *Handler) AdjustLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid plan ID")
		return
	}
	sku := c.Param("sku")

	var req model.AdjustLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	plan, err := h.svc.AdjustLine(c.Request.Context(), id, sku, *req.NewQuantity)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlanNotFound):
			response.NotFound(c, "Shipment plan not found")
		case errors.Is(err, model.ErrLineNotFound):
			response.NotFound(c, "Plan has no line for this SKU")
		case errors.Is(err, model.ErrNegativeQuantity):
			response.UnprocessableEntity(c, "Quantity cannot be negative", nil)
		default:
			if exceeds, ok := model.IsExceedsSafetyStock(err); ok {
				response.UnprocessableEntity(c, exceeds.Error(), gin.H{"max_allowed": exceeds.Max})
				return
			}
			response.InternalServerError(c, "Failed to adjust plan line")
		}
		return
	}

	response.Success(c, http.StatusOK, plan)
}

// ExportPlan streams a plan export in the requested format
// GET /plans/:id/export?format=csv|xlsx
func (h *Handler) ExportPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid plan ID")
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		data, filename, err := h.svc.ExportCSV(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, model.ErrPlanNotFound) {
				response.NotFound(c, "Shipment plan not found")
				return
			}
			response.InternalServerError(c, "Failed to export shipment plan")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", data)

	case "xlsx":
		f, filename, err := h.svc.ExportExcel(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, model.ErrPlanNotFound) {
				response.NotFound(c, "Shipment plan not found")
				return
			}
			response.InternalServerError(c, "Failed to export shipment plan")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			response.InternalServerError(c, "Failed to stream export file")
		}

	default:
		response.BadRequest(c, "Unsupported export format, use csv or xlsx")
	}
}
