package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"replenish-backend/internal/domains/allocation/service"
	rulesModel "replenish-backend/internal/domains/rules/model"
	rulesService "replenish-backend/internal/domains/rules/service"
	"replenish-backend/internal/shared/response"
)

type Handler struct {
	svc   service.ServiceInterface
	rules rulesService.ServiceInterface
}

func NewHandler(svc service.ServiceInterface, rules rulesService.ServiceInterface) *Handler {
	return &Handler{svc: svc, rules: rules}
}

// RunAllocation runs the FBA allocation engine over current data
// POST /allocations/run
func (h *Handler) RunAllocation(c *gin.Context) {
	rules, err := h.rules.GetActive(c.Request.Context())
	if err != nil {
		if errors.Is(err, rulesModel.ErrNoActiveRules) {
			response.Conflict(c, "Activate a planning rules template first")
			return
		}
		response.InternalServerError(c, "Failed to load planning rules")
		return
	}

	result, err := h.svc.RunAllocation(c.Request.Context(), rules.LookBackDays)
	if err != nil {
		response.InternalServerError(c, "Failed to run allocation")
		return
	}

	response.Success(c, http.StatusOK, result)
}
