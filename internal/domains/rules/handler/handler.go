package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"replenish-backend/internal/domains/rules/model"
	"replenish-backend/internal/domains/rules/service"
	"replenish-backend/internal/shared/response"
)

type Handler struct {
	svc service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// CreateTemplate creates a new planning rules template
// POST /rules
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req model.SaveRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rules, fieldErrs, err := h.svc.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to create rules template")
		return
	}
	if len(fieldErrs) > 0 {
		response.UnprocessableEntity(c, "Planning rules failed validation", fieldErrs)
		return
	}

	response.Success(c, http.StatusCreated, rules)
}

// UpdateTemplate updates an existing template
// PUT /rules/:id
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	var req model.SaveRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rules, fieldErrs, err := h.svc.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, model.ErrRulesNotFound) {
			response.NotFound(c, "Rules template not found")
			return
		}
		response.InternalServerError(c, "Failed to update rules template")
		return
	}
	if len(fieldErrs) > 0 {
		response.UnprocessableEntity(c, "Planning rules failed validation", fieldErrs)
		return
	}

	response.Success(c, http.StatusOK, rules)
}

// GetTemplate fetches one template
// GET /rules/:id
func (h *Handler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	rules, err := h.svc.GetTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrRulesNotFound) {
			response.NotFound(c, "Rules template not found")
			return
		}
		response.InternalServerError(c, "Failed to get rules template")
		return
	}

	response.Success(c, http.StatusOK, rules)
}

// ListTemplates lists all templates
// GET /rules
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.svc.ListTemplates(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list rules templates")
		return
	}

	response.Success(c, http.StatusOK, templates)
}

// GetActive returns the active template
// GET /rules/active
func (h *Handler) GetActive(c *gin.Context) {
	rules, err := h.svc.GetActive(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrNoActiveRules) {
			response.NotFound(c, "No active rules template")
			return
		}
		response.InternalServerError(c, "Failed to get active rules template")
		return
	}

	response.Success(c, http.StatusOK, rules)
}

// Activate marks a template as the active one
// POST /rules/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.svc.Activate(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrRulesNotFound) {
			response.NotFound(c, "Rules template not found")
			return
		}
		response.InternalServerError(c, "Failed to activate rules template")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"activated": id})
}
