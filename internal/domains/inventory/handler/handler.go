package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"replenish-backend/internal/domains/inventory/model"
	"replenish-backend/internal/domains/inventory/service"
	"replenish-backend/internal/shared/response"
)

type Handler struct {
	svc service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// ImportStocks accepts an xlsx stock snapshot upload
// POST /inventory/import
func (h *Handler) ImportStocks(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.svc.ImportStocks(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidImportFile),
			errors.Is(err, model.ErrMissingColumn),
			errors.Is(err, model.ErrEmptyImportFile):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to import stock snapshot")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetWarehouseStock returns one SKU's warehouse position
// GET /inventory/:sku
func (h *Handler) GetWarehouseStock(c *gin.Context) {
	sku := c.Param("sku")

	stock, err := h.svc.GetWarehouseStock(c.Request.Context(), sku)
	if err != nil {
		if errors.Is(err, model.ErrStockNotFound) {
			response.NotFound(c, "No stock record for SKU")
			return
		}
		response.InternalServerError(c, "Failed to get warehouse stock")
		return
	}

	response.Success(c, http.StatusOK, stock)
}
