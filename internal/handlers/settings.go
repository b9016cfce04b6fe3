package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mollie-bridge/internal/settings"
	"mollie-bridge/internal/storage"
	"mollie-bridge/internal/utils"
)

type SettingsHandler struct {
	store     storage.Store
	assembler *settings.Assembler
}

func NewSettingsHandler(store storage.Store, assembler *settings.Assembler) *SettingsHandler {
	return &SettingsHandler{
		store:     store,
		assembler: assembler,
	}
}

// ListMethods returns the stored configuration of every method variant.
func (h *SettingsHandler) ListMethods(c *gin.Context) {
	methods, err := h.store.ListMethodSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list payment methods", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment methods retrieved", methods))
}

// GetMethodForm renders the admin form description for one method. The
// field set is a strict function of the stored restriction flags.
func (h *SettingsHandler) GetMethodForm(c *gin.Context) {
	mollieID := c.Param("id")
	if mollieID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Method ID is required", ""))
		return
	}

	methodSettings, err := h.store.GetMethodSettings(mollieID)
	if err != nil {
		if err == storage.ErrMethodSettingsNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Payment method not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to load payment method", err.Error()))
		return
	}

	fields := h.assembler.Assemble(methodSettings)

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment method form assembled", gin.H{
		"method": mollieID,
		"fields": fields,
	}))
}
