package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mollie-bridge/internal/models"
	"mollie-bridge/internal/mollie"
	"mollie-bridge/internal/services"
	"mollie-bridge/internal/utils"
)

type CustomerHandler struct {
	customers *services.CustomerService
}

func NewCustomerHandler(customers *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type createCustomerRequest struct {
	ShopReference string                `json:"shop_reference" binding:"required"`
	ChannelID     *int                  `json:"channel_id"`
	Customer      models.MollieCustomer `json:"customer"`
}

// CreateOrGet maps a shop customer to a provider customer, creating the
// provider record on first use. An empty mollie_reference in the response
// means the provider declined the customer; checkout proceeds without one.
func (h *CustomerHandler) CreateOrGet(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	mollieReference, err := h.customers.CreateOrGetCustomer(c.Request.Context(), req.ChannelID, &req.Customer, req.ShopReference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Customer creation failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Customer resolved", gin.H{
		"shop_reference":   req.ShopReference,
		"mollie_reference": mollieReference,
	}))
}

func (h *CustomerHandler) GetSaved(c *gin.Context) {
	shopReference := c.Param("shopReference")
	if shopReference == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Shop reference is required", ""))
		return
	}

	mollieReference, err := h.customers.GetSavedCustomerID(shopReference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to look up customer", err.Error()))
		return
	}
	if mollieReference == "" {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("No customer mapping", ""))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Customer retrieved", gin.H{
		"shop_reference":   shopReference,
		"mollie_reference": mollieReference,
	}))
}

// GetShopReference resolves a provider customer reference back to the shop
// customer it belongs to.
func (h *CustomerHandler) GetShopReference(c *gin.Context) {
	mollieReference := c.Param("mollieReference")
	if mollieReference == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Mollie reference is required", ""))
		return
	}

	shopReference, err := h.customers.GetShopReference(mollieReference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to look up customer", err.Error()))
		return
	}
	if shopReference == "" {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("No customer mapping", ""))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Customer retrieved", gin.H{
		"shop_reference":   shopReference,
		"mollie_reference": mollieReference,
	}))
}

// Remove erases the provider-side customer and the local mapping. Remote
// errors surface to the caller; the mapping is kept so the erasure can be
// retried.
func (h *CustomerHandler) Remove(c *gin.Context) {
	shopReference := c.Param("shopReference")
	if shopReference == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Shop reference is required", ""))
		return
	}

	var channelID *int
	if err := h.customers.RemoveCustomer(c.Request.Context(), channelID, shopReference); err != nil {
		if errors.Is(err, mollie.ErrAuthentication) {
			c.JSON(http.StatusBadGateway, utils.ErrorResponse("Provider authentication failed", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Customer removal failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Customer removed", gin.H{"shop_reference": shopReference}))
}
