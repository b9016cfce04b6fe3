package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"mollie-bridge/internal/events"
	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/models"
	"mollie-bridge/internal/services"
	"mollie-bridge/internal/storage"
	"mollie-bridge/internal/utils"
)

const paymentErrorNote = "Your payment could not be processed. Please try again."

var accessIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// FlashStore keeps user-visible notes per shop session.
type FlashStore interface {
	AddNote(sessionID, text string) error
	PopNote(sessionID string) (string, error)
}

type CallbackHandler struct {
	store         storage.Store
	callbacks     *services.CallbackService
	dispatcher    *events.Dispatcher
	flash         FlashStore
	completionURL string
	sessionCookie string
	log           *logger.Logger
}

func NewCallbackHandler(
	store storage.Store,
	callbacks *services.CallbackService,
	dispatcher *events.Dispatcher,
	flash FlashStore,
	completionURL string,
	sessionCookie string,
	log *logger.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		store:         store,
		callbacks:     callbacks,
		dispatcher:    dispatcher,
		flash:         flash,
		completionURL: completionURL,
		sessionCookie: sessionCookie,
		log:           log,
	}
}

// HandleReturn serves GET|POST /return/:accessIdentifier. Whatever happens
// during resolution, the shopper always ends up on a redirect (or a
// listener-supplied response), never an error page from this service.
func (h *CallbackHandler) HandleReturn(c *gin.Context) {
	accessIdentifier := c.Param("accessIdentifier")
	if !accessIdentifierPattern.MatchString(accessIdentifier) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid access identifier", ""))
		return
	}

	transaction, err := h.store.GetTransactionByAccessID(accessIdentifier)
	if err != nil {
		h.log.LogCallback("UNKNOWN", accessIdentifier, "No transaction for access identifier")
		h.finish(c, nil, services.CallbackResult{Successful: false, Reason: "unknown access identifier"})
		return
	}

	result := h.callbacks.Resolve(c.Request.Context(), transaction)
	h.finish(c, transaction, result)
}

func (h *CallbackHandler) finish(c *gin.Context, transaction *models.PaymentTransaction, result services.CallbackResult) {
	eventType := models.EventCallbackReturn
	if !result.Successful {
		eventType = models.EventCallbackError
		h.addErrorNote(c)
	}

	event := &models.CallbackEvent{
		Type:        eventType,
		ChannelID:   result.ChannelID,
		Transaction: transaction,
		Reason:      result.Reason,
		Timestamp:   time.Now(),
	}
	if transaction != nil {
		event.PaymentMethod = transaction.PaymentMethod
	}

	if response := h.dispatcher.Dispatch(event); response != nil {
		if response.RedirectURL != "" {
			c.Redirect(http.StatusFound, response.RedirectURL)
			return
		}
		c.String(response.StatusCode, response.Body)
		return
	}

	c.Redirect(http.StatusFound, h.completionURL)
}

// addErrorNote records the generic failure message when the request
// carries a shop session. Internal failure reasons never reach the user.
func (h *CallbackHandler) addErrorNote(c *gin.Context) {
	sessionID, err := c.Cookie(h.sessionCookie)
	if err != nil || sessionID == "" {
		return
	}

	if err := h.flash.AddNote(sessionID, paymentErrorNote); err != nil {
		h.log.Error("FLASH", fmt.Sprintf("Failed to store error note for session %s: %v", sessionID, err))
	}
}

// GetNotes lets the storefront poll and clear the session's flash note.
func (h *CallbackHandler) GetNotes(c *gin.Context) {
	sessionID, err := c.Cookie(h.sessionCookie)
	if err != nil || sessionID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	note, err := h.flash.PopNote(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read notes", err.Error()))
		return
	}
	if note == "" {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Notes retrieved", gin.H{"message": note}))
}
