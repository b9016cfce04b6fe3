package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/metrics"
	"mollie-bridge/internal/models"
)

// Payment method codes carry the sales channel id in a fixed prefix,
// e.g. "mollie_payment_12_creditcard".
var channelIDPattern = regexp.MustCompile(`^mollie_payment_(\d+)_`)

// OrderFetcher is the remote collaborator that returns the provider's view
// of an order. Implemented by the Mollie client.
type OrderFetcher interface {
	GetOrder(ctx context.Context, channelID *int, shopReference string) (*models.MollieOrder, error)
}

// CallbackResult is the typed outcome of resolving one provider callback.
// The reason stays internal; only a generic message ever reaches the user.
type CallbackResult struct {
	Successful bool
	Reason     string
	ChannelID  *int
}

type CallbackService struct {
	orders  OrderFetcher
	log     *logger.Logger
	metrics *metrics.BridgeMetrics
}

func NewCallbackService(orders OrderFetcher, log *logger.Logger, bridgeMetrics *metrics.BridgeMetrics) *CallbackService {
	return &CallbackService{
		orders:  orders,
		log:     log,
		metrics: bridgeMetrics,
	}
}

// Resolve classifies a provider callback for the given transaction. Every
// path terminates in a result; resolution never lets an error escape, since
// the HTTP layer must always answer with a redirect. Re-invocation is safe:
// no local state is mutated here.
func (s *CallbackService) Resolve(ctx context.Context, transaction *models.PaymentTransaction) (result CallbackResult) {
	started := time.Now()
	defer func() {
		if recovered := recover(); recovered != nil {
			s.log.Error("CALLBACK", fmt.Sprintf("Recovered from panic during resolution: %v", recovered))
			result = s.failure(result.ChannelID, fmt.Sprintf("unexpected error: %v", recovered))
		}
		s.metrics.CallbackDuration.Observe(time.Since(started).Seconds())
	}()

	channelID := ChannelIDFromMethod(transaction.PaymentMethod)
	result.ChannelID = channelID

	if transaction.EntityIdentifier == "" {
		s.log.LogCallback("REJECT", transaction.AccessIdentifier, "Transaction has no entity identifier")
		return s.failure(channelID, "transaction has no entity identifier")
	}

	order, err := s.orders.GetOrder(ctx, channelID, transaction.EntityIdentifier)
	if err != nil {
		// Auth, transport, malformed response: all collapse into the
		// failure path here, the kind is only kept for observability.
		s.metrics.RemoteFetchFailuresTotal.Inc()
		s.log.Error("CALLBACK", fmt.Sprintf("Order fetch for %s failed: %v", transaction.EntityIdentifier, err))
		return s.failure(channelID, fmt.Sprintf("order fetch failed: %v", err))
	}

	if !order.IsSuccessful() {
		s.log.LogCallback("FAILED", transaction.EntityIdentifier, "Order has failed or canceled payments")
		return s.failure(channelID, "order has failed or canceled payments")
	}

	s.log.LogCallback("SUCCESS", transaction.EntityIdentifier, "Order classified as successful")
	s.metrics.CallbacksTotal.WithLabelValues("success").Inc()

	return CallbackResult{Successful: true, ChannelID: channelID}
}

func (s *CallbackService) failure(channelID *int, reason string) CallbackResult {
	s.metrics.CallbacksTotal.WithLabelValues("failure").Inc()
	return CallbackResult{Successful: false, Reason: reason, ChannelID: channelID}
}

// ChannelIDFromMethod extracts the sales channel id from a payment method
// code. Codes without the prefix yield nil, meaning no context override.
func ChannelIDFromMethod(paymentMethod string) *int {
	matches := channelIDPattern.FindStringSubmatch(paymentMethod)
	if matches == nil {
		return nil
	}

	channelID, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil
	}

	return &channelID
}
