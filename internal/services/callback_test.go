package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/metrics"
	"mollie-bridge/internal/models"
	"mollie-bridge/internal/services"
)

type MockOrderFetcher struct {
	mock.Mock
}

func (m *MockOrderFetcher) GetOrder(ctx context.Context, channelID *int, shopReference string) (*models.MollieOrder, error) {
	args := m.Called(ctx, channelID, shopReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MollieOrder), args.Error(1)
}

func newCallbackService(fetcher services.OrderFetcher) *services.CallbackService {
	return services.NewCallbackService(fetcher, logger.NewLogger(), metrics.NewBridgeMetrics(prometheus.NewRegistry()))
}

func orderWithPayments(statuses ...models.MolliePaymentStatus) *models.MollieOrder {
	order := &models.MollieOrder{ID: "ord_1"}
	for i, status := range statuses {
		order.Embedded.Payments = append(order.Embedded.Payments, models.MolliePayment{
			ID:     string(rune('a' + i)),
			Status: status,
		})
	}
	return order
}

func TestResolveWithoutEntityIdentifierSkipsRemote(t *testing.T) {
	fetcher := new(MockOrderFetcher)
	service := newCallbackService(fetcher)

	transaction := &models.PaymentTransaction{
		AccessIdentifier: "abc-123",
		PaymentMethod:    "mollie_payment_1_creditcard",
	}

	result := service.Resolve(context.Background(), transaction)

	assert.False(t, result.Successful)
	assert.NotEmpty(t, result.Reason)
	fetcher.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveClassification(t *testing.T) {
	tests := []struct {
		name       string
		order      *models.MollieOrder
		successful bool
	}{
		{"no payments", orderWithPayments(), true},
		{"single paid", orderWithPayments(models.MolliePaymentPaid), true},
		{"single failed", orderWithPayments(models.MolliePaymentFailed), false},
		{"single canceled", orderWithPayments(models.MolliePaymentCanceled), false},
		{"paid then failed", orderWithPayments(models.MolliePaymentPaid, models.MolliePaymentFailed), false},
		{"many successful", orderWithPayments(models.MolliePaymentPaid, models.MolliePaymentAuthorized, models.MolliePaymentOpen), true},
		{"one canceled among many", orderWithPayments(models.MolliePaymentPaid, models.MolliePaymentCanceled, models.MolliePaymentPaid), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockOrderFetcher)
			fetcher.On("GetOrder", mock.Anything, mock.Anything, "order-55").Return(tt.order, nil)

			service := newCallbackService(fetcher)
			transaction := &models.PaymentTransaction{
				AccessIdentifier: "abc-123",
				EntityIdentifier: "order-55",
				PaymentMethod:    "mollie_payment_1_creditcard",
			}

			result := service.Resolve(context.Background(), transaction)

			assert.Equal(t, tt.successful, result.Successful)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestResolveRemoteFailureRoutesToErrorPath(t *testing.T) {
	fetcher := new(MockOrderFetcher)
	fetcher.On("GetOrder", mock.Anything, mock.Anything, "order-55").
		Return(nil, errors.New("connection refused"))

	service := newCallbackService(fetcher)
	transaction := &models.PaymentTransaction{
		AccessIdentifier: "abc-123",
		EntityIdentifier: "order-55",
		PaymentMethod:    "mollie_payment_3_ideal",
	}

	result := service.Resolve(context.Background(), transaction)

	assert.False(t, result.Successful)
	assert.Contains(t, result.Reason, "order fetch failed")
}

func TestResolvePassesChannelContext(t *testing.T) {
	fetcher := new(MockOrderFetcher)
	fetcher.On("GetOrder", mock.Anything, mock.MatchedBy(func(channelID *int) bool {
		return channelID != nil && *channelID == 42
	}), "order-9").Return(orderWithPayments(models.MolliePaymentPaid), nil)

	service := newCallbackService(fetcher)
	transaction := &models.PaymentTransaction{
		AccessIdentifier: "abc-123",
		EntityIdentifier: "order-9",
		PaymentMethod:    "mollie_payment_42_banktransfer",
	}

	result := service.Resolve(context.Background(), transaction)

	require.True(t, result.Successful)
	require.NotNil(t, result.ChannelID)
	assert.Equal(t, 42, *result.ChannelID)
	fetcher.AssertExpectations(t)
}

func TestChannelIDFromMethod(t *testing.T) {
	tests := []struct {
		method  string
		want    *int
		wantNil bool
	}{
		{method: "mollie_payment_12_creditcard", want: intPtr(12)},
		{method: "mollie_payment_1_", want: intPtr(1)},
		{method: "creditcard", wantNil: true},
		{method: "mollie_payment__creditcard", wantNil: true},
		{method: "xmollie_payment_5_ideal", wantNil: true},
		{method: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := services.ChannelIDFromMethod(tt.method)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func intPtr(v int) *int { return &v }
