package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/metrics"
	"mollie-bridge/internal/models"
	"mollie-bridge/internal/mollie"
	"mollie-bridge/internal/services"
	"mollie-bridge/internal/storage"
)

type stubCustomerAPI struct {
	created   *models.MollieCustomer
	createErr error
	deleteErr error
}

func (s *stubCustomerAPI) CreateCustomer(ctx context.Context, channelID *int, customer *models.MollieCustomer) (*models.MollieCustomer, error) {
	return s.created, s.createErr
}

func (s *stubCustomerAPI) DeleteCustomer(ctx context.Context, channelID *int, mollieReference string) error {
	return s.deleteErr
}

func newCustomerRouter(store *storage.InMemoryStore, api services.CustomerAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.NewLogger()
	service := services.NewCustomerService(store, api, log, metrics.NewBridgeMetrics(prometheus.NewRegistry()))
	handler := NewCustomerHandler(service)

	router := gin.New()
	router.POST("/api/v1/customers", handler.CreateOrGet)
	router.GET("/api/v1/customers/:shopReference", handler.GetSaved)
	router.DELETE("/api/v1/customers/:shopReference", handler.Remove)

	return router
}

func TestCreateOrGetReturnsMapping(t *testing.T) {
	store := storage.NewInMemoryStore()
	api := &stubCustomerAPI{created: &models.MollieCustomer{ID: "cst_1", Name: "Jane Doe"}}

	router := newCustomerRouter(store, api)

	body := `{"shop_reference":"shop-1","customer":{"name":"Jane Doe","email":"jane@example.com"}}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cst_1")

	stored, err := store.GetCustomerReferenceByShopReference("shop-1")
	require.NoError(t, err)
	assert.Equal(t, "cst_1", stored.MollieReference)
}

func TestCreateOrGetRequiresShopReference(t *testing.T) {
	router := newCustomerRouter(storage.NewInMemoryStore(), &stubCustomerAPI{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{"customer":{"name":"Jane"}}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetSavedWithoutMapping(t *testing.T) {
	router := newCustomerRouter(storage.NewInMemoryStore(), &stubCustomerAPI{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/customers/shop-9", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetSavedReturnsMapping(t *testing.T) {
	store := storage.NewInMemoryStore()
	require.NoError(t, store.SaveCustomerReference(&models.CustomerReference{
		ShopReference:   "shop-2",
		MollieReference: "cst_2",
	}))

	router := newCustomerRouter(store, &stubCustomerAPI{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/customers/shop-2", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cst_2")
}

func TestRemoveProviderAuthFailureIsBadGateway(t *testing.T) {
	store := storage.NewInMemoryStore()
	require.NoError(t, store.SaveCustomerReference(&models.CustomerReference{
		ShopReference:   "shop-4",
		MollieReference: "cst_4",
	}))

	router := newCustomerRouter(store, &stubCustomerAPI{deleteErr: mollie.ErrAuthentication})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/shop-4", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)

	_, err := store.GetCustomerReferenceByShopReference("shop-4")
	assert.NoError(t, err)
}

func TestRemoveDeletesMapping(t *testing.T) {
	store := storage.NewInMemoryStore()
	require.NoError(t, store.SaveCustomerReference(&models.CustomerReference{
		ShopReference:   "shop-3",
		MollieReference: "cst_3",
	}))

	router := newCustomerRouter(store, &stubCustomerAPI{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/shop-3", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	_, err := store.GetCustomerReferenceByShopReference("shop-3")
	assert.ErrorIs(t, err, storage.ErrCustomerReferenceNotFound)
}
