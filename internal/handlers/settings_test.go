package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mollie-bridge/internal/models"
	"mollie-bridge/internal/settings"
	"mollie-bridge/internal/storage"
)

func newSettingsRouter(store *storage.InMemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewSettingsHandler(store, settings.NewAssembler(nil))

	router := gin.New()
	router.GET("/api/v1/methods", handler.ListMethods)
	router.GET("/api/v1/methods/:id/form", handler.GetMethodForm)

	return router
}

func TestListMethods(t *testing.T) {
	store := storage.NewInMemoryStore()
	store.SeedMethodSettings(&models.PaymentMethodSettings{MollieID: "ideal", Enabled: true})
	store.SeedMethodSettings(&models.PaymentMethodSettings{MollieID: "creditcard", Enabled: true})

	router := newSettingsRouter(store)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/methods", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ideal")
	assert.Contains(t, recorder.Body.String(), "creditcard")
}

func TestGetMethodFormAssemblesFields(t *testing.T) {
	store := storage.NewInMemoryStore()
	store.SeedMethodSettings(&models.PaymentMethodSettings{
		MollieID:            "klarnapaylater",
		APIMethodRestricted: true,
		SurchargeRestricted: true,
	})

	router := newSettingsRouter(store)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/methods/klarnapaylater/form", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Method string           `json:"method"`
			Fields []settings.Field `json:"fields"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "klarnapaylater", body.Data.Method)
	require.NotEmpty(t, body.Data.Fields)

	names := make([]string, 0, len(body.Data.Fields))
	for _, field := range body.Data.Fields {
		names = append(names, field.Name)
	}
	assert.Contains(t, names, "orderExpiryDays")
	assert.NotContains(t, names, "surchargeType")
	assert.NotContains(t, names, "method")
}

func TestGetMethodFormUnknownMethod(t *testing.T) {
	router := newSettingsRouter(storage.NewInMemoryStore())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/methods/unknown/form", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
