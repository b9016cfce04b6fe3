package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/metrics"
	"mollie-bridge/internal/models"
	"mollie-bridge/internal/mollie"
	"mollie-bridge/internal/storage"
)

// CustomerAPI is the remote collaborator for provider-side customer
// records. Implemented by the Mollie client.
type CustomerAPI interface {
	CreateCustomer(ctx context.Context, channelID *int, customer *models.MollieCustomer) (*models.MollieCustomer, error)
	DeleteCustomer(ctx context.Context, channelID *int, mollieReference string) error
}

// CustomerService keeps the 1:1 mapping between shop customers and
// provider customers so repeat checkouts skip customer creation.
//
// Creation treats a provider "unprocessable" rejection as an expected
// soft-failure (some customers are simply not eligible) while deletion
// propagates the same error class. That asymmetry is intentional:
// creation is an optimization, erasure is an obligation.
type CustomerService struct {
	store   storage.Store
	api     CustomerAPI
	log     *logger.Logger
	metrics *metrics.BridgeMetrics
}

func NewCustomerService(store storage.Store, api CustomerAPI, log *logger.Logger, bridgeMetrics *metrics.BridgeMetrics) *CustomerService {
	return &CustomerService{
		store:   store,
		api:     api,
		log:     log,
		metrics: bridgeMetrics,
	}
}

// CreateOrGetCustomer returns the provider reference for the shop
// customer, creating the provider-side record on first use. An existing
// mapping short-circuits without any remote call. A provider
// "unprocessable" rejection returns an empty reference with no error and
// nothing persisted.
func (s *CustomerService) CreateOrGetCustomer(ctx context.Context, channelID *int, customer *models.MollieCustomer, shopReference string) (string, error) {
	existing, err := s.store.GetCustomerReferenceByShopReference(shopReference)
	if err == nil {
		s.log.LogCustomer("CACHED", shopReference, fmt.Sprintf("Reusing provider customer %s", existing.MollieReference))
		s.metrics.CustomerCreationsTotal.WithLabelValues("cached").Inc()
		return existing.MollieReference, nil
	}
	if !errors.Is(err, storage.ErrCustomerReferenceNotFound) {
		return "", err
	}

	created, err := s.api.CreateCustomer(ctx, channelID, customer)
	if err != nil {
		if errors.Is(err, mollie.ErrUnprocessable) {
			s.log.LogCustomer("REJECTED", shopReference, "Provider declined customer creation, proceeding without a customer")
			s.metrics.CustomerCreationsTotal.WithLabelValues("rejected").Inc()
			return "", nil
		}
		return "", err
	}

	payload, err := json.Marshal(created)
	if err != nil {
		return "", fmt.Errorf("failed to encode customer snapshot: %w", err)
	}

	reference := &models.CustomerReference{
		ShopReference:   shopReference,
		MollieReference: created.ID,
		Payload:         string(payload),
	}

	if err := s.store.SaveCustomerReference(reference); err != nil {
		if errors.Is(err, storage.ErrDuplicateReference) {
			// Lost the create-if-absent race; the winner's mapping stands.
			winner, readErr := s.store.GetCustomerReferenceByShopReference(shopReference)
			if readErr != nil {
				return "", readErr
			}
			s.log.LogCustomer("RACE", shopReference, fmt.Sprintf("Concurrent creation detected, keeping %s", winner.MollieReference))
			return winner.MollieReference, nil
		}
		return "", err
	}

	s.log.LogCustomer("CREATED", shopReference, fmt.Sprintf("Provider customer %s mapped", created.ID))
	s.metrics.CustomerCreationsTotal.WithLabelValues("created").Inc()

	return created.ID, nil
}

// GetSavedCustomerID is a pure local lookup; it never calls the provider.
// An absent mapping yields an empty reference, not an error.
func (s *CustomerService) GetSavedCustomerID(shopReference string) (string, error) {
	reference, err := s.store.GetCustomerReferenceByShopReference(shopReference)
	if err != nil {
		if errors.Is(err, storage.ErrCustomerReferenceNotFound) {
			return "", nil
		}
		return "", err
	}

	return reference.MollieReference, nil
}

// GetShopReference resolves the reverse mapping, from a provider customer
// back to the shop customer it was created for.
func (s *CustomerService) GetShopReference(mollieReference string) (string, error) {
	reference, err := s.store.GetCustomerReferenceByMollieReference(mollieReference)
	if err != nil {
		if errors.Is(err, storage.ErrCustomerReferenceNotFound) {
			return "", nil
		}
		return "", err
	}

	return reference.ShopReference, nil
}

// RemoveCustomer deletes the provider-side customer first, then the local
// mapping. Remote errors propagate and keep the local row, so a failed
// erasure stays visible and retryable. Without a mapping this is a no-op
// with zero remote calls.
func (s *CustomerService) RemoveCustomer(ctx context.Context, channelID *int, shopReference string) error {
	reference, err := s.store.GetCustomerReferenceByShopReference(shopReference)
	if err != nil {
		if errors.Is(err, storage.ErrCustomerReferenceNotFound) {
			return s.store.DeleteCustomerReference(shopReference)
		}
		return err
	}

	if err := s.api.DeleteCustomer(ctx, channelID, reference.MollieReference); err != nil {
		s.log.Error("CUSTOMER", fmt.Sprintf("Provider delete for %s failed: %v", shopReference, err))
		return err
	}

	if err := s.store.DeleteCustomerReference(shopReference); err != nil {
		return err
	}

	s.log.LogCustomer("REMOVED", shopReference, fmt.Sprintf("Provider customer %s removed", reference.MollieReference))
	s.metrics.CustomerDeletionsTotal.Inc()

	return nil
}
