package storage

import (
	"sync"

	"mollie-bridge/internal/models"
)

// InMemoryStore backs tests and local runs without a database.
type InMemoryStore struct {
	transactions map[string]*models.PaymentTransaction
	references   map[string]*models.CustomerReference
	settings     map[string]*models.PaymentMethodSettings
	mutex        sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		transactions: make(map[string]*models.PaymentTransaction),
		references:   make(map[string]*models.CustomerReference),
		settings:     make(map[string]*models.PaymentMethodSettings),
	}
}

func (s *InMemoryStore) SeedTransaction(transaction *models.PaymentTransaction) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.transactions[transaction.AccessIdentifier] = transaction
}

func (s *InMemoryStore) SeedMethodSettings(settings *models.PaymentMethodSettings) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.settings[settings.MollieID] = settings
}

func (s *InMemoryStore) GetTransactionByAccessID(accessIdentifier string) (*models.PaymentTransaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	transaction, exists := s.transactions[accessIdentifier]
	if !exists {
		return nil, ErrTransactionNotFound
	}

	return transaction, nil
}

func (s *InMemoryStore) SaveCustomerReference(reference *models.CustomerReference) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.references[reference.ShopReference]; exists {
		return ErrDuplicateReference
	}

	s.references[reference.ShopReference] = reference
	return nil
}

func (s *InMemoryStore) GetCustomerReferenceByShopReference(shopReference string) (*models.CustomerReference, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	reference, exists := s.references[shopReference]
	if !exists {
		return nil, ErrCustomerReferenceNotFound
	}

	return reference, nil
}

func (s *InMemoryStore) GetCustomerReferenceByMollieReference(mollieReference string) (*models.CustomerReference, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, reference := range s.references {
		if reference.MollieReference == mollieReference {
			return reference, nil
		}
	}

	return nil, ErrCustomerReferenceNotFound
}

func (s *InMemoryStore) DeleteCustomerReference(shopReference string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.references, shopReference)
	return nil
}

func (s *InMemoryStore) GetMethodSettings(mollieID string) (*models.PaymentMethodSettings, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	settings, exists := s.settings[mollieID]
	if !exists {
		return nil, ErrMethodSettingsNotFound
	}

	return settings, nil
}

func (s *InMemoryStore) ListMethodSettings() ([]*models.PaymentMethodSettings, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var result []*models.PaymentMethodSettings
	for _, settings := range s.settings {
		result = append(result, settings)
	}

	return result, nil
}

func (s *InMemoryStore) HealthCheck() error { return nil }

func (s *InMemoryStore) Close() error { return nil }
