package storage

import (
	"errors"

	"mollie-bridge/internal/models"
)

var (
	ErrTransactionNotFound       = errors.New("payment transaction not found")
	ErrDuplicateReference        = errors.New("customer reference already exists")
	ErrCustomerReferenceNotFound = errors.New("customer reference not found")
	ErrMethodSettingsNotFound    = errors.New("payment method settings not found")
)

type Store interface {
	// Transactions are created by the host platform; read-only here.
	GetTransactionByAccessID(accessIdentifier string) (*models.PaymentTransaction, error)

	// Customer reference mapping, keyed by shop reference (unique).
	SaveCustomerReference(reference *models.CustomerReference) error
	GetCustomerReferenceByShopReference(shopReference string) (*models.CustomerReference, error)
	GetCustomerReferenceByMollieReference(mollieReference string) (*models.CustomerReference, error)
	DeleteCustomerReference(shopReference string) error

	// Method settings are edited by administrators; read-only here.
	GetMethodSettings(mollieID string) (*models.PaymentMethodSettings, error)
	ListMethodSettings() ([]*models.PaymentMethodSettings, error)

	HealthCheck() error
	Close() error
}
