package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"mollie-bridge/internal/config"
	"mollie-bridge/internal/logger"
	"mollie-bridge/internal/models"

	"github.com/go-sql-driver/mysql"
)

type MySQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  db,
		log: log,
	}

	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating tables if not exist")

	queries := []string{
		`
    CREATE TABLE IF NOT EXISTS payment_transactions (
        access_identifier VARCHAR(64) PRIMARY KEY,
        entity_identifier VARCHAR(64) NOT NULL DEFAULT '',
        payment_method VARCHAR(128) NOT NULL,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        INDEX idx_entity_identifier (entity_identifier)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `,
		`
    CREATE TABLE IF NOT EXISTS customer_references (
        shop_reference VARCHAR(64) NOT NULL,
        mollie_reference VARCHAR(64) NOT NULL,
        payload TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        UNIQUE KEY uniq_shop_reference (shop_reference),
        INDEX idx_mollie_reference (mollie_reference)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `,
		`
    CREATE TABLE IF NOT EXISTS payment_method_settings (
        mollie_id VARCHAR(64) PRIMARY KEY,
        description VARCHAR(255) NOT NULL DEFAULT '',
        enabled TINYINT(1) NOT NULL DEFAULT 0,
        image_path VARCHAR(255) NOT NULL DEFAULT '',
        original_image_path VARCHAR(255) NOT NULL DEFAULT '',
        api_method_restricted TINYINT(1) NOT NULL DEFAULT 0,
        surcharge_restricted TINYINT(1) NOT NULL DEFAULT 0,
        components_supported TINYINT(1) NOT NULL DEFAULT 0,
        single_click_supported TINYINT(1) NOT NULL DEFAULT 0,
        issuer_list_supported TINYINT(1) NOT NULL DEFAULT 0
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	s.log.LogDatabase("SUCCESS", "mysql", "Tables ready")
	return nil
}

func (s *MySQLStore) GetTransactionByAccessID(accessIdentifier string) (*models.PaymentTransaction, error) {
	s.log.LogDatabase("SELECT", "payment_transactions", fmt.Sprintf("Fetching transaction %s", accessIdentifier))

	query := `
    SELECT access_identifier, entity_identifier, payment_method, created_at
    FROM payment_transactions WHERE access_identifier = ?
    `

	transaction := &models.PaymentTransaction{}
	err := s.db.QueryRow(query, accessIdentifier).Scan(
		&transaction.AccessIdentifier, &transaction.EntityIdentifier, &transaction.PaymentMethod, &transaction.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			s.log.LogDatabase("NOT_FOUND", "payment_transactions", fmt.Sprintf("Transaction %s not found", accessIdentifier))
			return nil, ErrTransactionNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get transaction %s: %s", accessIdentifier, err.Error()))
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return transaction, nil
}

// SaveCustomerReference inserts the mapping. A unique key on shop_reference
// resolves the create-if-absent race: the loser gets ErrDuplicateReference
// and is expected to re-read the winner's row.
func (s *MySQLStore) SaveCustomerReference(reference *models.CustomerReference) error {
	s.log.LogDatabase("INSERT", "customer_references", fmt.Sprintf("Saving reference for shop customer %s", reference.ShopReference))

	query := `
    INSERT INTO customer_references (shop_reference, mollie_reference, payload)
    VALUES (?, ?, ?)
    `

	_, err := s.db.Exec(query, reference.ShopReference, reference.MollieReference, reference.Payload)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			s.log.LogDatabase("DUPLICATE", "customer_references", fmt.Sprintf("Reference for %s already exists", reference.ShopReference))
			return ErrDuplicateReference
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save reference for %s: %s", reference.ShopReference, err.Error()))
		return fmt.Errorf("failed to save customer reference: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "customer_references", fmt.Sprintf("Reference for %s saved", reference.ShopReference))
	return nil
}

func (s *MySQLStore) GetCustomerReferenceByShopReference(shopReference string) (*models.CustomerReference, error) {
	return s.getCustomerReference("shop_reference", shopReference)
}

func (s *MySQLStore) GetCustomerReferenceByMollieReference(mollieReference string) (*models.CustomerReference, error) {
	return s.getCustomerReference("mollie_reference", mollieReference)
}

func (s *MySQLStore) getCustomerReference(column, value string) (*models.CustomerReference, error) {
	s.log.LogDatabase("SELECT", "customer_references", fmt.Sprintf("Fetching reference by %s=%s", column, value))

	query := fmt.Sprintf(`
    SELECT shop_reference, mollie_reference, payload, created_at
    FROM customer_references WHERE %s = ?
    `, column)

	reference := &models.CustomerReference{}
	err := s.db.QueryRow(query, value).Scan(
		&reference.ShopReference, &reference.MollieReference, &reference.Payload, &reference.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			s.log.LogDatabase("NOT_FOUND", "customer_references", fmt.Sprintf("No reference for %s=%s", column, value))
			return nil, ErrCustomerReferenceNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get reference for %s=%s: %s", column, value, err.Error()))
		return nil, fmt.Errorf("failed to get customer reference: %w", err)
	}

	return reference, nil
}

func (s *MySQLStore) DeleteCustomerReference(shopReference string) error {
	s.log.LogDatabase("DELETE", "customer_references", fmt.Sprintf("Deleting reference for %s", shopReference))

	query := `DELETE FROM customer_references WHERE shop_reference = ?`

	if _, err := s.db.Exec(query, shopReference); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to delete reference for %s: %s", shopReference, err.Error()))
		return fmt.Errorf("failed to delete customer reference: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "customer_references", fmt.Sprintf("Reference for %s deleted", shopReference))
	return nil
}

func (s *MySQLStore) GetMethodSettings(mollieID string) (*models.PaymentMethodSettings, error) {
	s.log.LogDatabase("SELECT", "payment_method_settings", fmt.Sprintf("Fetching settings for method %s", mollieID))

	query := `
    SELECT mollie_id, description, enabled, image_path, original_image_path,
           api_method_restricted, surcharge_restricted, components_supported,
           single_click_supported, issuer_list_supported
    FROM payment_method_settings WHERE mollie_id = ?
    `

	settings := &models.PaymentMethodSettings{}
	err := s.db.QueryRow(query, mollieID).Scan(
		&settings.MollieID, &settings.Description, &settings.Enabled,
		&settings.ImagePath, &settings.OriginalImagePath,
		&settings.APIMethodRestricted, &settings.SurchargeRestricted, &settings.ComponentsSupported,
		&settings.SingleClickSupported, &settings.IssuerListSupported,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			s.log.LogDatabase("NOT_FOUND", "payment_method_settings", fmt.Sprintf("No settings for method %s", mollieID))
			return nil, ErrMethodSettingsNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get settings for %s: %s", mollieID, err.Error()))
		return nil, fmt.Errorf("failed to get method settings: %w", err)
	}

	return settings, nil
}

func (s *MySQLStore) ListMethodSettings() ([]*models.PaymentMethodSettings, error) {
	s.log.LogDatabase("SELECT", "payment_method_settings", "Listing method settings")

	query := `
    SELECT mollie_id, description, enabled, image_path, original_image_path,
           api_method_restricted, surcharge_restricted, components_supported,
           single_click_supported, issuer_list_supported
    FROM payment_method_settings ORDER BY mollie_id
    `

	rows, err := s.db.Query(query)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list method settings: "+err.Error())
		return nil, fmt.Errorf("failed to list method settings: %w", err)
	}
	defer rows.Close()

	var result []*models.PaymentMethodSettings
	for rows.Next() {
		settings := &models.PaymentMethodSettings{}
		err := rows.Scan(
			&settings.MollieID, &settings.Description, &settings.Enabled,
			&settings.ImagePath, &settings.OriginalImagePath,
			&settings.APIMethodRestricted, &settings.SurchargeRestricted, &settings.ComponentsSupported,
			&settings.SingleClickSupported, &settings.IssuerListSupported,
		)
		if err != nil {
			s.log.Error("DATABASE", "Failed to scan method settings row: "+err.Error())
			return nil, fmt.Errorf("failed to scan method settings: %w", err)
		}
		result = append(result, settings)
	}

	if err = rows.Err(); err != nil {
		s.log.Error("DATABASE", "Row iteration error: "+err.Error())
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}
