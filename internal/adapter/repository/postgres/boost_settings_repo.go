package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// boostSettingsRepository implements domain.BoostSettingsRepository
type boostSettingsRepository struct {
	db *DB
}

// NewBoostSettingsRepository creates a new boost settings repository
func NewBoostSettingsRepository(db *DB) domain.BoostSettingsRepository {
	return &boostSettingsRepository{db: db}
}

// Save creates or replaces the boost settings of an owner
func (r *boostSettingsRepository) Save(ctx context.Context, settings *domain.BoostSettings) error {
	query := `
		INSERT INTO boost_settings (owner_did, wallet_address, message, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_did) DO UPDATE
		SET wallet_address = EXCLUDED.wallet_address,
			message = EXCLUDED.message,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		settings.OwnerDID,
		settings.WalletAddress.String(),
		settings.Message.String(),
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save boost settings: %w", err)
	}

	return nil
}

// Get retrieves the boost settings of an owner
func (r *boostSettingsRepository) Get(ctx context.Context, ownerDID string) (*domain.BoostSettings, error) {
	query := `
		SELECT owner_did, wallet_address, message, updated_at
		FROM boost_settings
		WHERE owner_did = $1
	`

	var settings domain.BoostSettings
	var addressStr, message string
	err := r.db.QueryRowContext(ctx, query, ownerDID).Scan(
		&settings.OwnerDID,
		&addressStr,
		&message,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("boost settings not found for %s: %w", ownerDID, err)
		}
		return nil, fmt.Errorf("failed to get boost settings: %w", err)
	}

	if settings.WalletAddress, err = domain.ParseAddress(addressStr); err != nil {
		return nil, fmt.Errorf("failed to parse boost wallet address: %w", err)
	}

	// Stored messages were validated on save; read them back without a bound
	if settings.Message, err = domain.ParseDescription(message, 0); err != nil {
		return nil, fmt.Errorf("failed to parse boost message: %w", err)
	}

	return &settings, nil
}
