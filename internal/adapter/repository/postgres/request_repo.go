package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// uniqueViolation is the Postgres error code for a duplicate key
const uniqueViolation = "23505"

// requestRepository implements domain.RequestRepository
type requestRepository struct {
	db *DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *DB) domain.RequestRepository {
	return &requestRepository{db: db}
}

// CreateWallet inserts a wallet with a zero balance
func (r *requestRepository) CreateWallet(ctx context.Context, address domain.Address) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO wallets (address, balance) VALUES ($1, 0)`, address.String())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrWalletExists, address)
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// RecordRequest stores a request and, when it is done, credits the wallet in the same transaction
func (r *requestRepository) RecordRequest(ctx context.Context, address domain.Address, request *domain.RequestEntry) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO wallet_requests (id, address, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		request.ID,
		address.String(),
		request.Amount.String(),
		string(request.Status),
		request.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}

	if request.Status == domain.RequestStatusDone {
		result, err := dbTx.ExecContext(ctx,
			`UPDATE wallets SET balance = balance + $2 WHERE address = $1`,
			address.String(), request.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to credit wallet: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, address)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
