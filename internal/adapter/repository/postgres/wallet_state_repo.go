package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// walletStateRepository implements domain.WalletStateRepository
type walletStateRepository struct {
	db *DB
}

// NewWalletStateRepository creates a new wallet state repository
func NewWalletStateRepository(db *DB) domain.WalletStateRepository {
	return &walletStateRepository{db: db}
}

// GetState retrieves the balance and the full history of a wallet
func (r *walletStateRepository) GetState(ctx context.Context, address domain.Address) (*domain.WalletState, error) {
	var balanceStr string
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM wallets WHERE address = $1`, address.String()).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, address)
		}
		return nil, fmt.Errorf("failed to get wallet balance: %w", err)
	}

	balance, err := domain.ParseAmount(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}

	state := &domain.WalletState{Address: address, Balance: balance}

	if state.Requests, err = r.listRequests(ctx, address); err != nil {
		return nil, err
	}
	if state.Boosts, err = r.listBoosts(ctx, address); err != nil {
		return nil, err
	}
	if state.Transfers, err = r.listTransfers(ctx, address); err != nil {
		return nil, err
	}

	return state, nil
}

func (r *walletStateRepository) listRequests(ctx context.Context, address domain.Address) ([]domain.RequestEntry, error) {
	query := `
		SELECT id, amount, status, created_at
		FROM wallet_requests
		WHERE address = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, address.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.RequestEntry
	for rows.Next() {
		var entry domain.RequestEntry
		var amountStr string
		if err := rows.Scan(&entry.ID, &amountStr, &entry.Status, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		if entry.Amount, err = domain.ParseAmount(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse request amount: %w", err)
		}
		requests = append(requests, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return requests, nil
}

func (r *walletStateRepository) listBoosts(ctx context.Context, address domain.Address) ([]domain.BoostEntry, error) {
	query := `
		SELECT id, counterparty, direction, amount, username, post_id, created_at
		FROM wallet_boosts
		WHERE address = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, address.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query boosts: %w", err)
	}
	defer rows.Close()

	var boosts []domain.BoostEntry
	for rows.Next() {
		var entry domain.BoostEntry
		var amountStr string
		if err := rows.Scan(
			&entry.ID,
			&entry.CounterpartyAddress,
			&entry.Direction,
			&amountStr,
			&entry.Username,
			&entry.PostID,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan boost: %w", err)
		}
		if entry.Amount, err = domain.ParseAmount(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse boost amount: %w", err)
		}
		boosts = append(boosts, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating boosts: %w", err)
	}

	return boosts, nil
}

func (r *walletStateRepository) listTransfers(ctx context.Context, address domain.Address) ([]domain.TransferEntry, error) {
	query := `
		SELECT id, counterparty, direction, amount, cost, description, created_at
		FROM wallet_transfers
		WHERE address = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, address.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.TransferEntry
	for rows.Next() {
		var entry domain.TransferEntry
		var amountStr, costStr string
		if err := rows.Scan(
			&entry.ID,
			&entry.CounterpartyAddress,
			&entry.Direction,
			&amountStr,
			&costStr,
			&entry.Description,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		if entry.Amount, err = domain.ParseAmount(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse transfer amount: %w", err)
		}
		if entry.Cost, err = domain.ParseAmount(costStr); err != nil {
			return nil, fmt.Errorf("failed to parse transfer cost: %w", err)
		}
		transfers = append(transfers, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}

	return transfers, nil
}
