package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// transferRepository implements domain.TransferRepository
type transferRepository struct {
	db  *DB
	now func() time.Time
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *DB) domain.TransferRepository {
	return &transferRepository{db: db, now: time.Now}
}

// Submit moves funds between wallets in a single database transaction
// Logic:
//  1. Debit the sender by amount + cost, only if the balance covers it
//  2. Credit the receiver when it is a wallet known to this ledger
//  3. Record the movement in the history of each known side
func (r *transferRepository) Submit(ctx context.Context, req *domain.TransferRequest) (*domain.TransferReceipt, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	total := req.Amount.Add(req.Cost)

	// 1. Guarded debit
	debitQuery := `
		UPDATE wallets
		SET balance = balance - $2
		WHERE address = $1 AND balance >= $2
		RETURNING balance
	`

	var balanceStr string
	err = dbTx.QueryRowContext(ctx, debitQuery, req.From.String(), total.String()).Scan(&balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.debitFailure(ctx, dbTx, req.From)
		}
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}

	newBalance, err := domain.ParseAmount(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}

	// 2. Credit the receiver if it is ours
	result, err := dbTx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance + $2 WHERE address = $1`,
		req.To.String(), req.Amount.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to credit receiver: %w", err)
	}
	credited, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read credited rows: %w", err)
	}

	// 3. History rows
	id := req.ID.String()
	if err := r.insertHistory(ctx, dbTx, req, id, req.From, req.To, domain.DirectionOutgoing, req.Cost); err != nil {
		return nil, err
	}
	if credited > 0 {
		if err := r.insertHistory(ctx, dbTx, req, id, req.To, req.From, domain.DirectionIncoming, domain.ZeroAmount); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.TransferReceipt{
		ID:          req.ID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Cost:        req.Cost,
		NewBalance:  newBalance,
		FinalizedAt: r.now(),
	}, nil
}

// debitFailure tells an unknown sender apart from one that cannot cover the debit
func (r *transferRepository) debitFailure(ctx context.Context, dbTx *sql.Tx, address domain.Address) error {
	var exists bool
	err := dbTx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE address = $1)`, address.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check sender: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, address)
	}
	return fmt.Errorf("%w: %s cannot cover the transfer", domain.ErrInsufficientFunds, address)
}

func (r *transferRepository) insertHistory(
	ctx context.Context,
	dbTx *sql.Tx,
	req *domain.TransferRequest,
	id string,
	owner, counterparty domain.Address,
	direction domain.Direction,
	cost domain.Amount,
) error {
	var err error
	switch req.Kind {
	case domain.TransferKindBoost:
		_, err = dbTx.ExecContext(ctx, `
			INSERT INTO wallet_boosts (id, address, counterparty, direction, amount, post_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			id,
			owner.String(),
			counterparty.String(),
			string(direction),
			req.Amount.String(),
			req.PostID,
			req.CreatedAt,
		)
	default:
		_, err = dbTx.ExecContext(ctx, `
			INSERT INTO wallet_transfers (id, address, counterparty, direction, amount, cost, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			id,
			owner.String(),
			counterparty.String(),
			string(direction),
			req.Amount.String(),
			cost.String(),
			req.Description.String(),
			req.CreatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to record %s history: %w", req.Kind, err)
	}
	return nil
}
