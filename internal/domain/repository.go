package domain

import (
	"context"
)

// WalletStateRepository defines the interface for reading wallet balances and history
type WalletStateRepository interface {
	// GetState retrieves the present balance and the full request, boost and transfer history
	// Returns an error wrapping ErrWalletNotFound if the address is unknown
	GetState(ctx context.Context, address Address) (*WalletState, error)
}

// TransferRepository defines the interface for submitting token movements
type TransferRepository interface {
	// Submit debits the sender by amount + cost, credits the receiver and records the movement
	// Returns an error wrapping ErrInsufficientFunds if the sender cannot cover it
	Submit(ctx context.Context, req *TransferRequest) (*TransferReceipt, error)
}

// RequestRepository defines the interface for funding wallets through requests
type RequestRepository interface {
	// CreateWallet creates a wallet with a zero balance. Returns ErrWalletExists if it is already known
	CreateWallet(ctx context.Context, address Address) error

	// RecordRequest stores a funds request. A done request also credits its amount to the balance
	RecordRequest(ctx context.Context, address Address, request *RequestEntry) error
}

// BoostSettingsRepository defines the interface for boost configuration persistence
type BoostSettingsRepository interface {
	// Save creates or replaces the boost settings for an owner
	Save(ctx context.Context, settings *BoostSettings) error

	// Get retrieves the boost settings for an owner
	Get(ctx context.Context, ownerDID string) (*BoostSettings, error)
}

// WalletRegistry defines the interface for the set of wallets linked in a session.
// Implementations are injected; there is no process-wide wallet list.
type WalletRegistry interface {
	// Add links a wallet. Returns ErrWalletExists for a duplicate address
	Add(ctx context.Context, wallet *Wallet) error

	// Get retrieves a wallet by address. Returns ErrWalletNotFound if missing
	Get(ctx context.Context, address Address) (*Wallet, error)

	// List returns the linked wallets in insertion order
	List(ctx context.Context) ([]*Wallet, error)

	// Remove unlinks a wallet. Returns ErrWalletNotFound if missing
	Remove(ctx context.Context, address Address) error
}
