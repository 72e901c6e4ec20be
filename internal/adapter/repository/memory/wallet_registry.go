// Package memory provides in-process implementations of the domain repositories.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// WalletRegistry is a WalletRegistry kept in memory. It is safe for concurrent use.
type WalletRegistry struct {
	mu      sync.RWMutex
	wallets []*domain.Wallet
}

// NewWalletRegistry creates an empty registry
func NewWalletRegistry() *WalletRegistry {
	return &WalletRegistry{}
}

// Add links a wallet, rejecting duplicate addresses
func (r *WalletRegistry) Add(ctx context.Context, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(wallet.Address) >= 0 {
		return fmt.Errorf("%w: %s", domain.ErrWalletExists, wallet.Address)
	}

	stored := *wallet
	r.wallets = append(r.wallets, &stored)
	return nil
}

// Get retrieves a wallet by address
func (r *WalletRegistry) Get(ctx context.Context, address domain.Address) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(address)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, address)
	}

	wallet := *r.wallets[i]
	return &wallet, nil
}

// List returns copies of the linked wallets in insertion order
func (r *WalletRegistry) List(ctx context.Context) ([]*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallets := make([]*domain.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		wallet := *w
		wallets = append(wallets, &wallet)
	}
	return wallets, nil
}

// Remove unlinks a wallet
func (r *WalletRegistry) Remove(ctx context.Context, address domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(address)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, address)
	}

	r.wallets = append(r.wallets[:i], r.wallets[i+1:]...)
	return nil
}

// indexOf must be called with mu held
func (r *WalletRegistry) indexOf(address domain.Address) int {
	for i, w := range r.wallets {
		if w.Address.Equal(address) {
			return i
		}
	}
	return -1
}
