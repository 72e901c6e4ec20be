package wallets

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// AddWalletInput represents the input for linking a wallet from a private key
type AddWalletInput struct {
	PrivateKey string
	Type       domain.WalletType // defaults to F1R3CAP
	Label      string
}

// WalletService manages the wallets linked in a session
type WalletService struct {
	Registry domain.WalletRegistry
	Logger   *log.Logger
}

// NewWalletService creates a new WalletService instance
func NewWalletService(registry domain.WalletRegistry, logger *log.Logger) *WalletService {
	if logger == nil {
		logger = log.Default()
	}
	return &WalletService{
		Registry: registry,
		Logger:   logger.WithPrefix("wallets"),
	}
}

// AddWallet derives a wallet's address from a private key and links it.
// The key itself is never stored.
func (s *WalletService) AddWallet(ctx context.Context, input AddWalletInput) (*domain.Wallet, error) {
	var (
		wallet *domain.Wallet
		err    error
	)

	switch input.Type {
	case domain.WalletTypeF1R3CAP, "":
		wallet, err = domain.NewRevWalletFromPrivateKey(input.PrivateKey)
	case domain.WalletTypeEthereum:
		wallet, err = domain.NewEthereumWalletFromPrivateKey(input.PrivateKey)
	default:
		return nil, fmt.Errorf("invalid wallet type %q", input.Type)
	}
	if err != nil {
		return nil, err
	}
	wallet.Label = input.Label

	return s.add(ctx, wallet)
}

// AddExternalWallet links a wallet by address only
func (s *WalletService) AddExternalWallet(ctx context.Context, rawAddress, label string) (*domain.Wallet, error) {
	address, err := domain.ParseAddress(rawAddress)
	if err != nil {
		return nil, err
	}
	return s.add(ctx, domain.NewExternalWallet(address, label))
}

// GetWallet retrieves a linked wallet
func (s *WalletService) GetWallet(ctx context.Context, address domain.Address) (*domain.Wallet, error) {
	return s.Registry.Get(ctx, address)
}

// ListWallets returns all linked wallets in the order they were added
func (s *WalletService) ListWallets(ctx context.Context) ([]*domain.Wallet, error) {
	return s.Registry.List(ctx)
}

// RemoveWallet unlinks a wallet
func (s *WalletService) RemoveWallet(ctx context.Context, address domain.Address) error {
	if err := s.Registry.Remove(ctx, address); err != nil {
		return err
	}
	s.Logger.Info("wallet removed", "address", address)
	return nil
}

func (s *WalletService) add(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	if err := s.Registry.Add(ctx, wallet); err != nil {
		return nil, err
	}
	s.Logger.Info("wallet added", "type", wallet.Type, "address", wallet.Address)
	return wallet, nil
}
