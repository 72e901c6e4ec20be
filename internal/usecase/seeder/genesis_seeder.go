package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// GenesisWallet is a wallet funded when the ledger first starts
type GenesisWallet struct {
	Address domain.Address
	Amount  domain.Amount
}

// ParseGenesisWallets parses a comma-separated list of address:amount pairs.
// An empty string yields no wallets.
func ParseGenesisWallets(raw string) ([]GenesisWallet, error) {
	var wallets []GenesisWallet
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		rawAddress, rawAmount, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid genesis wallet %q: expected address:amount", pair)
		}

		address, err := domain.ParseAddress(rawAddress)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis wallet %q: %w", pair, err)
		}
		amount, err := domain.ParseAmount(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis wallet %q: %w", pair, err)
		}

		wallets = append(wallets, GenesisWallet{Address: address, Amount: amount})
	}
	return wallets, nil
}

// GenesisSeeder funds genesis wallets through a done funds request
type GenesisSeeder struct {
	repo   domain.RequestRepository
	logger *log.Logger
	now    func() time.Time
}

// NewGenesisSeeder creates a new GenesisSeeder instance
func NewGenesisSeeder(repo domain.RequestRepository, logger *log.Logger) *GenesisSeeder {
	if logger == nil {
		logger = log.Default()
	}
	return &GenesisSeeder{
		repo:   repo,
		logger: logger.WithPrefix("seeder"),
		now:    time.Now,
	}
}

// Seed ensures every genesis wallet exists.
// A wallet that is created here receives its amount as a done request;
// a wallet that already exists is left untouched, so seeding twice never funds twice.
func (s *GenesisSeeder) Seed(ctx context.Context, wallets []GenesisWallet) error {
	for _, wallet := range wallets {
		err := s.repo.CreateWallet(ctx, wallet.Address)
		if errors.Is(err, domain.ErrWalletExists) {
			continue
		}
		if err != nil {
			return err
		}

		if wallet.Amount.IsZero() {
			s.logger.Info("genesis wallet created", "address", wallet.Address)
			continue
		}

		request := &domain.RequestEntry{
			ID:        "genesis-" + wallet.Address.String(),
			Timestamp: s.now(),
			Amount:    wallet.Amount,
			Status:    domain.RequestStatusDone,
		}
		if err := s.repo.RecordRequest(ctx, wallet.Address, request); err != nil {
			return err
		}

		s.logger.Info("genesis wallet funded", "address", wallet.Address, "amount", domain.FormatAmount(wallet.Amount))
	}

	return nil
}
