package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/usecase/balancegraph"
)

// compactDecimals is the number of decimals kept in the compact balance, e.g. "1.2M"
const compactDecimals = 1

// BalanceGraph is the balance curve of a wallet over a window
type BalanceGraph struct {
	Window balancegraph.Window
	Points []balancegraph.BalancePoint
	Labels []time.Time
}

// Summary represents the headline numbers of a wallet
type Summary struct {
	Address   domain.Address
	Balance   domain.Amount
	Compact   string // e.g. "1.2M"
	Formatted string // e.g. "1,234,567"
	Requests  int
	Boosts    int
	Transfers int
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	StateRepo domain.WalletStateRepository
	Now       func() time.Time
}

// NewDashboardService creates a new DashboardService instance.
// now defaults to time.Now when nil.
func NewDashboardService(stateRepo domain.WalletStateRepository, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		StateRepo: stateRepo,
		Now:       now,
	}
}

// GetBalanceGraph reconstructs the balance curve of a wallet for a scale
// Logic:
//   - Load the present balance and full history
//   - Build the window ending now
//   - Reconstruct, clip and patch the series, and generate the axis labels
func (s *DashboardService) GetBalanceGraph(ctx context.Context, address domain.Address, scale balancegraph.Scale) (*BalanceGraph, error) {
	state, err := s.StateRepo.GetState(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet state: %w", err)
	}

	window := balancegraph.NewWindow(scale, s.Now())
	points := balancegraph.ReconstructBalanceSeries(state.Balance, state.Requests, state.Boosts, state.Transfers, window)

	return &BalanceGraph{
		Window: window,
		Points: points,
		Labels: balancegraph.Labels(window),
	}, nil
}

// GetSummary returns the present balance in display formats along with activity counts
func (s *DashboardService) GetSummary(ctx context.Context, address domain.Address) (*Summary, error) {
	state, err := s.StateRepo.GetState(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet state: %w", err)
	}

	return &Summary{
		Address:   state.Address,
		Balance:   state.Balance,
		Compact:   domain.FormatLargeNumber(state.Balance.Decimal(), compactDecimals),
		Formatted: domain.FormatAmount(state.Balance),
		Requests:  len(state.Requests),
		Boosts:    len(state.Boosts),
		Transfers: len(state.Transfers),
	}, nil
}
