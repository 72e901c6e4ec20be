package history

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// DefaultPageSize is the number of rows per history page
const DefaultPageSize = 5

// SortOrder is the direction of a history listing
type SortOrder string

const (
	SortDescending SortOrder = "desc"
	SortAscending  SortOrder = "asc"
)

// SortKey is the column a history listing is ordered by
type SortKey string

const (
	SortByTimestamp SortKey = "timestamp"
	SortByDirection SortKey = "direction" // boosts only
)

// ListOptions controls ordering and paging. The zero value lists the newest rows first, page 0.
type ListOptions struct {
	Page     int
	PageSize int
	Order    SortOrder
	Key      SortKey
}

// Page is one page of a sorted history listing
type Page[T any] struct {
	Items   []T
	Page    int
	MaxPage int
	Total   int
}

// HistoryService handles paged, sorted activity listings of a wallet
type HistoryService struct {
	StateRepo domain.WalletStateRepository
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(stateRepo domain.WalletStateRepository) *HistoryService {
	return &HistoryService{StateRepo: stateRepo}
}

// ListRequests returns one page of the wallet's requests ordered by timestamp
func (s *HistoryService) ListRequests(ctx context.Context, address domain.Address, opts ListOptions) (*Page[domain.RequestEntry], error) {
	state, err := s.load(ctx, address)
	if err != nil {
		return nil, err
	}
	rows := sortRows(state.Requests, opts.Order, func(l, r domain.RequestEntry) int {
		return compareTime(l.Timestamp, r.Timestamp)
	})
	return paginate(rows, opts), nil
}

// ListTransfers returns one page of the wallet's transfers ordered by timestamp
func (s *HistoryService) ListTransfers(ctx context.Context, address domain.Address, opts ListOptions) (*Page[domain.TransferEntry], error) {
	state, err := s.load(ctx, address)
	if err != nil {
		return nil, err
	}
	rows := sortRows(state.Transfers, opts.Order, func(l, r domain.TransferEntry) int {
		return compareTime(l.Timestamp, r.Timestamp)
	})
	return paginate(rows, opts), nil
}

// ListBoosts returns one page of the wallet's boosts ordered by timestamp or by direction.
// Descending direction order lists incoming boosts first; ties keep newest first.
func (s *HistoryService) ListBoosts(ctx context.Context, address domain.Address, opts ListOptions) (*Page[domain.BoostEntry], error) {
	state, err := s.load(ctx, address)
	if err != nil {
		return nil, err
	}

	byTime := func(l, r domain.BoostEntry) int {
		return compareTime(l.Timestamp, r.Timestamp)
	}

	var rows []domain.BoostEntry
	switch opts.Key {
	case SortByDirection:
		rows = sortRows(state.Boosts, SortDescending, byTime)
		rows = sortRows(rows, opts.Order, func(l, r domain.BoostEntry) int {
			return cmp.Compare(directionRank(l.Direction), directionRank(r.Direction))
		})
	case SortByTimestamp, "":
		rows = sortRows(state.Boosts, opts.Order, byTime)
	default:
		return nil, fmt.Errorf("invalid sort key %q for boosts", opts.Key)
	}

	return paginate(rows, opts), nil
}

func (s *HistoryService) load(ctx context.Context, address domain.Address) (*domain.WalletState, error) {
	state, err := s.StateRepo.GetState(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet state: %w", err)
	}
	return state, nil
}

// sortRows returns a sorted copy of rows. asc orders ascending by the comparison; anything else is descending.
func sortRows[T any](rows []T, order SortOrder, compare func(l, r T) int) []T {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(l, r T) int {
		if order == SortAscending {
			return compare(l, r)
		}
		return compare(r, l)
	})
	return sorted
}

// paginate slices rows into a page. Out-of-range pages are clamped to [0, MaxPage].
func paginate[T any](rows []T, opts ListOptions) *Page[T] {
	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(rows)
	maxPage := max((total+size-1)/size-1, 0)
	page := min(max(opts.Page, 0), maxPage)

	start := min(page*size, total)
	end := min(start+size, total)

	return &Page[T]{
		Items:   rows[start:end],
		Page:    page,
		MaxPage: maxPage,
		Total:   total,
	}
}

func compareTime(l, r time.Time) int {
	return l.Compare(r)
}

// directionRank orders outgoing below incoming, so descending order lists incoming first
func directionRank(d domain.Direction) int {
	if d == domain.DirectionIncoming {
		return 1
	}
	return 0
}
