package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// MockWalletStateRepository is a mock implementation of WalletStateRepository for testing
type MockWalletStateRepository struct {
	mock.Mock
}

func (m *MockWalletStateRepository) GetState(ctx context.Context, address domain.Address) (*domain.WalletState, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletState), args.Error(1)
}

var base = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, state *domain.WalletState) (*HistoryService, domain.Address) {
	t.Helper()
	address, err := domain.ParseAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
	require.NoError(t, err)

	mockRepo := new(MockWalletStateRepository)
	mockRepo.On("GetState", mock.Anything, address).Return(state, nil)
	return NewHistoryService(mockRepo), address
}

func requestIDs(rows []domain.RequestEntry) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestListRequests_PagingAndOrder(t *testing.T) {
	requests := make([]domain.RequestEntry, 12)
	for i := range requests {
		requests[i] = domain.RequestEntry{ID: fmt.Sprintf("r%02d", i), Timestamp: base.Add(time.Duration(i) * time.Hour)}
	}
	service, address := setup(t, &domain.WalletState{Requests: requests})
	ctx := context.Background()

	page, err := service.ListRequests(ctx, address, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"r11", "r10", "r09", "r08", "r07"}, requestIDs(page.Items))
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 2, page.MaxPage)
	assert.Equal(t, 12, page.Total)

	page, err = service.ListRequests(ctx, address, ListOptions{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r00"}, requestIDs(page.Items))

	page, err = service.ListRequests(ctx, address, ListOptions{Order: SortAscending, Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, []string{"r10", "r11"}, requestIDs(page.Items))

	// The repository slice is left in its original order
	assert.Equal(t, "r00", requests[0].ID)
}

func TestListTransfers_EmptyHistory(t *testing.T) {
	service, address := setup(t, &domain.WalletState{})

	page, err := service.ListTransfers(context.Background(), address, ListOptions{PageSize: 10})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.MaxPage)
	assert.Equal(t, 0, page.Total)
}

func TestListBoosts_ByDirection(t *testing.T) {
	boosts := []domain.BoostEntry{
		{ID: "out-old", Timestamp: base, Direction: domain.DirectionOutgoing},
		{ID: "in-old", Timestamp: base.Add(time.Hour), Direction: domain.DirectionIncoming},
		{ID: "out-new", Timestamp: base.Add(2 * time.Hour), Direction: domain.DirectionOutgoing},
		{ID: "in-new", Timestamp: base.Add(3 * time.Hour), Direction: domain.DirectionIncoming},
	}
	service, address := setup(t, &domain.WalletState{Boosts: boosts})
	ctx := context.Background()

	ids := func(page *Page[domain.BoostEntry]) []string {
		out := make([]string, len(page.Items))
		for i, b := range page.Items {
			out[i] = b.ID
		}
		return out
	}

	page, err := service.ListBoosts(ctx, address, ListOptions{Key: SortByDirection})
	require.NoError(t, err)
	assert.Equal(t, []string{"in-new", "in-old", "out-new", "out-old"}, ids(page))

	page, err = service.ListBoosts(ctx, address, ListOptions{Key: SortByDirection, Order: SortAscending})
	require.NoError(t, err)
	assert.Equal(t, []string{"out-new", "out-old", "in-new", "in-old"}, ids(page))

	page, err = service.ListBoosts(ctx, address, ListOptions{Key: SortByTimestamp, Order: SortAscending})
	require.NoError(t, err)
	assert.Equal(t, []string{"out-old", "in-old", "out-new", "in-new"}, ids(page))

	_, err = service.ListBoosts(ctx, address, ListOptions{Key: "amount"})
	assert.Error(t, err)
}

func TestListRequests_UnknownWallet(t *testing.T) {
	address, err := domain.ParseAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
	require.NoError(t, err)
	mockRepo := new(MockWalletStateRepository)
	mockRepo.On("GetState", mock.Anything, address).Return(nil, domain.ErrWalletNotFound)

	_, err = NewHistoryService(mockRepo).ListRequests(context.Background(), address, ListOptions{})

	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}
