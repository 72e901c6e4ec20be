package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

func ethWallet(t *testing.T, raw, label string) *domain.Wallet {
	t.Helper()
	addr, err := domain.ParseAddress(raw)
	require.NoError(t, err)
	return domain.NewExternalWallet(addr, label)
}

func TestWalletRegistry_AddGetListRemove(t *testing.T) {
	ctx := context.Background()
	registry := NewWalletRegistry()

	first := ethWallet(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "main")
	second := ethWallet(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", "savings")

	require.NoError(t, registry.Add(ctx, first))
	require.NoError(t, registry.Add(ctx, second))

	err := registry.Add(ctx, first)
	assert.ErrorIs(t, err, domain.ErrWalletExists)

	got, err := registry.Get(ctx, second.Address)
	require.NoError(t, err)
	assert.Equal(t, "savings", got.Label)

	// Returned wallets are copies
	got.Label = "changed"
	again, err := registry.Get(ctx, second.Address)
	require.NoError(t, err)
	assert.Equal(t, "savings", again.Label)

	wallets, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "main", wallets[0].Label)

	require.NoError(t, registry.Remove(ctx, first.Address))
	assert.ErrorIs(t, registry.Remove(ctx, first.Address), domain.ErrWalletNotFound)

	_, err = registry.Get(ctx, first.Address)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletRegistry_InstancesAreIndependent(t *testing.T) {
	ctx := context.Background()
	a := NewWalletRegistry()
	b := NewWalletRegistry()

	require.NoError(t, a.Add(ctx, ethWallet(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "")))

	wallets, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestWalletRegistry_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	registry := NewWalletRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("%064x", i+1)
			wallet, err := domain.NewEthereumWalletFromPrivateKey(key)
			if assert.NoError(t, err) {
				assert.NoError(t, registry.Add(ctx, wallet))
			}
		}(i)
	}
	wg.Wait()

	wallets, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 20)
}
