package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
)

func TestFieldValue(t *testing.T) {
	address, err := domain.ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)

	var untracked validator.Field[domain.Address]

	assert.Equal(t, map[string]any{"state": "empty"},
		fieldValue[domain.Amount](validator.Empty[domain.Amount]{}))
	assert.Equal(t, map[string]any{"state": "valid", "value": "40"},
		fieldValue[domain.Amount](validator.Valid[domain.Amount]{Value: domain.MustAmount(40)}))
	assert.Equal(t, map[string]any{"state": "valid", "value": address.String()},
		fieldValue[domain.Address](validator.Valid[domain.Address]{Value: address}))
	assert.Equal(t, map[string]any{"state": "invalid", "kind": "lowBalance", "raw": "500"},
		fieldValue[domain.Amount](validator.Invalid[domain.Amount]{Raw: validator.Input("500"), Kind: validator.ErrorKindLowBalance}))
	assert.Equal(t, map[string]any{"state": "invalid", "kind": "invalid"},
		fieldValue[domain.Description](validator.Invalid[domain.Description]{Kind: validator.ErrorKindInvalid}))
	assert.Nil(t, fieldValue[domain.Address](untracked))
}
