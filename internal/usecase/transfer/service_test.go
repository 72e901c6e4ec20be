package transfer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
)

const (
	senderAddress    = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	recipientAddress = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
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

// MockTransferRepository is a mock implementation of TransferRepository for testing
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Submit(ctx context.Context, req *domain.TransferRequest) (*domain.TransferReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferReceipt), args.Error(1)
}

// MockBoostSettingsRepository is a mock implementation of BoostSettingsRepository for testing
type MockBoostSettingsRepository struct {
	mock.Mock
}

func (m *MockBoostSettingsRepository) Save(ctx context.Context, settings *domain.BoostSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockBoostSettingsRepository) Get(ctx context.Context, ownerDID string) (*domain.BoostSettings, error) {
	args := m.Called(ctx, ownerDID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoostSettings), args.Error(1)
}

type fixture struct {
	stateRepo    *MockWalletStateRepository
	transferRepo *MockTransferRepository
	settingsRepo *MockBoostSettingsRepository
	service      *TransferService
	sender       domain.Address
	recipient    domain.Address
	now          time.Time
}

func newFixture(t *testing.T, opts ...validator.Option) *fixture {
	t.Helper()

	sender, err := domain.ParseAddress(senderAddress)
	require.NoError(t, err)
	recipient, err := domain.ParseAddress(recipientAddress)
	require.NoError(t, err)

	f := &fixture{
		stateRepo:    new(MockWalletStateRepository),
		transferRepo: new(MockTransferRepository),
		settingsRepo: new(MockBoostSettingsRepository),
		sender:       sender,
		recipient:    recipient,
		now:          time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	logger := log.New(&strings.Builder{})
	f.service = NewTransferService(f.stateRepo, f.transferRepo, f.settingsRepo, domain.MustAmount(1), logger, opts...)
	f.service.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) withBalance(balance int64) {
	f.stateRepo.On("GetState", mock.Anything, f.sender).Return(&domain.WalletState{
		Address: f.sender,
		Balance: domain.MustAmount(balance),
	}, nil)
}

func TestSubmitTransfer_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withBalance(100)

	receiptID := uuid.New()
	f.transferRepo.On("Submit", ctx, mock.MatchedBy(func(req *domain.TransferRequest) bool {
		return req.Kind == domain.TransferKindTransfer &&
			req.From.Equal(f.sender) &&
			req.To.Equal(f.recipient) &&
			req.Amount.Equal(domain.MustAmount(40)) &&
			req.Cost.Equal(domain.MustAmount(1)) &&
			req.Description.String() == "rent" &&
			req.ID != uuid.Nil &&
			req.CreatedAt.Equal(f.now)
	})).Return(&domain.TransferReceipt{ID: receiptID, NewBalance: domain.MustAmount(59)}, nil)

	receipt, err := f.service.SubmitTransfer(ctx, SubmitTransferInput{
		From:        senderAddress,
		To:          validator.Input(recipientAddress),
		Amount:      validator.Input("40"),
		Description: validator.Input("rent"),
	})

	require.NoError(t, err)
	assert.Equal(t, receiptID, receipt.ID)
	f.transferRepo.AssertExpectations(t)
}

func TestSubmitTransfer_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		input       SubmitTransferInput
		wantMessage string
		wantErr     error
	}{
		{
			name:        "Amount above balance",
			input:       SubmitTransferInput{To: validator.Input(recipientAddress), Amount: validator.Input("101")},
			wantMessage: "Not enough funds for transfer",
			wantErr:     domain.ErrInsufficientFunds,
		},
		{
			name:        "Missing amount wins over missing address",
			input:       SubmitTransferInput{},
			wantMessage: "Invalid amount",
			wantErr:     domain.ErrInvalidAmount,
		},
		{
			name:        "Transfer to self",
			input:       SubmitTransferInput{To: validator.Input(senderAddress), Amount: validator.Input("1")},
			wantMessage: "Destination address and source address are the same",
			wantErr:     domain.ErrInvalidAddress,
		},
		{
			name: "Description too long",
			input: SubmitTransferInput{
				To:          validator.Input(recipientAddress),
				Amount:      validator.Input("1"),
				Description: validator.Input(strings.Repeat("x", 300)),
			},
			wantMessage: "Description is too long",
			wantErr:     domain.ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withBalance(100)
			tt.input.From = senderAddress

			receipt, err := f.service.SubmitTransfer(context.Background(), tt.input)

			assert.Nil(t, receipt)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.ErrorIs(t, err, tt.wantErr)
			f.transferRepo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitTransfer_LenientDescription(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, validator.WithDescriptionPolicy(validator.DescriptionPolicyLenient))
	f.withBalance(100)
	f.transferRepo.On("Submit", ctx, mock.Anything).Return(&domain.TransferReceipt{}, nil)

	_, err := f.service.SubmitTransfer(ctx, SubmitTransferInput{
		From:        senderAddress,
		To:          validator.Input(recipientAddress),
		Amount:      validator.Input("1"),
		Description: validator.Input(strings.Repeat("x", 300)),
	})

	require.NoError(t, err)
	f.transferRepo.AssertExpectations(t)
}

func TestSubmitTransfer_InvalidSender(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SubmitTransfer(context.Background(), SubmitTransferInput{From: "garbage"})

	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	f.stateRepo.AssertNotCalled(t, "GetState", mock.Anything, mock.Anything)
}

func TestSubmitTransfer_UnknownWallet(t *testing.T) {
	f := newFixture(t)
	f.stateRepo.On("GetState", mock.Anything, f.sender).Return(nil, domain.ErrWalletNotFound)

	_, err := f.service.SubmitTransfer(context.Background(), SubmitTransferInput{From: senderAddress})

	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestSubmitTransfer_RepositoryError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withBalance(100)
	f.transferRepo.On("Submit", ctx, mock.Anything).Return(nil, domain.ErrInsufficientFunds)

	_, err := f.service.SubmitTransfer(ctx, SubmitTransferInput{
		From:   senderAddress,
		To:     validator.Input(recipientAddress),
		Amount: validator.Input("100"),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestSubmitBoost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.withBalance(50)

	f.transferRepo.On("Submit", ctx, mock.MatchedBy(func(req *domain.TransferRequest) bool {
		return req.Kind == domain.TransferKindBoost &&
			req.To.Equal(f.recipient) &&
			req.PostID == "3kabc" &&
			req.Amount.Equal(domain.MustAmount(5)) &&
			req.Cost.IsZero()
	})).Return(&domain.TransferReceipt{Kind: domain.TransferKindBoost}, nil)

	receipt, err := f.service.SubmitBoost(ctx, SubmitBoostInput{
		From:   senderAddress,
		To:     recipientAddress,
		PostID: "3kabc",
		Amount: validator.Input("5"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TransferKindBoost, receipt.Kind)
	f.transferRepo.AssertExpectations(t)
}

func TestSubmitBoost_Rejections(t *testing.T) {
	f := newFixture(t)
	f.withBalance(50)

	_, err := f.service.SubmitBoost(context.Background(), SubmitBoostInput{From: senderAddress, To: "nope", Amount: validator.Input("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = f.service.SubmitBoost(context.Background(), SubmitBoostInput{From: senderAddress, To: senderAddress, Amount: validator.Input("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = f.service.SubmitBoost(context.Background(), SubmitBoostInput{From: senderAddress, To: recipientAddress, Amount: validator.Input("51")})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	f.transferRepo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestUpdateBoostSettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.settingsRepo.On("Save", ctx, mock.MatchedBy(func(s *domain.BoostSettings) bool {
		return s.OwnerDID == "did:plc:alice" &&
			s.WalletAddress.Equal(f.recipient) &&
			s.Message.String() == "thanks!" &&
			s.UpdatedAt.Equal(f.now)
	})).Return(nil)

	settings, err := f.service.UpdateBoostSettings(ctx, UpdateBoostSettingsInput{
		OwnerDID:    "did:plc:alice",
		Address:     validator.Input(recipientAddress),
		Description: validator.Input("thanks!"),
	})

	require.NoError(t, err)
	assert.Equal(t, "did:plc:alice", settings.OwnerDID)
	f.settingsRepo.AssertExpectations(t)
}

func TestUpdateBoostSettings_InvalidAddress(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UpdateBoostSettings(context.Background(), UpdateBoostSettingsInput{OwnerDID: "did:plc:alice"})

	assert.EqualError(t, err, "Invalid address")
	f.settingsRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestValidateForm(t *testing.T) {
	f := newFixture(t)
	f.withBalance(10)

	result, err := f.service.ValidateForm(context.Background(), ValidateFormInput{
		Kind:            FormKindTransfer,
		From:            senderAddress,
		Amount:          validator.Input("5"),
		TransferAddress: validator.Input(recipientAddress),
	})
	require.NoError(t, err)
	assert.True(t, result.Ready)
	assert.Nil(t, result.Error)

	// Boost settings need no wallet state
	result, err = f.service.ValidateForm(context.Background(), ValidateFormInput{
		Kind:    FormKindBoostSettings,
		Address: validator.Input("bogus"),
	})
	require.NoError(t, err)
	assert.False(t, result.Ready)
	assert.Equal(t, "Invalid address", result.Error.Message)
	assert.Nil(t, result.State.Amount)
	f.stateRepo.AssertNumberOfCalls(t, "GetState", 1)

	_, err = f.service.ValidateForm(context.Background(), ValidateFormInput{Kind: "WITHDRAW"})
	assert.Error(t, err)
}
