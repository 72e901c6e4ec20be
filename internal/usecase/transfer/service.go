package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/metrics"
	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
)

// FormKind selects which dialog's field set is validated
type FormKind string

const (
	FormKindTransfer      FormKind = "TRANSFER"
	FormKindBoost         FormKind = "BOOST"
	FormKindBoostSettings FormKind = "BOOST_SETTINGS"
)

// Fields returns the validator field set for a form kind
func (k FormKind) Fields() ([]validator.FieldName, error) {
	switch k {
	case FormKindTransfer:
		return validator.TransferFields, nil
	case FormKindBoost:
		return validator.BoostFields, nil
	case FormKindBoostSettings:
		return validator.BoostSettingsFields, nil
	default:
		return nil, fmt.Errorf("invalid form kind %q", k)
	}
}

// SubmitTransferInput represents the raw user input of the transfer dialog.
// A nil field means the user never entered a value.
type SubmitTransferInput struct {
	From        string
	To          *string
	Amount      *string
	Description *string
}

// SubmitBoostInput represents the raw user input of the boost dialog
type SubmitBoostInput struct {
	From        string
	To          string // the boosted author's wallet
	PostID      string // empty for a profile boost
	Amount      *string
	Description *string
}

// UpdateBoostSettingsInput represents the raw user input of the boost settings dialog
type UpdateBoostSettingsInput struct {
	OwnerDID    string
	Address     *string
	Description *string
}

// ValidateFormInput carries every field a dialog may send; fields the form kind does not track are ignored
type ValidateFormInput struct {
	Kind            FormKind
	From            string
	Amount          *string
	Address         *string
	TransferAddress *string
	Description     *string
}

// FormResult is the outcome of validating a form without submitting it
type FormResult struct {
	State validator.FormState
	Error *validator.FieldError
	Ready bool
}

// ValidationError is returned when a form is not ready for submission.
// Nothing has been submitted when it is returned.
type ValidationError struct {
	State validator.FormState
	Field *validator.FieldError
}

func (e *ValidationError) Error() string {
	if e.Field == nil {
		return "form is incomplete"
	}
	return e.Field.Message
}

// Unwrap maps the failing field to the matching domain error
func (e *ValidationError) Unwrap() error {
	if e.Field == nil {
		return nil
	}
	switch e.Field.Field {
	case validator.FieldAmount:
		if e.Field.Kind == validator.ErrorKindLowBalance {
			return domain.ErrInsufficientFunds
		}
		return domain.ErrInvalidAmount
	case validator.FieldAddress, validator.FieldTransferAddress:
		return domain.ErrInvalidAddress
	case validator.FieldDescription:
		return domain.ErrDescriptionTooLong
	default:
		return nil
	}
}

// TransferService handles validation and submission of transfers, boosts and boost settings
type TransferService struct {
	StateRepo         domain.WalletStateRepository
	TransferRepo      domain.TransferRepository
	BoostSettingsRepo domain.BoostSettingsRepository
	Cost              domain.Amount
	Logger            *log.Logger

	validatorOpts []validator.Option
	now           func() time.Time
}

// NewTransferService creates a new TransferService instance.
// cost is the network fee attached to every transfer.
func NewTransferService(
	stateRepo domain.WalletStateRepository,
	transferRepo domain.TransferRepository,
	boostSettingsRepo domain.BoostSettingsRepository,
	cost domain.Amount,
	logger *log.Logger,
	opts ...validator.Option,
) *TransferService {
	if logger == nil {
		logger = log.Default()
	}
	return &TransferService{
		StateRepo:         stateRepo,
		TransferRepo:      transferRepo,
		BoostSettingsRepo: boostSettingsRepo,
		Cost:              cost,
		Logger:            logger.WithPrefix("transfer"),
		validatorOpts:     opts,
		now:               time.Now,
	}
}

// SubmitTransfer validates the transfer dialog and submits it.
// Logic:
//  1. Load the sender's wallet state for the current balance
//  2. Dispatch every field, then RevalidateAll so untouched fields surface errors
//  3. If any field is not valid, return a *ValidationError and submit nothing
//  4. Otherwise submit with a fresh request ID and the configured cost
func (s *TransferService) SubmitTransfer(ctx context.Context, input SubmitTransferInput) (*domain.TransferReceipt, error) {
	from, state, err := s.loadSender(ctx, input.From)
	if err != nil {
		return nil, err
	}

	form := validator.NewForm(validator.NewValidator(validator.TransferFields, s.validatorOpts...))
	form.Dispatch(validator.SetAmount{Balance: state.Balance, Raw: input.Amount})
	form.Dispatch(validator.SetTransferAddress{Own: from, Raw: input.To})
	form.Dispatch(validator.SetDescription{Raw: input.Description})
	form.Dispatch(validator.RevalidateAll{Balance: state.Balance, Own: from})

	if err := s.checkReady(form, FormKindTransfer); err != nil {
		return nil, err
	}

	fields := form.State()
	req := &domain.TransferRequest{
		ID:          uuid.New(),
		Kind:        domain.TransferKindTransfer,
		From:        from,
		To:          fields.TransferAddress.(validator.Valid[domain.Address]).Value,
		Amount:      fields.Amount.(validator.Valid[domain.Amount]).Value,
		Cost:        s.Cost,
		Description: fields.Description.(validator.Valid[domain.Description]).Value,
		CreatedAt:   s.now(),
	}

	return s.submit(ctx, req)
}

// SubmitBoost validates the boost dialog and submits the boost to the post author's wallet
func (s *TransferService) SubmitBoost(ctx context.Context, input SubmitBoostInput) (*domain.TransferReceipt, error) {
	to, err := domain.ParseAddress(input.To)
	if err != nil {
		return nil, fmt.Errorf("invalid boost recipient: %w", err)
	}

	from, state, err := s.loadSender(ctx, input.From)
	if err != nil {
		return nil, err
	}

	if to.Equal(from) {
		return nil, fmt.Errorf("%w: cannot boost your own wallet", domain.ErrInvalidAddress)
	}

	form := validator.NewForm(validator.NewValidator(validator.BoostFields, s.validatorOpts...))
	form.Dispatch(validator.SetAmount{Balance: state.Balance, Raw: input.Amount})
	form.Dispatch(validator.SetDescription{Raw: input.Description})
	form.Dispatch(validator.RevalidateAll{Balance: state.Balance, Own: from})

	if err := s.checkReady(form, FormKindBoost); err != nil {
		return nil, err
	}

	fields := form.State()
	req := &domain.TransferRequest{
		ID:          uuid.New(),
		Kind:        domain.TransferKindBoost,
		From:        from,
		To:          to,
		Amount:      fields.Amount.(validator.Valid[domain.Amount]).Value,
		Cost:        domain.ZeroAmount, // boosts carry no network fee
		Description: fields.Description.(validator.Valid[domain.Description]).Value,
		PostID:      input.PostID,
		CreatedAt:   s.now(),
	}

	return s.submit(ctx, req)
}

// UpdateBoostSettings validates the boost settings dialog and saves it
func (s *TransferService) UpdateBoostSettings(ctx context.Context, input UpdateBoostSettingsInput) (*domain.BoostSettings, error) {
	if input.OwnerDID == "" {
		return nil, errors.New("invalid owner: did must not be empty")
	}

	form := validator.NewForm(validator.NewValidator(validator.BoostSettingsFields, s.validatorOpts...))
	form.Dispatch(validator.SetAddress{Raw: input.Address})
	form.Dispatch(validator.SetDescription{Raw: input.Description})
	form.Dispatch(validator.RevalidateAll{})

	if err := s.checkReady(form, FormKindBoostSettings); err != nil {
		return nil, err
	}

	fields := form.State()
	settings := &domain.BoostSettings{
		OwnerDID:      input.OwnerDID,
		WalletAddress: fields.Address.(validator.Valid[domain.Address]).Value,
		Message:       fields.Description.(validator.Valid[domain.Description]).Value,
		UpdatedAt:     s.now(),
	}

	if err := s.BoostSettingsRepo.Save(ctx, settings); err != nil {
		s.Logger.Error("failed to save boost settings", "owner", input.OwnerDID, "err", err)
		return nil, fmt.Errorf("failed to save boost settings: %w", err)
	}

	s.Logger.Info("boost settings updated", "owner", input.OwnerDID, "wallet", settings.WalletAddress)
	return settings, nil
}

// ValidateForm runs a dialog's validation without submitting anything.
// The sender's state is only loaded when the form tracks a balance- or sender-dependent field.
func (s *TransferService) ValidateForm(ctx context.Context, input ValidateFormInput) (*FormResult, error) {
	fields, err := input.Kind.Fields()
	if err != nil {
		return nil, err
	}
	v := validator.NewValidator(fields, s.validatorOpts...)

	var revalidate validator.RevalidateAll
	if v.Tracks(validator.FieldAmount) || v.Tracks(validator.FieldTransferAddress) {
		from, state, err := s.loadSender(ctx, input.From)
		if err != nil {
			return nil, err
		}
		revalidate = validator.RevalidateAll{Balance: state.Balance, Own: from}
	}

	form := validator.NewForm(v)
	form.Dispatch(validator.SetAmount{Balance: revalidate.Balance, Raw: input.Amount})
	form.Dispatch(validator.SetAddress{Raw: input.Address})
	form.Dispatch(validator.SetTransferAddress{Own: revalidate.Own, Raw: input.TransferAddress})
	form.Dispatch(validator.SetDescription{Raw: input.Description})
	form.Dispatch(revalidate)

	return &FormResult{State: form.State(), Error: form.FieldError(), Ready: form.Ready()}, nil
}

func (s *TransferService) loadSender(ctx context.Context, rawFrom string) (domain.Address, *domain.WalletState, error) {
	from, err := domain.ParseAddress(rawFrom)
	if err != nil {
		return domain.Address{}, nil, fmt.Errorf("invalid sender: %w", err)
	}

	state, err := s.StateRepo.GetState(ctx, from)
	if err != nil {
		return domain.Address{}, nil, fmt.Errorf("failed to get wallet state: %w", err)
	}

	return from, state, nil
}

func (s *TransferService) checkReady(form *validator.Form, kind FormKind) error {
	if form.Ready() {
		return nil
	}

	fieldErr := form.FieldError()
	if fieldErr != nil {
		metrics.ValidationRejections.WithLabelValues(string(fieldErr.Field), string(fieldErr.Kind)).Inc()
		s.Logger.Warn("form rejected", "kind", kind, "field", fieldErr.Field, "reason", fieldErr.Kind)
	}

	return &ValidationError{State: form.State(), Field: fieldErr}
}

func (s *TransferService) submit(ctx context.Context, req *domain.TransferRequest) (*domain.TransferReceipt, error) {
	receipt, err := s.TransferRepo.Submit(ctx, req)
	if err != nil {
		s.Logger.Error("submission failed", "id", req.ID, "kind", req.Kind, "err", err)
		return nil, fmt.Errorf("failed to submit %s: %w", req.Kind, err)
	}

	metrics.SubmittedTotal.WithLabelValues(string(req.Kind)).Inc()
	s.Logger.Info("submitted",
		"id", req.ID,
		"kind", req.Kind,
		"from", req.From,
		"to", req.To,
		"amount", domain.FormatAmount(req.Amount),
		"cost", req.Cost,
	)
	return receipt, nil
}
