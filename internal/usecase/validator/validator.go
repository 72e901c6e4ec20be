package validator

import (
	"fmt"
	"strings"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

// FieldName identifies one of the fields a transfer form can track
type FieldName string

const (
	FieldAmount          FieldName = "amount"
	FieldAddress         FieldName = "address"
	FieldTransferAddress FieldName = "transferAddress"
	FieldDescription     FieldName = "description"
)

// priority is the order in which fields are scanned for the single error message
var priority = []FieldName{FieldAmount, FieldAddress, FieldTransferAddress, FieldDescription}

// Field sets used by the wallet dialogs
var (
	TransferFields      = []FieldName{FieldAmount, FieldTransferAddress, FieldDescription}
	BoostFields         = []FieldName{FieldAmount, FieldDescription}
	BoostSettingsFields = []FieldName{FieldAddress, FieldDescription}
)

// DescriptionPolicy decides what happens to a description that exceeds the length bound
type DescriptionPolicy string

const (
	// DescriptionPolicyStrict rejects an over-length description as invalid
	DescriptionPolicyStrict DescriptionPolicy = "strict"
	// DescriptionPolicyLenient accepts any description unchanged
	DescriptionPolicyLenient DescriptionPolicy = "lenient"
)

// ParseDescriptionPolicy parses a policy name, case-insensitively
func ParseDescriptionPolicy(raw string) (DescriptionPolicy, error) {
	switch DescriptionPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case DescriptionPolicyStrict:
		return DescriptionPolicyStrict, nil
	case DescriptionPolicyLenient:
		return DescriptionPolicyLenient, nil
	default:
		return "", fmt.Errorf("unknown description policy %q", raw)
	}
}

// FormState holds one validation field per tracked field name. Untracked fields are nil.
type FormState struct {
	Amount          Field[domain.Amount]
	Address         Field[domain.Address]
	TransferAddress Field[domain.Address]
	Description     Field[domain.Description]
}

// FieldError is the single error surfaced for a form
type FieldError struct {
	Field   FieldName
	Kind    ErrorKind
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Validator validates a fixed set of transfer form fields.
// It is immutable after construction and safe to share.
type Validator struct {
	tracked        map[FieldName]bool
	policy         DescriptionPolicy
	descriptionMax int
}

// Option configures a Validator
type Option func(*Validator)

// WithDescriptionPolicy sets how over-length descriptions are treated
func WithDescriptionPolicy(policy DescriptionPolicy) Option {
	return func(v *Validator) {
		v.policy = policy
	}
}

// WithDescriptionMaxLength sets the description bound in runes. n <= 0 disables the bound.
func WithDescriptionMaxLength(n int) Option {
	return func(v *Validator) {
		v.descriptionMax = n
	}
}

// NewValidator creates a validator tracking the given fields. Unknown names are ignored.
func NewValidator(fields []FieldName, opts ...Option) *Validator {
	v := &Validator{
		tracked:        make(map[FieldName]bool, len(fields)),
		policy:         DescriptionPolicyStrict,
		descriptionMax: domain.DefaultDescriptionMaxLength,
	}
	for _, name := range fields {
		switch name {
		case FieldAmount, FieldAddress, FieldTransferAddress, FieldDescription:
			v.tracked[name] = true
		}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Tracks reports whether the validator tracks the named field
func (v *Validator) Tracks(name FieldName) bool {
	return v.tracked[name]
}

// Initial returns a state in which every tracked field is Empty
func (v *Validator) Initial() FormState {
	var s FormState
	if v.tracked[FieldAmount] {
		s.Amount = Empty[domain.Amount]{}
	}
	if v.tracked[FieldAddress] {
		s.Address = Empty[domain.Address]{}
	}
	if v.tracked[FieldTransferAddress] {
		s.TransferAddress = Empty[domain.Address]{}
	}
	if v.tracked[FieldDescription] {
		s.Description = Empty[domain.Description]{}
	}
	return s
}

// ValidateAmount parses an amount and checks it against the current balance
func ValidateAmount(balance domain.Amount, raw *string) Field[domain.Amount] {
	if raw == nil {
		return invalid[domain.Amount](nil, ErrorKindInvalid)
	}
	amount, err := domain.ParseAmount(*raw)
	if err != nil {
		return invalid[domain.Amount](raw, ErrorKindInvalid)
	}
	if amount.GreaterThan(balance) {
		return invalid[domain.Amount](raw, ErrorKindLowBalance)
	}
	return Valid[domain.Amount]{Value: amount}
}

// ValidateAddress parses an address, checking its format and checksum
func ValidateAddress(raw *string) Field[domain.Address] {
	if raw == nil {
		return invalid[domain.Address](nil, ErrorKindInvalid)
	}
	address, err := domain.ParseAddress(*raw)
	if err != nil {
		return invalid[domain.Address](raw, ErrorKindInvalid)
	}
	return Valid[domain.Address]{Value: address}
}

// ValidateTransferAddress validates a destination address, rejecting the wallet's own address
func ValidateTransferAddress(own domain.Address, raw *string) Field[domain.Address] {
	field := ValidateAddress(raw)
	if valid, ok := field.(Valid[domain.Address]); ok && valid.Value.Equal(own) {
		return invalid[domain.Address](raw, ErrorKindSameAddress)
	}
	return field
}

// ValidateDescription validates an optional description. Undefined input is a valid empty note.
func (v *Validator) ValidateDescription(raw *string) Field[domain.Description] {
	if raw == nil {
		return Valid[domain.Description]{}
	}
	bound := v.descriptionMax
	if v.policy == DescriptionPolicyLenient {
		bound = 0
	}
	description, err := domain.ParseDescription(*raw, bound)
	if err != nil {
		return invalid[domain.Description](raw, ErrorKindInvalid)
	}
	return Valid[domain.Description]{Value: description}
}

// Reduce applies an action to a state and returns the new state.
// The input state is never modified; actions on untracked fields return it unchanged.
func (v *Validator) Reduce(state FormState, action Action) FormState {
	next := state

	switch a := action.(type) {
	case SetAmount:
		if v.tracked[FieldAmount] {
			next.Amount = ValidateAmount(a.Balance, a.Raw)
		}
	case SetAddress:
		if v.tracked[FieldAddress] {
			next.Address = ValidateAddress(a.Raw)
		}
	case SetTransferAddress:
		if v.tracked[FieldTransferAddress] {
			next.TransferAddress = ValidateTransferAddress(a.Own, a.Raw)
		}
	case SetDescription:
		if v.tracked[FieldDescription] {
			next.Description = v.ValidateDescription(a.Raw)
		}
	case RevalidateAll:
		next = v.revalidateAll(state, a)
	}

	return next
}

func (v *Validator) revalidateAll(state FormState, a RevalidateAll) FormState {
	next := state

	if v.tracked[FieldAmount] {
		next.Amount = revalidate(state.Amount,
			func(f Valid[domain.Amount]) Field[domain.Amount] {
				if f.Value.GreaterThan(a.Balance) {
					return invalid[domain.Amount](Input(f.Value.String()), ErrorKindLowBalance)
				}
				return f
			},
			func(raw *string) Field[domain.Amount] { return ValidateAmount(a.Balance, raw) },
		)
	}

	if v.tracked[FieldAddress] {
		next.Address = revalidate(state.Address,
			func(f Valid[domain.Address]) Field[domain.Address] { return f },
			ValidateAddress,
		)
	}

	if v.tracked[FieldTransferAddress] {
		next.TransferAddress = revalidate(state.TransferAddress,
			func(f Valid[domain.Address]) Field[domain.Address] {
				if f.Value.Equal(a.Own) {
					return invalid[domain.Address](Input(f.Value.String()), ErrorKindSameAddress)
				}
				return f
			},
			func(raw *string) Field[domain.Address] { return ValidateTransferAddress(a.Own, raw) },
		)
	}

	if v.tracked[FieldDescription] {
		next.Description = revalidate(state.Description,
			func(f Valid[domain.Description]) Field[domain.Description] { return f },
			v.ValidateDescription,
		)
	}

	return next
}

// Error returns the first invalid field in priority order, or nil when there is none
func (v *Validator) Error(state FormState) *FieldError {
	for _, name := range priority {
		if !v.tracked[name] {
			continue
		}
		if kind, ok := invalidKind(state, name); ok {
			return &FieldError{Field: name, Kind: kind, Message: message(name, kind)}
		}
	}
	return nil
}

// ErrorMessage returns the single message to show for a state, or "" when there is no error
func (v *Validator) ErrorMessage(state FormState) string {
	if err := v.Error(state); err != nil {
		return err.Message
	}
	return ""
}

// Ready reports whether every tracked field is Valid, i.e. the form may be submitted
func (v *Validator) Ready(state FormState) bool {
	ready := true
	if v.tracked[FieldAmount] {
		ready = ready && isValid[domain.Amount](state.Amount)
	}
	if v.tracked[FieldAddress] {
		ready = ready && isValid[domain.Address](state.Address)
	}
	if v.tracked[FieldTransferAddress] {
		ready = ready && isValid[domain.Address](state.TransferAddress)
	}
	if v.tracked[FieldDescription] {
		ready = ready && isValid[domain.Description](state.Description)
	}
	return ready
}

func invalidKind(state FormState, name FieldName) (ErrorKind, bool) {
	switch name {
	case FieldAmount:
		if f, ok := state.Amount.(Invalid[domain.Amount]); ok {
			return f.Kind, true
		}
	case FieldAddress:
		if f, ok := state.Address.(Invalid[domain.Address]); ok {
			return f.Kind, true
		}
	case FieldTransferAddress:
		if f, ok := state.TransferAddress.(Invalid[domain.Address]); ok {
			return f.Kind, true
		}
	case FieldDescription:
		if f, ok := state.Description.(Invalid[domain.Description]); ok {
			return f.Kind, true
		}
	}
	return "", false
}

func message(name FieldName, kind ErrorKind) string {
	switch name {
	case FieldAmount:
		if kind == ErrorKindLowBalance {
			return "Not enough funds for transfer"
		}
		return "Invalid amount"
	case FieldAddress, FieldTransferAddress:
		if kind == ErrorKindSameAddress {
			return "Destination address and source address are the same"
		}
		return "Invalid address"
	case FieldDescription:
		return "Description is too long"
	default:
		return ""
	}
}
