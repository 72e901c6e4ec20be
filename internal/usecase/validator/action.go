package validator

import "github.com/f1r3sky/wallet-backend/internal/domain"

// Action is a reducer action. It is exactly one of the types below; the interface is sealed.
type Action interface {
	isAction()
}

// SetAmount validates a new raw amount against the current balance
type SetAmount struct {
	Balance domain.Amount
	Raw     *string
}

// SetAddress validates a new raw address
type SetAddress struct {
	Raw *string
}

// SetTransferAddress validates a new raw destination address against the sender's own address
type SetTransferAddress struct {
	Own domain.Address
	Raw *string
}

// SetDescription validates a new raw description
type SetDescription struct {
	Raw *string
}

// RevalidateAll re-runs every tracked field with its current value and fresh context
type RevalidateAll struct {
	Balance domain.Amount
	Own     domain.Address
}

func (SetAmount) isAction()          {}
func (SetAddress) isAction()         {}
func (SetTransferAddress) isAction() {}
func (SetDescription) isAction()     {}
func (RevalidateAll) isAction()      {}
