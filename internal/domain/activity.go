package domain

import (
	"time"

	"github.com/google/uuid"
)

// Direction tells whether a boost or transfer moved funds into or out of the wallet
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// RequestStatus represents the lifecycle of a funds request
type RequestStatus string

const (
	RequestStatusDone      RequestStatus = "done"
	RequestStatusOngoing   RequestStatus = "ongoing"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// RequestEntry is a request for funds. Only done requests have moved the balance.
type RequestEntry struct {
	ID        string
	Timestamp time.Time
	Amount    Amount
	Status    RequestStatus
}

// BoostEntry is a one-directional token gift attached to a profile or post
type BoostEntry struct {
	ID                  string
	Timestamp           time.Time
	Amount              Amount
	Direction           Direction
	CounterpartyAddress string
	Username            string
	PostID              string // empty for profile boosts
}

// TransferEntry is a direct peer-to-peer token movement.
// Cost is the network (phlo) fee paid by the sender on outgoing transfers.
type TransferEntry struct {
	ID                  string
	Timestamp           time.Time
	Amount              Amount
	Cost                Amount
	Direction           Direction
	CounterpartyAddress string
	Description         string
}

// WalletState is a snapshot of a wallet's present balance and full activity history
type WalletState struct {
	Address   Address
	Balance   Amount
	Requests  []RequestEntry
	Boosts    []BoostEntry
	Transfers []TransferEntry
}

// TransferKind distinguishes a plain transfer from a boost when submitting
type TransferKind string

const (
	TransferKindTransfer TransferKind = "TRANSFER"
	TransferKindBoost    TransferKind = "BOOST"
)

// TransferRequest is a validated, ready-to-submit token movement
type TransferRequest struct {
	ID          uuid.UUID
	Kind        TransferKind
	From        Address
	To          Address
	Amount      Amount
	Cost        Amount
	Description Description
	PostID      string // boosts only
	CreatedAt   time.Time
}

// TransferReceipt is returned once a transfer has been accepted by the ledger
type TransferReceipt struct {
	ID          uuid.UUID
	Kind        TransferKind
	Amount      Amount
	Cost        Amount
	NewBalance  Amount
	FinalizedAt time.Time
}

// BoostSettings holds a user's boost configuration: where boosts land and the message shown
type BoostSettings struct {
	OwnerDID      string
	WalletAddress Address
	Message       Description
	UpdatedAt     time.Time
}
