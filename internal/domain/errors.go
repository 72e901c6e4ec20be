package domain

import "errors"

// Sentinel errors shared by the domain, use cases and adapters.
// Callers wrap them with fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrDescriptionTooLong = errors.New("description is too long")
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrWalletExists       = errors.New("wallet already exists")
)
