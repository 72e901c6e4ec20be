package domain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// AddressKind identifies the network format of an Address
type AddressKind string

const (
	AddressKindRev      AddressKind = "REV"
	AddressKindEthereum AddressKind = "ETHEREUM"
)

const (
	revTokenID       = "\x00\x00\x00"
	revVersion       = "\x00"
	revHashLength    = 32
	revChecksumBytes = 4
	revPayloadLength = len(revTokenID) + len(revVersion) + revHashLength
)

// Address is a checksum-validated wallet endpoint identifier.
// Two addresses are equal when their normalized string values are equal.
type Address struct {
	value string
	kind  AddressKind
}

// ParseAddress validates a raw address string and returns the normalized Address
// Accepted formats:
//   - REV: base58(payload || blake2b-256(payload)[:4]), payload = token(3) || version(1) || hash(32)
//   - Ethereum: 0x + 40 hex digits; mixed-case input must carry a valid EIP-55 checksum
func ParseAddress(raw string) (Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Address{}, fmt.Errorf("%w: empty value", ErrInvalidAddress)
	}

	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		return parseEthereumAddress(trimmed)
	}

	return parseRevAddress(trimmed)
}

func parseEthereumAddress(raw string) (Address, error) {
	if !common.IsHexAddress(raw) {
		return Address{}, fmt.Errorf("%w: %q is not a hex address", ErrInvalidAddress, raw)
	}

	checksummed := common.HexToAddress(raw).Hex()
	digits := raw[2:]
	mixedCase := strings.ToLower(digits) != digits && strings.ToUpper(digits) != digits
	if mixedCase && digits != checksummed[2:] {
		return Address{}, fmt.Errorf("%w: %q has a bad checksum", ErrInvalidAddress, raw)
	}

	return Address{value: checksummed, kind: AddressKindEthereum}, nil
}

func parseRevAddress(raw string) (Address, error) {
	decoded, err := base58.Decode(raw)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q is not base58", ErrInvalidAddress, raw)
	}

	if len(decoded) != revPayloadLength+revChecksumBytes {
		return Address{}, fmt.Errorf("%w: %q has length %d", ErrInvalidAddress, raw, len(decoded))
	}

	payload := decoded[:revPayloadLength]
	checksum := decoded[revPayloadLength:]
	if !bytes.Equal(checksum, revChecksum(payload)) {
		return Address{}, fmt.Errorf("%w: %q has a bad checksum", ErrInvalidAddress, raw)
	}

	return Address{value: raw, kind: AddressKindRev}, nil
}

// revAddressFromHash builds a REV address for the firecap token from a 32-byte hash
func revAddressFromHash(hash []byte) (Address, error) {
	if len(hash) != revHashLength {
		return Address{}, fmt.Errorf("%w: hash must be %d bytes", ErrInvalidAddress, revHashLength)
	}

	payload := make([]byte, 0, revPayloadLength+revChecksumBytes)
	payload = append(payload, revTokenID...)
	payload = append(payload, revVersion...)
	payload = append(payload, hash...)
	payload = append(payload, revChecksum(payload)...)

	return Address{value: base58.Encode(payload), kind: AddressKindRev}, nil
}

func revChecksum(payload []byte) []byte {
	sum := blake2b.Sum256(payload)
	return sum[:revChecksumBytes]
}

// String returns the normalized address value
func (a Address) String() string {
	return a.value
}

// Kind returns the address format
func (a Address) Kind() AddressKind {
	return a.kind
}

// IsZero reports whether the address was never parsed
func (a Address) IsZero() bool {
	return a.value == ""
}

// Equal compares addresses by normalized value
func (a Address) Equal(other Address) bool {
	return a.value == other.value
}
