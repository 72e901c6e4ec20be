package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// WalletType represents the network a wallet belongs to
type WalletType string

const (
	WalletTypeF1R3CAP  WalletType = "F1R3CAP"
	WalletTypeEthereum WalletType = "ETHEREUM"
)

// Wallet is a wallet linked to the current user
type Wallet struct {
	Type    WalletType
	Address Address
	Label   string
}

// NewRevWalletFromPrivateKey derives a F1R3CAP wallet from a hex-encoded secp256k1 private key
// Derivation:
//  1. ethAddr = keccak256(uncompressed public key without prefix)[12:]
//  2. hash = keccak256(ethAddr)
//  3. address = base58(token || version || hash || blake2b-256(...)[:4])
func NewRevWalletFromPrivateKey(keyHex string) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	ethAddr := crypto.PubkeyToAddress(key.PublicKey)
	address, err := revAddressFromHash(crypto.Keccak256(ethAddr.Bytes()))
	if err != nil {
		return nil, err
	}

	return &Wallet{Type: WalletTypeF1R3CAP, Address: address}, nil
}

// NewEthereumWalletFromPrivateKey derives an Ethereum wallet from a hex-encoded secp256k1 private key
func NewEthereumWalletFromPrivateKey(keyHex string) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(keyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return &Wallet{
		Type:    WalletTypeEthereum,
		Address: Address{value: crypto.PubkeyToAddress(key.PublicKey).Hex(), kind: AddressKindEthereum},
	}, nil
}

// NewExternalWallet links a wallet by address only
func NewExternalWallet(address Address, label string) *Wallet {
	walletType := WalletTypeF1R3CAP
	if address.Kind() == AddressKindEthereum {
		walletType = WalletTypeEthereum
	}
	return &Wallet{Type: walletType, Address: address, Label: label}
}
