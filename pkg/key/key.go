// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key turns a configured UserKey into a cosmos-sdk keyring holding it.
package key

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
)

var (
	ErrInvalidMnemonic   = errors.New("invalid mnemonic")
	ErrLedgerUnsupported = errors.New("ledger support is not compiled in, rebuild with CGO_ENABLED=1 and -tags ledger")
)

// CheckLedgerSupport fails unless the binary was built with cgo and -tags ledger.
// Ledger keys can still be configured without it, they just cannot sign.
func CheckLedgerSupport() error {
	if !ledgerSupported {
		return ErrLedgerUnsupported
	}
	return nil
}

// Signer is a keyring with the uid of the key used to sign.
type Signer struct {
	Keyring keyring.Keyring
	UID     string
	Ledger  bool
}

// Address returns the bech32 account address of the signer under prefix.
func (s *Signer) Address(prefix string) (string, error) {
	record, err := s.Keyring.Key(s.UID)
	if err != nil {
		return "", err
	}
	addr, err := record.GetAddress()
	if err != nil {
		return "", err
	}
	return sdk.Bech32ifyAddressBytes(prefix, addr)
}

// Load opens the keyring that holds k. Mnemonics are derived in memory with the chain's
// derivation path, so the same mnemonic yields the right account on every chain.
func Load(k models.UserKey, chain models.ChainInfo, cdc codec.Codec) (*Signer, error) {
	switch k.Kind() {
	case models.KeyKindKeyring:
		return loadKeyring(k, cdc)
	case models.KeyKindLedger:
		return loadLedger(k, chain, cdc)
	default:
		return loadMnemonic(k, chain, cdc)
	}
}

func loadMnemonic(k models.UserKey, chain models.ChainInfo, cdc codec.Codec) (*Signer, error) {
	if !bip39.IsMnemonicValid(k.Key.Mnemonic) {
		return nil, fmt.Errorf("%w for key %s", ErrInvalidMnemonic, k.Name)
	}
	kr := keyring.NewInMemory(cdc)
	if _, err := kr.NewAccount(k.Name, k.Key.Mnemonic, "", derivationPath(chain), hd.Secp256k1); err != nil {
		return nil, fmt.Errorf("failed deriving key %s: %w", k.Name, err)
	}
	return &Signer{Keyring: kr, UID: k.Name}, nil
}

func loadKeyring(k models.UserKey, cdc codec.Codec) (*Signer, error) {
	params := k.Key.Keyring
	kr, err := OpenKeyring(params, cdc)
	if err != nil {
		return nil, err
	}
	if _, err := kr.Key(params.User); err != nil {
		return nil, fmt.Errorf("%w: %s in the %s keyring", constants.ErrKeyNotFound, params.User, params.Service)
	}
	return &Signer{Keyring: kr, UID: params.User}, nil
}

func loadLedger(k models.UserKey, chain models.ChainInfo, cdc codec.Codec) (*Signer, error) {
	if err := CheckLedgerSupport(); err != nil {
		return nil, fmt.Errorf("key %s: %w", k.Name, err)
	}
	params := k.Key.Ledger
	kr := keyring.NewInMemory(cdc)
	if _, err := kr.SaveLedgerKey(k.Name, hd.Secp256k1, chain.Prefix, params.CoinType, params.Account, params.Index); err != nil {
		return nil, fmt.Errorf("failed reading key from the ledger: %w", err)
	}
	return &Signer{Keyring: kr, UID: k.Name, Ledger: true}, nil
}

// OpenKeyring opens the OS backed keyring named by params.
func OpenKeyring(params *models.KeyringParams, cdc codec.Codec) (keyring.Keyring, error) {
	backend := params.Backend
	if backend == "" {
		backend = keyring.BackendOS
	}
	service := params.Service
	if service == "" {
		service = constants.KeyringServiceName
	}
	return keyring.New(service, backend, params.Dir, bufio.NewReader(os.Stdin), cdc)
}

// ImportMnemonic stores mnemonic in the keyring named by params under params.User.
func ImportMnemonic(params *models.KeyringParams, mnemonic, hdPath string, cdc codec.Codec) error {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return err
	}
	kr, err := OpenKeyring(params, cdc)
	if err != nil {
		return err
	}
	if hdPath == "" {
		hdPath = constants.DefaultDerivationPath
	}
	_, err = kr.NewAccount(params.User, mnemonic, "", hdPath, hd.Secp256k1)
	return err
}

func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewMnemonic returns a fresh 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func derivationPath(chain models.ChainInfo) string {
	if chain.DerivationPath == "" {
		return constants.DefaultDerivationPath
	}
	return chain.DerivationPath
}
