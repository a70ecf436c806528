// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package models

// KeyKind names where a signing key lives.
type KeyKind string

const (
	KeyKindMnemonic KeyKind = "mnemonic"
	KeyKindKeyring  KeyKind = "keyring"
	KeyKindLedger   KeyKind = "ledger"
)

// UserKey is a named signing key. Exactly one of the Key variants is set.
type UserKey struct {
	Name string      `json:"name"`
	Key  KeyMaterial `json:"key"`
}

type KeyMaterial struct {
	Mnemonic string         `json:"Mnemonic,omitempty"`
	Keyring  *KeyringParams `json:"Keyring,omitempty"`
	Ledger   *LedgerParams  `json:"Ledger,omitempty"`
}

// KeyringParams points at a key held by the OS keyring. Service is the keyring app
// name and User the key uid inside it.
type KeyringParams struct {
	Service string `json:"service"`
	User    string `json:"user"`
	Backend string `json:"backend,omitempty"`
	Dir     string `json:"dir,omitempty"`
}

type LedgerParams struct {
	CoinType uint32 `json:"coin_type"`
	Account  uint32 `json:"account"`
	Index    uint32 `json:"index"`
}

func (k UserKey) Kind() KeyKind {
	switch {
	case k.Key.Keyring != nil:
		return KeyKindKeyring
	case k.Key.Ledger != nil:
		return KeyKindLedger
	default:
		return KeyKindMnemonic
	}
}
