// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build !cgo || !ledger

package key

// The cosmos-sdk ledger driver is only compiled in with cgo and the ledger tag.
const ledgerSupported = false
