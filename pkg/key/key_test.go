// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"strings"
	"testing"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/stretchr/testify/require"
)

// well known test mnemonic, never holds funds
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testCodec() codec.Codec {
	reg := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(reg)
	return codec.NewProtoCodec(reg)
}

func TestLoadMnemonic(t *testing.T) {
	require := require.New(t)
	cdc := testCodec()

	info := models.ChainInfo{Prefix: "cosmos", DerivationPath: "m/44'/118'/0'/0/0"}
	signer, err := Load(models.UserKey{Name: "deployer", Key: models.KeyMaterial{Mnemonic: testMnemonic}}, info, cdc)
	require.NoError(err)
	require.False(signer.Ledger)

	addr, err := signer.Address("cosmos")
	require.NoError(err)
	require.Equal("cosmos19rl4cm2hmr8afy4kldpxz3fka4jguq0auqdal4", addr)

	junoAddr, err := signer.Address("juno")
	require.NoError(err)
	require.True(strings.HasPrefix(junoAddr, "juno1"))
}

func TestLoadMnemonicDerivationPathMatters(t *testing.T) {
	require := require.New(t)
	cdc := testCodec()

	k := models.UserKey{Name: "deployer", Key: models.KeyMaterial{Mnemonic: testMnemonic}}
	a, err := Load(k, models.ChainInfo{DerivationPath: "m/44'/118'/0'/0/0"}, cdc)
	require.NoError(err)
	b, err := Load(k, models.ChainInfo{DerivationPath: "m/44'/330'/0'/0/0"}, cdc)
	require.NoError(err)

	addrA, err := a.Address("cosmos")
	require.NoError(err)
	addrB, err := b.Address("cosmos")
	require.NoError(err)
	require.NotEqual(addrA, addrB)
}

func TestLoadInvalidMnemonic(t *testing.T) {
	cdc := testCodec()

	_, err := Load(models.UserKey{Name: "bad", Key: models.KeyMaterial{Mnemonic: "not a mnemonic"}}, models.ChainInfo{}, cdc)
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestImportMnemonicIntoTestKeyring(t *testing.T) {
	require := require.New(t)
	cdc := testCodec()

	params := &models.KeyringParams{Service: "wasm-deploy-test", User: "deployer", Backend: "test", Dir: t.TempDir()}
	require.NoError(ImportMnemonic(params, testMnemonic, "", cdc))

	signer, err := Load(models.UserKey{Name: "deployer", Key: models.KeyMaterial{Keyring: params}}, models.ChainInfo{}, cdc)
	require.NoError(err)
	addr, err := signer.Address("cosmos")
	require.NoError(err)
	require.Equal("cosmos19rl4cm2hmr8afy4kldpxz3fka4jguq0auqdal4", addr)

	missing := *params
	missing.User = "nobody"
	_, err = Load(models.UserKey{Name: "nobody", Key: models.KeyMaterial{Keyring: &missing}}, models.ChainInfo{}, cdc)
	require.Error(err)
}

func TestNewMnemonic(t *testing.T) {
	m, err := NewMnemonic()
	require.NoError(t, err)
	require.Len(t, strings.Fields(m), 24)
}

func TestLoadLedgerWithoutSupport(t *testing.T) {
	if ledgerSupported {
		t.Skip("built with ledger support")
	}
	require := require.New(t)
	k := models.UserKey{Name: "hw", Key: models.KeyMaterial{Ledger: &models.LedgerParams{CoinType: 118}}}
	_, err := Load(k, models.ChainInfo{Prefix: "cosmos"}, testCodec())
	require.ErrorIs(err, ErrLedgerUnsupported)
	require.ErrorContains(err, "-tags ledger")
}
