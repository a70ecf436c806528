// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewConfig()
	require.NoError(t, cfg.AddChain("local", ChainInfo{ChainID: "testing-1", Denom: "ustake", Prefix: "cosmos"}))
	require.NoError(t, cfg.AddKey(UserKey{Name: "deployer", Key: KeyMaterial{Mnemonic: "abandon"}}))
	require.NoError(t, cfg.AddEnv(Env{EnvID: "dev", ChainLabel: "local", KeyName: "deployer"}))
	return cfg
}

func TestActiveEnvSwitching(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)

	require.NoError(cfg.AddEnv(Env{EnvID: "prod", ChainLabel: "local", KeyName: "deployer"}))
	env, err := cfg.ActiveEnv()
	require.NoError(err)
	require.Equal("prod", env.EnvID)

	require.NoError(cfg.ActivateEnv("dev"))
	active := 0
	for _, e := range cfg.Envs {
		if e.IsActive {
			active++
			require.Equal("dev", e.EnvID)
		}
	}
	require.Equal(1, active)

	require.ErrorIs(cfg.ActivateEnv("missing"), constants.ErrEnvNotFound)
	require.ErrorIs(cfg.AddEnv(Env{EnvID: "dev"}), constants.ErrEnvAlreadyExists)
}

func TestActiveEnvMissing(t *testing.T) {
	require := require.New(t)
	cfg := NewConfig()

	_, err := cfg.ActiveEnv()
	require.ErrorIs(err, constants.ErrEnvNotFound)
	_, err = cfg.Contract("alpha")
	require.ErrorIs(err, constants.ErrEnvNotFound)
}

func TestActiveChainAndKey(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)

	info, err := cfg.ActiveChainInfo()
	require.NoError(err)
	require.Equal("testing-1", info.ChainID)

	key, err := cfg.ActiveKey()
	require.NoError(err)
	require.Equal("deployer", key.Name)
	require.Equal(KeyKindMnemonic, key.Kind())

	cfg.DeleteKey("deployer")
	_, err = cfg.ActiveKey()
	var keyErr *constants.KeyNotFoundError
	require.True(errors.As(err, &keyErr))
	require.Equal("deployer", keyErr.KeyName)
	require.ErrorIs(err, constants.ErrKeyNotFound)

	cfg.DeleteChain("local")
	_, err = cfg.ActiveChainInfo()
	require.ErrorIs(err, constants.ErrChainConfigNotFound)
}

func TestChainMutation(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)

	require.ErrorIs(cfg.AddChain("local", ChainInfo{}), constants.ErrChainAlreadyExists)
	require.NoError(cfg.ReplaceChain("local", ChainInfo{ChainID: "testing-2"}))
	require.Equal("testing-2", cfg.Chains["local"].ChainID)
	require.ErrorIs(cfg.ReplaceChain("other", ChainInfo{}), constants.ErrChainConfigNotFound)
}

func TestRegistryUpsert(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)

	_, err := cfg.Contract("alpha")
	require.ErrorIs(err, constants.ErrContractNotFound)

	require.NoError(cfg.UpsertContract(ContractInfo{Name: "alpha", CodeID: 7}))
	_, err = cfg.ContractAddr("alpha")
	require.ErrorIs(err, constants.ErrAddrNotFound)

	ci, err := cfg.Contract("alpha")
	require.NoError(err)
	ci.Addr = "cosmos1alpha"
	require.NoError(cfg.UpsertContract(ci))

	addr, err := cfg.ContractAddr("alpha")
	require.NoError(err)
	require.Equal("cosmos1alpha", addr)
	codeID, err := cfg.ContractCodeID("alpha")
	require.NoError(err)
	require.Equal(uint64(7), codeID)

	contracts, err := cfg.Contracts()
	require.NoError(err)
	require.Len(contracts, 1)

	require.ErrorIs(cfg.AddContract(ContractInfo{Name: "alpha"}), constants.ErrContractAlreadyExists)
	require.NoError(cfg.DeleteContract("alpha"))
	require.ErrorIs(cfg.DeleteContract("alpha"), constants.ErrContractNotFound)
}

func TestRegistryIsPerEnv(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)

	require.NoError(cfg.UpsertContract(ContractInfo{Name: "alpha", CodeID: 1, Addr: "cosmos1dev"}))
	require.NoError(cfg.AddEnv(Env{EnvID: "prod", ChainLabel: "local", KeyName: "deployer"}))

	_, err := cfg.Contract("alpha")
	require.ErrorIs(err, constants.ErrContractNotFound)

	require.NoError(cfg.ActivateEnv("dev"))
	addr, err := cfg.ContractAddr("alpha")
	require.NoError(err)
	require.Equal("cosmos1dev", addr)
}

func TestChunkSizeDefault(t *testing.T) {
	require := require.New(t)
	require.Equal(constants.DefaultStoreCodeChunkSize, UserSettings{}.ChunkSize())
	require.Equal(5, UserSettings{StoreCodeChunkSize: 5}.ChunkSize())
}

func TestConfigRoundTripKeepsEmptyFields(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)
	require.NoError(cfg.UpsertContract(ContractInfo{Name: "alpha"}))

	data, err := json.Marshal(cfg)
	require.NoError(err)

	var decoded Config
	require.NoError(json.Unmarshal(data, &decoded))
	ci, err := decoded.Contract("alpha")
	require.NoError(err)
	require.False(ci.HasAddr())
	require.False(ci.HasCodeID())
}
