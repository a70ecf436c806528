// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/wasm-deploy/internal/testutils"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
)

func runConfig(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewCmd(app, &cobra.Command{Use: "wasm-deploy"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestInitAndChunkSize(t *testing.T) {
	require := require.New(t)
	prompts.SetNonInteractive(true)
	t.Cleanup(func() { prompts.SetNonInteractive(false) })
	app = testutils.SetupTestInTempDir(t)

	require.NoError(runConfig(t, "init",
		"--chain-id", "localwasm-1",
		"--denom", "ustake",
		"--prefix", "wasm",
		"--gas-price", "0.025",
		"--rpc", "http://localhost:26657",
		"--generate",
	))

	cfg, err := app.LoadConfig()
	require.NoError(err)
	env, err := cfg.ActiveEnv()
	require.NoError(err)
	require.Equal(defaultEnvID, env.EnvID)
	require.Equal("localwasm-1", env.ChainLabel)
	require.Equal(defaultKeyName, env.KeyName)
	require.Len(cfg.Keys, 1)
	require.NotEmpty(cfg.Keys[0].Key.Mnemonic)

	require.ErrorContains(runConfig(t, "init", "--generate"), "already exists")

	require.NoError(runConfig(t, "chunk-size", "5"))
	cfg, err = app.LoadConfig()
	require.NoError(err)
	require.Equal(5, cfg.Settings.StoreCodeChunkSize)

	require.Error(runConfig(t, "chunk-size", "0"))
}
