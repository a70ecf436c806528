// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/wasm-deploy/pkg/constants"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)
	viper.Reset()
	t.Cleanup(viper.Reset)

	c := New()
	require.Empty(c.Workspace())
	require.Zero(c.ChunkSize())
	require.Equal(constants.DefaultRustToolchain, c.Toolchain())
	require.False(c.ConfigFileExists())
}

func TestEnvOverrides(t *testing.T) {
	require := require.New(t)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("WASM_DEPLOY_STORE_CODE_CHUNK_SIZE", "4")
	t.Setenv("WASM_DEPLOY_RUST_TOOLCHAIN", "1.81.0")

	Bind()
	c := New()
	require.Equal(4, c.ChunkSize())
	require.Equal("1.81.0", c.Toolchain())
}

func TestWorkspaceOverrides(t *testing.T) {
	require := require.New(t)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("WASM_DEPLOY_ARTIFACTS_DIR", "out")
	t.Setenv("WASM_DEPLOY_TARGET_DIR", "/tmp/target")

	Bind()
	c := New()
	require.Equal("out", c.ArtifactsDir())
	require.Equal("/tmp/target", c.TargetDir())
	require.Empty(c.StateFile())
}
