// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migrations

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/internal/testutils"
	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func TestRunMigrations(t *testing.T) {
	require := require.New(t)
	app := testutils.SetupTestInTempDir(t)
	var bufWriter bytes.Buffer
	ux.NewUserLog(zap.NewNop(), &bufWriter)

	expectedIfRan := runMessage + "\n" + endMessage + "\n"
	expectedIfFailed := runMessage + "\n" + failedEndMessage + "\n"
	announce := func(_ *application.WasmDeploy, r *migrationRunner) error {
		r.printMigrationMessage()
		return nil
	}
	skip := func(*application.WasmDeploy, *migrationRunner) error { return nil }
	fail := func(*application.WasmDeploy, *migrationRunner) error { return errors.New("bogus fail") }

	tests := []struct {
		name           string
		migs           map[int]migrationFunc
		shouldErr      bool
		expectedOutput string
	}{
		{name: "no migrations", migs: map[int]migrationFunc{}},
		{name: "migration fail", migs: map[int]migrationFunc{0: fail}, shouldErr: true},
		{name: "1 mig, apply", migs: map[int]migrationFunc{0: announce}, expectedOutput: expectedIfRan},
		{name: "2 mig, apply both", migs: map[int]migrationFunc{0: announce, 1: announce}, expectedOutput: expectedIfRan},
		{name: "2 mig, apply 1", migs: map[int]migrationFunc{0: skip, 1: announce}, expectedOutput: expectedIfRan},
		{name: "2 mig, first one fails", migs: map[int]migrationFunc{0: fail, 1: announce}, shouldErr: true},
		{
			name:           "2 mig, apply 1, second one fails",
			migs:           map[int]migrationFunc{0: announce, 1: fail},
			shouldErr:      true,
			expectedOutput: expectedIfFailed,
		},
	}

	for _, tt := range tests {
		bufWriter.Reset()
		runner := &migrationRunner{showMsg: true, migrations: tt.migs}
		err := runner.run(app)
		if tt.shouldErr {
			require.Error(err, tt.name)
		} else {
			require.NoError(err, tt.name)
		}
		require.Equal(tt.expectedOutput, bufWriter.String(), tt.name)
	}
}

func TestUpgradeConfigSchema(t *testing.T) {
	require := require.New(t)
	app := testutils.SetupTestInTempDir(t)
	legacy := `{
  "settings": {"store_code_chunk_size": 3},
  "chains": [{"chain_id": "juno-1", "denom": "ujuno", "prefix": "juno", "rpc_endpoint": "http://localhost:26657"}],
  "envs": [{"env_id": "dev", "chain_id": "juno-1", "key_name": "deployer", "is_active": true}],
  "keys": []
}`
	require.NoError(os.MkdirAll(filepath.Dir(app.Workspace.ConfigPath), constants.DefaultPerms755))
	require.NoError(os.WriteFile(app.Workspace.ConfigPath, []byte(legacy), constants.WriteReadUserOnlyPerms))

	require.NoError(RunMigrations(app))

	cfg, err := app.LoadConfig()
	require.NoError(err)
	require.Equal(constants.ConfigVersion, cfg.Version)
	require.Contains(cfg.Chains, "juno-1")
	env, err := cfg.ActiveEnv()
	require.NoError(err)
	require.Equal("juno-1", env.ChainLabel)
	require.NotNil(env.Contracts)

	raw, err := os.ReadFile(app.Workspace.ConfigPath)
	require.NoError(err)
	require.Contains(string(raw), `"chain_label": "juno-1"`)
}

func TestUpgradeConfigSchemaWithoutConfig(t *testing.T) {
	app := testutils.SetupTestInTempDir(t)
	require.NoError(t, RunMigrations(app))
	require.False(t, app.ConfigExists())
}

func TestOutdated(t *testing.T) {
	tests := []struct {
		version  string
		expected bool
	}{
		{"", true},
		{"0.5.0", true},
		{"v0.6.9", true},
		{"garbage", true},
		{constants.ConfigVersion, false},
		{"v9.0.0", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, outdated(tt.version), tt.version)
	}
}
