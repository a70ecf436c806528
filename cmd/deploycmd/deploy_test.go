// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/internal/testutils"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	promptmocks "github.com/luxfi/wasm-deploy/pkg/prompts/mocks"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

// setupWorkspace saves a dev env on a local chain, registers two contracts with
// artifacts on disk and returns the buffer the user output goes to.
func setupWorkspace(t *testing.T) *bytes.Buffer {
	t.Helper()
	require := require.New(t)
	prompts.SetNonInteractive(true)
	t.Cleanup(func() { prompts.SetNonInteractive(false) })

	app = testutils.SetupTestInTempDir(t)
	app.Contracts = []contract.Contract{
		&contract.ManifestContract{Base: contract.Base{ContractName: "token", AdminAddr: "wasm1admin"}},
		&contract.ManifestContract{Base: contract.Base{ContractName: "vault", AdminAddr: "wasm1admin"}},
	}

	cfg := models.NewConfig()
	require.NoError(cfg.AddChain("local", models.ChainInfo{
		ChainID:     "testing",
		Denom:       "ustake",
		Prefix:      "wasm",
		GasPrice:    0.025,
		RPCEndpoint: "http://localhost:26657",
	}))
	require.NoError(cfg.AddKey(models.UserKey{Name: "deployer"}))
	require.NoError(cfg.AddEnv(models.Env{EnvID: "dev", ChainLabel: "local", KeyName: "deployer"}))
	require.NoError(app.SaveConfig(cfg))

	require.NoError(os.MkdirAll(app.Workspace.ArtifactsDir, constants.DefaultPerms755))
	for _, c := range app.Contracts {
		path := filepath.Join(app.Workspace.ArtifactsDir, c.BinName()+constants.WasmExtension)
		require.NoError(os.WriteFile(path, []byte("\x00asm"), constants.WriteReadReadPerms))
	}

	var out bytes.Buffer
	ux.NewUserLog(zap.NewNop(), &out)
	return &out
}

func runDeploy(args ...string) error {
	root := &cobra.Command{Use: "wasm-deploy", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewCmds(app)...)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.Execute()
}

func TestDryRunStages(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
		absent   []string
	}{
		{
			name:     "store-code",
			args:     []string{"store-code", "--dry-run"},
			expected: []string{"would store token from", "would store vault from"},
		},
		{
			name:     "store-code of one contract",
			args:     []string{"store-code", "--dry-run", "--contracts", "vault"},
			expected: []string{"would store vault from"},
			absent:   []string{"would store token"},
		},
		{
			name: "deploy without build",
			args: []string{"deploy", "--dry-run", "--no-build"},
			expected: []string{
				"would store token from",
				"✓ store-code (",
				"✓ set-up (",
				"Deployed 2 contracts",
			},
			absent: []string{"build ("},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			out := setupWorkspace(t)
			require.NoError(runDeploy(tt.args...))
			for _, s := range tt.expected {
				require.Contains(out.String(), s)
			}
			for _, s := range tt.absent {
				require.NotContains(out.String(), s)
			}

			// dry runs never touch the registry
			cfg, err := app.LoadConfig()
			require.NoError(err)
			contracts, err := cfg.Contracts()
			require.NoError(err)
			require.Empty(contracts)
		})
	}
}

func TestDryRunUnknownContract(t *testing.T) {
	setupWorkspace(t)
	require.ErrorIs(t, runDeploy("store-code", "--dry-run", "--contracts", "oracle"), constants.ErrContractNotFound)
}

func TestSendDryRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
		err      string
	}{
		{
			name:     "chain denom",
			args:     []string{"--amount", "250"},
			expected: "would send 250ustake to wasm1recipient",
		},
		{
			name:     "explicit denom",
			args:     []string{"--amount", "7", "--denom", "ujuno"},
			expected: "would send 7ujuno to wasm1recipient",
		},
		{
			name: "invalid denom",
			args: []string{"--amount", "7", "--denom", "1bad"},
			err:  "invalid --denom",
		},
		{
			name: "zero amount",
			args: []string{"--amount", "0"},
			err:  "invalid amount",
		},
		{
			name: "no amount without a terminal",
			err:  "missing --amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			out := setupWorkspace(t)
			args := append([]string{"send", "--dry-run", "--address", "wasm1recipient"}, tt.args...)
			err := runDeploy(args...)
			if tt.err != "" {
				require.ErrorContains(err, tt.err)
				return
			}
			require.NoError(err)
			require.Contains(out.String(), tt.expected)
		})
	}
}

func TestSendPromptsForAmount(t *testing.T) {
	require := require.New(t)
	out := setupWorkspace(t)
	prompt := &promptmocks.Prompter{}
	prompt.On("CaptureUint64", mock.Anything).Return(uint64(42), nil).Once()
	app.Prompt = prompt

	require.NoError(runDeploy("send", "--dry-run", "--address", "wasm1recipient"))
	require.Contains(out.String(), "would send 42ustake to wasm1recipient")
	prompt.AssertExpectations(t)
}

func TestCw20SendRequiresAmount(t *testing.T) {
	setupWorkspace(t)
	err := runDeploy("cw20-send", "vault", "--dry-run", "--token", "wasm1token", "--msg", `{"stake":{}}`)
	require.ErrorIs(t, err, prompts.ErrNonInteractive)
	require.ErrorContains(t, err, "missing --amount")
}

func TestCallFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{
			name: "execute msg",
			args: []string{"execute", "token", "--msg", "{transfer"},
			err:  "--msg is not valid JSON",
		},
		{
			name: "execute funds",
			args: []string{"execute", "token", "--msg", `{"mint":{}}`, "--funds", "100"},
			err:  `invalid --funds "100"`,
		},
		{
			name: "query msg",
			args: []string{"query", "token", "--msg", "[1,"},
			err:  "--msg is not valid JSON",
		},
		{
			name: "payload",
			args: []string{"execute-payload", "--address", "wasm1token", "--payload", "nope"},
			err:  "--payload is not valid JSON",
		},
		{
			name: "cw20 hook",
			args: []string{"cw20-send", "vault", "--token", "wasm1token", "--amount", "5", "--msg", "{"},
			err:  "--msg is not valid JSON",
		},
		{
			name: "cw20 action",
			args: []string{"cw20-execute", "--token", "wasm1token", "--msg", "{}", "--transfer-to", "wasm1bob"},
			err:  errOneCw20Action.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupWorkspace(t)
			require.ErrorContains(t, runDeploy(tt.args...), tt.err)
		})
	}
}

func TestParseFunds(t *testing.T) {
	tests := []struct {
		value    string
		expected sdk.Coins
		err      bool
	}{
		{value: ""},
		{value: "100uatom", expected: sdk.NewCoins(sdk.NewInt64Coin("uatom", 100))},
		{value: "5ujuno,100uatom", expected: sdk.NewCoins(sdk.NewInt64Coin("uatom", 100), sdk.NewInt64Coin("ujuno", 5))},
		{value: "100", err: true},
		{value: "uatom", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require := require.New(t)
			coins, err := parseFunds(tt.value)
			if tt.err {
				require.ErrorContains(err, "invalid --funds")
				return
			}
			require.NoError(err)
			require.Equal(tt.expected.String(), coins.String())
		})
	}
}

func TestParseMsg(t *testing.T) {
	require := require.New(t)
	msg, err := parseMsg("msg", "")
	require.NoError(err)
	require.Nil(msg)

	msg, err = parseMsg("msg", `{"set_config":{"owner":"&vault"}}`)
	require.NoError(err)
	require.Equal(json.RawMessage(`{"set_config":{"owner":"&vault"}}`), msg)

	_, err = parseMsg("payload", `{"a":`)
	require.EqualError(err, "--payload is not valid JSON")
}

func TestSendCoins(t *testing.T) {
	require := require.New(t)
	coins, err := sendCoins("ustake", 18_446_744_073_709_551_615)
	require.NoError(err)
	require.Equal("18446744073709551615ustake", coins.String())

	coins, err = sendCoins("ustake", 0)
	require.NoError(err)
	require.True(coins.IsZero())

	_, err = sendCoins("", 1)
	require.ErrorContains(err, "invalid --denom")
	_, err = sendCoins("u$", 1)
	require.ErrorContains(err, "invalid --denom")
}
