// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/prompts/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testManifest = `
contracts:
  - name: alpha
    package: alpha-token
    admin: cosmos1admin
    instantiate:
      admin: "&beta"
      decimals: 6
    set_up:
      - register: {}
      - enable: {id: 1}
    external_instantiate:
      - name: alpha-cw20
        code_id: 42
        msg: {name: "Alpha"}
  - name: beta
    admin: cosmos1admin
    set_config:
      update: {fee: "0.1"}
`

func TestParseManifest(t *testing.T) {
	require := require.New(t)

	contracts, err := ParseManifest([]byte(testManifest))
	require.NoError(err)
	require.Equal([]string{"alpha", "beta"}, Names(contracts))

	alpha := contracts[0]
	require.Equal("alpha-token", alpha.PackageID())
	require.Equal("alpha_token", alpha.BinName())
	require.Equal(filepath.Join("contracts", "alpha"), alpha.Path())
	require.Equal("cosmos1admin", alpha.Admin())
	require.Nil(alpha.MigrateMsg())
	require.Nil(alpha.SetConfigMsg())
	require.Len(alpha.SetUpMsgs(), 2)

	out, err := json.Marshal(alpha.InstantiateMsg())
	require.NoError(err)
	require.JSONEq(`{"admin":"&beta","decimals":6}`, string(out))

	external := alpha.ExternalInstantiateMsgs()
	require.Len(external, 1)
	require.Equal("alpha-cw20", external[0].Name)
	require.Equal(uint64(42), external[0].CodeID)

	beta := contracts[1]
	require.Nil(beta.InstantiateMsg())
	require.NotNil(beta.SetConfigMsg())
	require.Empty(beta.ExternalInstantiateMsgs())
}

func TestParseManifestRejectsDuplicates(t *testing.T) {
	_, err := ParseManifest([]byte("contracts:\n  - name: a\n  - name: a\n"))
	require.Error(t, err)

	_, err = ParseManifest([]byte("contracts:\n  - admin: x\n"))
	require.ErrorIs(t, err, errEmptyContractName)
}

func TestParseManifestContractReferences(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		expected string
		err      string
	}{
		{
			name:     "quoted reference",
			manifest: "contracts:\n  - name: a\n    instantiate:\n      token: \"&beta\"\n",
			expected: `{"token":"&beta"}`,
		},
		{
			name:     "unquoted anchor without value",
			manifest: "contracts:\n  - name: a\n    instantiate:\n      token: &beta\n",
			err:      `line 4 has the YAML anchor &beta, write "&beta" instead`,
		},
		{
			name:     "unquoted anchor on a value",
			manifest: "contracts:\n  - name: a\n    instantiate:\n      token: &beta wasm1x\n",
			err:      "&beta",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			contracts, err := ParseManifest([]byte(tt.manifest))
			if tt.err != "" {
				require.ErrorIs(err, errYAMLAnchor)
				require.ErrorContains(err, tt.err)
				return
			}
			require.NoError(err)
			out, err := json.Marshal(contracts[0].InstantiateMsg())
			require.NoError(err)
			require.JSONEq(tt.expected, string(out))
		})
	}
}

func TestParseEmptyManifest(t *testing.T) {
	require := require.New(t)
	for _, data := range []string{"", "# nothing yet\n", manifestHeader + "contracts: []\n"} {
		contracts, err := ParseManifest([]byte(data))
		require.NoError(err)
		require.Empty(contracts)
	}
}

func TestWriteManifestDocumentsReferences(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), constants.ManifestFileName)
	m := Manifest{Contracts: []*ManifestContract{{
		Base:        Base{ContractName: "vault", AdminAddr: "wasm1admin"},
		Instantiate: map[string]any{"token": "&token"},
	}}}
	require.NoError(WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(err)
	require.Contains(string(data), `Quote them`)
	contracts, err := LoadManifest(path)
	require.NoError(err)
	out, err := json.Marshal(contracts[0].InstantiateMsg())
	require.NoError(err)
	require.JSONEq(`{"token":"&token"}`, string(out))
}

func TestManifestInteractive(t *testing.T) {
	require := require.New(t)
	contracts, err := ParseManifest([]byte(testManifest))
	require.NoError(err)
	alpha := contracts[0].(Interactive)

	prompter := &mocks.Prompter{}
	prompter.On("CaptureYesNo", mock.Anything).Return(false, nil).Once()
	prompter.On("CaptureJSON", mock.Anything).Return(json.RawMessage(`{"custom":{}}`), nil).Once()

	msg, err := alpha.InstantiateInteractive(prompter)
	require.NoError(err)
	require.Equal(json.RawMessage(`{"custom":{}}`), msg)

	// no preset, straight to the JSON prompt
	prompter.On("CaptureJSON", mock.Anything).Return(json.RawMessage(`{"ping":{}}`), nil).Once()
	msg, err = alpha.QueryInteractive(prompter)
	require.NoError(err)
	require.Equal(json.RawMessage(`{"ping":{}}`), msg)
	prompter.AssertExpectations(t)
}

func TestBaseDefaults(t *testing.T) {
	require := require.New(t)
	b := Base{ContractName: "MyToken", AdminAddr: "cosmos1a"}

	require.Equal("MyToken", b.PackageID())
	require.Equal("my_token", b.BinName())
	require.Nil(b.InstantiateMsg())
	_, err := b.InstantiateInteractive(nil)
	require.ErrorIs(err, constants.ErrNotImplemented)
}

func TestSelect(t *testing.T) {
	require := require.New(t)
	all := []Contract{Base{ContractName: "a"}, Base{ContractName: "b"}, Base{ContractName: "c"}}

	selected, err := Select(all, nil)
	require.NoError(err)
	require.Len(selected, 3)

	selected, err = Select(all, []string{"c", "a"})
	require.NoError(err)
	require.Equal([]string{"c", "a"}, Names(selected))

	_, err = Select(all, []string{"d"})
	require.ErrorIs(err, constants.ErrContractNotFound)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"cw20-base": "cw20_base",
		"MyToken":   "my_token",
		"vault":     "vault",
		"ABC":       "abc",
	}
	for in, expected := range tests {
		require.Equal(t, expected, SnakeCase(in), in)
	}
}
