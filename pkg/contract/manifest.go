// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"errors"
	"fmt"
	"os"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"gopkg.in/yaml.v3"
)

var (
	errEmptyContractName = errors.New("contract without a name in manifest")
	errYAMLAnchor        = errors.New("contract references must be quoted")
)

// manifestHeader opens every manifest WriteManifest creates.
const manifestHeader = `# Contracts deployed by wasm-deploy, in deployment order.
#
# Message strings of the form "&name" are replaced by the address of contract
# name. Quote them: an unquoted &name is a YAML anchor and never reaches the
# message.
#
#   contracts:
#     - name: vault
#       admin: wasm1...
#       instantiate:
#         token: "&token"
`

// Manifest is the deployment.yaml describing the contracts of a workspace.
//
// Strings starting with & refer to other contracts and must be quoted, since YAML
// reads an unquoted &name as an anchor. ParseManifest rejects anchors for that reason.
type Manifest struct {
	Contracts []*ManifestContract `yaml:"contracts"`
}

// ManifestContract is a Contract whose messages come from the manifest.
type ManifestContract struct {
	Base `yaml:",inline"`

	Instantiate Msg                   `yaml:"instantiate,omitempty"`
	Migrate     Msg                   `yaml:"migrate,omitempty"`
	SetConfig   Msg                   `yaml:"set_config,omitempty"`
	SetUp       []Msg                 `yaml:"set_up,omitempty"`
	External    []ExternalInstantiate `yaml:"external_instantiate,omitempty"`

	// Presets offered when executing or querying interactively.
	Execute Msg `yaml:"execute,omitempty"`
	Query   Msg `yaml:"query,omitempty"`
}

var (
	_ Contract    = (*ManifestContract)(nil)
	_ Interactive = (*ManifestContract)(nil)
)

func (c *ManifestContract) InstantiateMsg() Msg                           { return c.Instantiate }
func (c *ManifestContract) MigrateMsg() Msg                               { return c.Migrate }
func (c *ManifestContract) SetConfigMsg() Msg                             { return c.SetConfig }
func (c *ManifestContract) SetUpMsgs() []Msg                              { return c.SetUp }
func (c *ManifestContract) ExternalInstantiateMsgs() []ExternalInstantiate { return c.External }

func (c *ManifestContract) InstantiateInteractive(p prompts.Prompter) (Msg, error) {
	return captureMsg(p, c.Name(), "instantiate", c.Instantiate)
}

func (c *ManifestContract) MigrateInteractive(p prompts.Prompter) (Msg, error) {
	return captureMsg(p, c.Name(), "migrate", c.Migrate)
}

func (c *ManifestContract) ExecuteInteractive(p prompts.Prompter) (Msg, error) {
	return captureMsg(p, c.Name(), "execute", c.Execute)
}

func (c *ManifestContract) QueryInteractive(p prompts.Prompter) (Msg, error) {
	return captureMsg(p, c.Name(), "query", c.Query)
}

func (c *ManifestContract) Cw20SendInteractive(p prompts.Prompter) (Msg, error) {
	return captureMsg(p, c.Name(), "cw20 send hook", nil)
}

func captureMsg(p prompts.Prompter, name, kind string, preset Msg) (Msg, error) {
	if preset != nil {
		usePreset, err := p.CaptureYesNo(fmt.Sprintf("Use the %s msg for %s from the manifest?", kind, name))
		if err != nil {
			return nil, err
		}
		if usePreset {
			return preset, nil
		}
	}
	raw, err := p.CaptureJSON(fmt.Sprintf("Enter the %s msg for %s as JSON", kind, name))
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// LoadManifest reads the contracts listed in a deployment.yaml.
func LoadManifest(path string) ([]Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading contract manifest: %w", err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) ([]Contract, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid contract manifest: %w", err)
	}
	if err := rejectAnchors(&doc); err != nil {
		return nil, err
	}
	var m Manifest
	// an empty file decodes to a zero node
	if doc.Kind != 0 {
		if err := doc.Decode(&m); err != nil {
			return nil, fmt.Errorf("invalid contract manifest: %w", err)
		}
	}
	seen := map[string]bool{}
	contracts := make([]Contract, 0, len(m.Contracts))
	for _, c := range m.Contracts {
		if c.ContractName == "" {
			return nil, errEmptyContractName
		}
		if seen[c.ContractName] {
			return nil, fmt.Errorf("contract %s listed twice in manifest", c.ContractName)
		}
		seen[c.ContractName] = true
		contracts = append(contracts, c)
	}
	return contracts, nil
}

func rejectAnchors(n *yaml.Node) error {
	if n.Anchor != "" {
		return fmt.Errorf("%w: line %d has the YAML anchor &%s, write \"&%s\" instead", errYAMLAnchor, n.Line, n.Anchor, n.Anchor)
	}
	for _, c := range n.Content {
		if err := rejectAnchors(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteManifest writes contracts in manifest form, under a header explaining
// contract references.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(manifestHeader), data...), constants.WriteReadReadPerms)
}
