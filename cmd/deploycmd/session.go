// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/build"
	"github.com/luxfi/wasm-deploy/pkg/chain"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/dependencies"
	"github.com/luxfi/wasm-deploy/pkg/deployment"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

// session is one command's view of the workspace: the state file, held under the
// workspace lock, and an engine connected to the active env.
type session struct {
	cfg    *models.Config
	client *chain.CosmosClient
	engine *deployment.Engine
}

type sessionOptions struct {
	dryRun      bool
	interactive bool
}

func openSession(opts sessionOptions) (*session, error) {
	if err := app.Lock(); err != nil {
		return nil, err
	}
	s := &session{}
	if err := s.open(opts); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) open(opts sessionOptions) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	s.cfg = cfg

	var client chain.Client
	if !opts.dryRun {
		info, err := cfg.ActiveChainInfo()
		if err != nil {
			return err
		}
		key, err := cfg.ActiveKey()
		if err != nil {
			return err
		}
		if s.client, err = chain.Dial(info, key, app.Log); err != nil {
			return err
		}
		client = s.client
	}

	chunkSize := cfg.Settings.ChunkSize()
	if n := app.Conf.ChunkSize(); n > 0 {
		chunkSize = n
	}
	s.engine = deployment.New(deployment.Config{
		Client:       client,
		Store:        app.Store(cfg),
		ArtifactsDir: app.Workspace.ArtifactsDir,
		ChunkSize:    chunkSize,
		DryRun:       opts.dryRun,
		Interactive:  opts.interactive,
		Prompt:       app.Prompt,
		Log:          app.Log,
		Out:          ux.Logger,
		Progress:     os.Stderr,
	})
	return nil
}

func (s *session) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
	_ = app.Unlock()
}

func checkBuildTools(ctx context.Context) error {
	return dependencies.Check(ctx, dependencies.BuildTools, dependencies.ExecVersion)
}

func newBuilder(cargoArgs []string) *build.Builder {
	return &build.Builder{
		Root:         app.Workspace.Root,
		TargetDir:    app.Workspace.TargetDir,
		ArtifactsDir: app.Workspace.ArtifactsDir,
		Toolchain:    app.Conf.Toolchain(),
		CargoArgs:    cargoArgs,
		Log:          app.Log,
	}
}

// selectOne returns the workspace contract called name.
func selectOne(name string) (contract.Contract, error) {
	all, err := app.LoadContracts()
	if err != nil {
		return nil, err
	}
	selected, err := contract.Select(all, []string{name})
	if err != nil {
		return nil, err
	}
	return selected[0], nil
}

func completeContractNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	all, err := app.LoadContracts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return contract.Names(all), cobra.ShellCompDirectiveNoFileComp
}

// parseMsg decodes a JSON flag value. An empty value means no message was given.
func parseMsg(flagName, value string) (contract.Msg, error) {
	if value == "" {
		return nil, nil
	}
	if !json.Valid([]byte(value)) {
		return nil, fmt.Errorf("--%s is not valid JSON", flagName)
	}
	return json.RawMessage(value), nil
}

func parseFunds(value string) (sdk.Coins, error) {
	if value == "" {
		return nil, nil
	}
	coins, err := sdk.ParseCoinsNormalized(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --funds %q: %w", value, err)
	}
	return coins, nil
}
