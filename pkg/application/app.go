// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/pkg/config"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
)

var ErrLocked = errors.New("another wasm-deploy command is using this workspace")

type WasmDeploy struct {
	Log       *zap.Logger
	baseDir   string
	Conf      *config.Config
	Prompt    prompts.Prompter
	Workspace WorkspaceSettings
	// Contracts overrides the workspace manifest. Set by programs embedding the CLI.
	Contracts []contract.Contract

	lock *flock.Flock
}

func New() *WasmDeploy {
	return &WasmDeploy{}
}

func (app *WasmDeploy) Setup(baseDir string, log *zap.Logger, conf *config.Config, prompt prompts.Prompter, ws WorkspaceSettings) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.Workspace = ws
}

func (app *WasmDeploy) GetBaseDir() string {
	return app.baseDir
}

func (app *WasmDeploy) GetLogDir() string {
	return filepath.Join(app.Workspace.StateDir(), constants.LogDir)
}

func (app *WasmDeploy) ConfigExists() bool {
	_, err := os.Stat(app.Workspace.ConfigPath)
	return err == nil
}

// LoadConfig reads the workspace state file.
func (app *WasmDeploy) LoadConfig() (*models.Config, error) {
	data, err := os.ReadFile(app.Workspace.ConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, constants.ErrConfigNotFound
	}
	if err != nil {
		return nil, err
	}
	cfg := &models.Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed decoding %s: %w", app.Workspace.ConfigPath, err)
	}
	if cfg.Chains == nil {
		cfg.Chains = models.Chains{}
	}
	return cfg, nil
}

// LoadOrNewConfig returns a fresh config when the workspace has none yet.
func (app *WasmDeploy) LoadOrNewConfig() (*models.Config, error) {
	cfg, err := app.LoadConfig()
	if errors.Is(err, constants.ErrConfigNotFound) {
		return models.NewConfig(), nil
	}
	return cfg, err
}

// SaveConfig replaces the state file atomically so a crash never leaves it truncated.
func (app *WasmDeploy) SaveConfig(cfg *models.Config) error {
	if err := os.MkdirAll(filepath.Dir(app.Workspace.ConfigPath), constants.DefaultPerms755); err != nil {
		return err
	}
	cfg.Version = constants.ConfigVersion
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// keys may hold mnemonics
	return renameio.WriteFile(app.Workspace.ConfigPath, data, constants.WriteReadUserOnlyPerms)
}

// UpdateConfig loads the state file under the workspace lock, applies fn and saves the
// result when fn succeeds.
func (app *WasmDeploy) UpdateConfig(fn func(*models.Config) error) error {
	if err := app.Lock(); err != nil {
		return err
	}
	defer func() { _ = app.Unlock() }()
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return app.SaveConfig(cfg)
}

// Lock takes the workspace lock for the rest of the command. Commands that change the
// state file hold it so two invocations never interleave their writes.
func (app *WasmDeploy) Lock() error {
	if app.lock != nil {
		return nil
	}
	if err := os.MkdirAll(app.Workspace.StateDir(), constants.DefaultPerms755); err != nil {
		return err
	}
	lock := flock.New(filepath.Join(app.Workspace.StateDir(), constants.LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed locking workspace: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	app.lock = lock
	return nil
}

func (app *WasmDeploy) Unlock() error {
	if app.lock == nil {
		return nil
	}
	err := app.lock.Unlock()
	app.lock = nil
	return err
}

// LoadContracts returns the embedded contracts or the ones of the workspace manifest.
func (app *WasmDeploy) LoadContracts() ([]contract.Contract, error) {
	if app.Contracts != nil {
		return app.Contracts, nil
	}
	return contract.LoadManifest(app.Workspace.ManifestPath())
}

// Store is the registry of cfg's active env, saved through app.
func (app *WasmDeploy) Store(cfg *models.Config) *ConfigStore {
	return &ConfigStore{Config: cfg, app: app}
}

// ConfigStore persists the whole config whenever the engine saves the registry.
type ConfigStore struct {
	*models.Config
	app *WasmDeploy
}

func (s *ConfigStore) Save() error {
	return s.app.SaveConfig(s.Config)
}
