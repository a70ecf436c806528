// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migrations

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/constants"
)

// upgradeConfigSchema rewrites a state file older than constants.ConfigVersion. The
// model decoders accept the legacy chain and env layouts, so loading and saving again
// is the whole upgrade.
func upgradeConfigSchema(app *application.WasmDeploy, runner *migrationRunner) error {
	if !app.ConfigExists() {
		return nil
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if !outdated(cfg.Version) {
		return nil
	}
	runner.printMigrationMessage()
	app.Log.Info("upgrading config schema",
		zap.String("from", cfg.Version),
		zap.String("to", constants.ConfigVersion),
	)
	if err := app.Lock(); err != nil {
		return err
	}
	defer func() { _ = app.Unlock() }()
	return app.SaveConfig(cfg)
}

// outdated reports whether version predates the current schema. Releases before
// versioning wrote no version at all, and some wrote it without the leading v.
func outdated(version string) bool {
	if version == "" {
		return true
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return true
	}
	return semver.Compare(version, constants.ConfigVersion) < 0
}
