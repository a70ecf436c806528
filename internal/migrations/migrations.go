// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package migrations upgrades workspace state written by older releases.
package migrations

import (
	"sort"

	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

const (
	runMessage       = "The workspace state needs to be migrated to the current version. This may take a moment..."
	endMessage       = "Migration completed successfully."
	failedEndMessage = "Migration failed. The state file was left as it was before the failing step."
)

type migrationFunc func(*application.WasmDeploy, *migrationRunner) error

type migrationRunner struct {
	showMsg    bool
	running    bool
	migrations map[int]migrationFunc
}

// RunMigrations applies every migration in order. Each migration decides on its own
// whether there is anything to do.
func RunMigrations(app *application.WasmDeploy) error {
	runner := &migrationRunner{
		showMsg: true,
		migrations: map[int]migrationFunc{
			0: upgradeConfigSchema,
		},
	}
	return runner.run(app)
}

func (m *migrationRunner) run(app *application.WasmDeploy) error {
	keys := make([]int, 0, len(m.migrations))
	for k := range m.migrations {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		if err := m.migrations[k](app, m); err != nil {
			if m.running {
				ux.Logger.PrintToUser(failedEndMessage)
			}
			return err
		}
	}
	if m.running {
		ux.Logger.PrintToUser(endMessage)
	}
	return nil
}

// printMigrationMessage announces the migration the first time a step changes something.
func (m *migrationRunner) printMigrationMessage() {
	if m.showMsg {
		ux.Logger.PrintToUser(runMessage)
	}
	m.showMsg = false
	m.running = true
}
