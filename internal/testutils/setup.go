// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/config"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(zap.NewNop(), io.Discard)
	return require.New(t)
}

// SetupTestInTempDir returns an app whose workspace is a fresh temp dir.
func SetupTestInTempDir(t *testing.T) *application.WasmDeploy {
	t.Helper()
	ws, err := application.NewWorkspaceSettings(t.TempDir())
	require.NoError(t, err)

	app := application.New()
	app.Setup(t.TempDir(), zap.NewNop(), config.New(), prompts.NewNonInteractivePrompter(), ws)
	ux.NewUserLog(zap.NewNop(), io.Discard)
	return app
}
