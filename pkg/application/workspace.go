// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/wasm-deploy/pkg/constants"
)

// WorkspaceSettings locates the pieces of a contract workspace. Every path is absolute.
type WorkspaceSettings struct {
	Root          string
	ConfigPath    string
	TargetDir     string
	DeploymentDir string
	ArtifactsDir  string
}

// NewWorkspaceSettings derives the default layout under root, which must be an
// existing directory.
func NewWorkspaceSettings(root string) (WorkspaceSettings, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return WorkspaceSettings{}, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return WorkspaceSettings{}, fmt.Errorf("%w: %s", constants.ErrInvalidDir, root)
	}
	return WorkspaceSettings{
		Root:          abs,
		ConfigPath:    filepath.Join(abs, constants.WorkspaceDirName, constants.ConfigFileName),
		TargetDir:     filepath.Join(abs, constants.TargetDirName),
		DeploymentDir: filepath.Join(abs, constants.DeploymentDirName),
		ArtifactsDir:  filepath.Join(abs, constants.ArtifactsDirName),
	}, nil
}

// StateDir holds the config file, its lock and the logs.
func (ws WorkspaceSettings) StateDir() string {
	return filepath.Dir(ws.ConfigPath)
}

func (ws WorkspaceSettings) ManifestPath() string {
	return filepath.Join(ws.Root, constants.ManifestFileName)
}

func (ws WorkspaceSettings) WithConfigPath(path string) WorkspaceSettings {
	ws.ConfigPath = ws.abs(path)
	return ws
}

func (ws WorkspaceSettings) WithTargetDir(dir string) WorkspaceSettings {
	ws.TargetDir = ws.abs(dir)
	return ws
}

func (ws WorkspaceSettings) WithArtifactsDir(dir string) WorkspaceSettings {
	ws.ArtifactsDir = ws.abs(dir)
	return ws
}

func (ws WorkspaceSettings) WithDeploymentDir(dir string) WorkspaceSettings {
	ws.DeploymentDir = ws.abs(dir)
	return ws
}

func (ws WorkspaceSettings) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ws.Root, path)
}
