// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package workspace creates new contract workspaces from a git template.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
)

var ErrNotEmpty = errors.New("target directory is not empty")

type CloneOptions struct {
	Template string
	// Ref is a branch of the template. Empty means its default branch.
	Ref string
	// Depth limits history fetched; zero fetches everything.
	Depth    int
	Progress io.Writer
}

// Create clones the template into dir, drops its git history and makes sure the new
// workspace has a contract manifest.
func Create(ctx context.Context, dir string, opts CloneOptions) error {
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrNotEmpty, dir)
	}
	clone := &git.CloneOptions{
		URL:      opts.Template,
		Depth:    opts.Depth,
		Progress: opts.Progress,
	}
	if opts.Ref != "" {
		clone.ReferenceName = plumbing.NewBranchReferenceName(opts.Ref)
		clone.SingleBranch = true
	}
	if _, err := git.PlainCloneContext(ctx, dir, false, clone); err != nil {
		return fmt.Errorf("failed cloning %s: %w", opts.Template, err)
	}
	if err := os.RemoveAll(filepath.Join(dir, git.GitDirName)); err != nil {
		return err
	}

	manifest := filepath.Join(dir, constants.ManifestFileName)
	if _, err := os.Stat(manifest); errors.Is(err, os.ErrNotExist) {
		return contract.WriteManifest(manifest, contract.Manifest{Contracts: []*contract.ManifestContract{}})
	}
	return nil
}
