// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package build compiles workspace contracts to optimized, gzipped wasm artifacts.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
)

// Runner runs one external command in dir with extra environment variables.
type Runner func(ctx context.Context, dir string, env []string, name string, args ...string) error

type Builder struct {
	Root         string
	TargetDir    string
	ArtifactsDir string
	// Toolchain is passed to cargo as +<toolchain> when set.
	Toolchain string
	CargoArgs []string
	Log       *zap.Logger
	// Run defaults to executing the command with its output on Stdout and Stderr.
	Run    Runner
	Stdout io.Writer
	Stderr io.Writer
}

// Build compiles every contract with cargo, then optimizes and compresses the results
// in parallel.
func (b *Builder) Build(ctx context.Context, contracts []contract.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	run := b.runner()
	env := []string{"RUSTFLAGS=-C link-arg=-s"}
	for _, c := range contracts {
		args := make([]string, 0, 10+len(b.CargoArgs))
		if b.Toolchain != "" {
			args = append(args, "+"+b.Toolchain)
		}
		args = append(args, "build", "--release", "--lib",
			"--target="+constants.WasmTarget,
			"-p", c.PackageID(),
		)
		if b.TargetDir != "" {
			args = append(args, "--target-dir", b.TargetDir)
		}
		args = append(args, b.CargoArgs...)
		b.log().Info("building contract", zap.String("contract", c.Name()))
		if err := run(ctx, b.Root, env, "cargo", args...); err != nil {
			return fmt.Errorf("could not build %s: %w", c.Name(), err)
		}
	}

	if err := os.MkdirAll(b.ArtifactsDir, constants.DefaultPerms755); err != nil {
		return err
	}
	errGroup, ctx := errgroup.WithContext(ctx)
	for _, c := range contracts {
		errGroup.Go(func() error {
			out := filepath.Join(b.ArtifactsDir, c.BinName()+constants.WasmExtension)
			if err := run(ctx, b.Root, nil, "wasm-opt", "-Oz", "-o", out, b.compiledPath(c)); err != nil {
				return fmt.Errorf("could not optimize %s: %w", c.Name(), err)
			}
			if _, err := GzipFile(out); err != nil {
				return fmt.Errorf("could not compress %s: %w", c.Name(), err)
			}
			return nil
		})
	}
	return errGroup.Wait()
}

func (b *Builder) compiledPath(c contract.Contract) string {
	target := b.TargetDir
	if target == "" {
		target = filepath.Join(b.Root, constants.TargetDirName)
	}
	return filepath.Join(target, constants.WasmTarget, constants.CargoReleaseSubdir, c.BinName()+constants.WasmExtension)
}

func (b *Builder) runner() Runner {
	if b.Run != nil {
		return b.Run
	}
	stdout, stderr := b.Stdout, b.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return func(ctx context.Context, dir string, env []string, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // G204: cargo and wasm-opt with workspace arguments
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), env...)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}
}

func (b *Builder) log() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}

// GzipFile writes src compressed to src.gz, replacing an older one, and returns its path.
func GzipFile(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dst := src + constants.GzipExtension
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	zw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		_ = out.Close()
		return "", err
	}
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return "", err
	}
	return dst, out.Close()
}
