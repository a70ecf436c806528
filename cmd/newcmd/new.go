// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package newcmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/ux"
	"github.com/luxfi/wasm-deploy/pkg/workspace"
)

var app *application.WasmDeploy

type newFlags struct {
	template string
	ref      string
	quiet    bool
}

// wasm-deploy new
func NewCmd(injectedApp *application.WasmDeploy) *cobra.Command {
	app = injectedApp
	f := &newFlags{}
	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a contract workspace from a template",
		Long: `Clone a workspace template into <dir> without its git history. The workspace
gets an empty deployment.yaml when the template has none. Its header shows how
to quote "&name" contract references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return create(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.template, "template", constants.DefaultTemplateURL, "git url of the workspace template")
	cmd.Flags().StringVar(&f.ref, "ref", "", "branch of the template (default its default branch)")
	cmd.Flags().BoolVar(&f.quiet, "no-progress", false, "hide clone progress")
	return cmd
}

func create(cmd *cobra.Command, dir string, f *newFlags) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dir), constants.DefaultPerms755); err != nil {
		return err
	}
	opts := workspace.CloneOptions{
		Template: f.template,
		Ref:      f.ref,
		Depth:    1,
	}
	if !f.quiet {
		opts.Progress = cmd.OutOrStdout()
	}
	app.Log.Info("creating workspace", zap.String("dir", dir), zap.String("template", f.template))
	if err := workspace.Create(cmd.Context(), dir, opts); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Created workspace %s", dir)
	ux.Logger.PrintToUser("Next: cd %s && %s config init", dir, constants.AppName)
	return nil
}
