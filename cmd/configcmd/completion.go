// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	var (
		dir   string
		shell string
	)
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Write shell completions into the completion dir",
		Long: `Write bash or zsh completions for wasm-deploy into the shell completion dir.
The dir is remembered in the state file; it is asked for the first time.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if shell == "" {
				shell = filepath.Base(os.Getenv("SHELL"))
			}
			return app.UpdateConfig(func(cfg *models.Config) error {
				if dir != "" {
					cfg.ShellCompletionDir = dir
				}
				if cfg.ShellCompletionDir == "" {
					var err error
					if cfg.ShellCompletionDir, err = app.Prompt.CaptureString("Shell completion dir"); err != nil {
						return err
					}
				}
				path, err := WriteCompletion(root, shell, cfg.ShellCompletionDir)
				if err != nil {
					return err
				}
				ux.Logger.GreenCheckmarkToUser("Wrote %s", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "shell completion dir, remembered for later runs")
	cmd.Flags().StringVar(&shell, "shell", "", "bash or zsh (default from $SHELL)")
	return cmd
}

// WriteCompletion generates the completion script of root for shell into dir.
func WriteCompletion(root *cobra.Command, shell, dir string) (string, error) {
	if err := os.MkdirAll(dir, constants.DefaultPerms755); err != nil {
		return "", err
	}
	switch shell {
	case "bash":
		path := filepath.Join(dir, root.Name())
		return path, root.GenBashCompletionFileV2(path, true)
	case "zsh":
		path := filepath.Join(dir, "_"+root.Name())
		return path, root.GenZshCompletionFile(path)
	default:
		return "", constants.ErrUnsupportedShell
	}
}
