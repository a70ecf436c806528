// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/wasm-deploy/pkg/models"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

func newChunkSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chunk-size [n]",
		Short: "Show or set how many contracts store-code puts in one transaction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				cfg, err := app.LoadConfig()
				if err != nil {
					return err
				}
				ux.Logger.PrintToUser("%d", cfg.Settings.ChunkSize())
				return nil
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("chunk size must be a positive integer, got %q", args[0])
			}
			err = app.UpdateConfig(func(cfg *models.Config) error {
				cfg.Settings.StoreCodeChunkSize = n
				return nil
			})
			if err != nil {
				return err
			}
			ux.Logger.GreenCheckmarkToUser("store-code now stores %d contracts per transaction", n)
			return nil
		},
	}
}
