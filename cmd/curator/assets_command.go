package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Inspect and refresh the remote asset id index",
	}

	assetsCmd.AddCommand(newAssetsListCommand(ctx))
	assetsCmd.AddCommand(newAssetsCacheCommand(ctx))

	return assetsCmd
}

func newAssetsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Load the asset id index and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.newRuntime()
			if err != nil {
				return err
			}
			ids, err := rt.index.Load(cmd.Context())
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			return encoder.Encode(ids)
		},
	}
}

func newAssetsCacheCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Refresh the asset id index from Contentful and write the cache file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.newRuntime()
			if err != nil {
				return err
			}
			release, err := rt.acquireRunLock()
			if err != nil {
				return err
			}
			defer release()

			ids, err := rt.index.RefreshFromRemote(cmd.Context())
			if err != nil {
				return err
			}
			if err := rt.index.Persist(ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached %d asset ids to %s\n", len(ids), rt.cfg.Cache.AssetIDsPath)
			return nil
		},
	}
}
