package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/alchemy"
	"curator/internal/images"
	"curator/internal/migrate"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "Upload source pictures as Contentful assets",
		Long: `Uploads every distinct picture referenced by page content as a Contentful
asset. Pictures whose derived asset id already exists on the remote side are
skipped, so reruns are safe.`,
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

			runCtx := cmd.Context()

			// Fail fast if neither cache nor remote listing is usable.
			if _, err := rt.index.Load(runCtx); err != nil {
				return err
			}

			store, err := alchemy.Open(runCtx, rt.cfg.Source.DatabaseURL, rt.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			pictures, err := store.Pictures(runCtx)
			if err != nil {
				return err
			}

			migrator := images.NewMigrator(rt.index, rt.mgmt, rt.cfg.Images.ServerURL, rt.logger)
			outcomes := make([]migrate.Outcome, 0, len(pictures))
			for _, picture := range pictures {
				outcome, err := migrator.Migrate(runCtx, picture)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, outcome)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderOutcomes(outcomes))
			printFailures(cmd.OutOrStdout(), outcomes)
			return nil
		},
	}
}
