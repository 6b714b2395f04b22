package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/alchemy"
	"curator/internal/credits"
	"curator/internal/migrate"
	"curator/internal/richtext"
)

func newCreditsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Regenerate exhibition credit documents on Contentful entries",
		Long: `Rebuilds the locale-keyed markdown credits of every exhibition from the
source credit pages and merges them into the matching Contentful entries.
Entries are updated in place; documents without a matching entry are skipped.`,
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

			if _, err := rt.index.Load(runCtx); err != nil {
				return err
			}

			store, err := alchemy.Open(runCtx, rt.cfg.Source.DatabaseURL, rt.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			pages, err := store.CreditPages(runCtx)
			if err != nil {
				return err
			}

			aggregator := credits.NewAggregator(store, rt.mgmt, rt.index, richtext.NewConverter(), rt.logger)
			docs := credits.GroupPages(pages)
			outcomes := make([]migrate.Outcome, 0, len(docs))
			for _, doc := range docs {
				outcome, err := aggregator.Publish(runCtx, doc)
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
