package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/cache"
	"github.com/lucre-fin/lucre/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show classification engine diagnostics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			stats := app.engine.Stats(cmd.Context())

			cmd.Println(cli.TitleStyle.Render("Caches"))
			printCacheStats(cmd, "patterns", stats.Cache.Patterns)
			printCacheStats(cmd, "merchants", stats.Cache.Merchants)
			printCacheStats(cmd, "banking", stats.Cache.Banking)
			printCacheStats(cmd, "categories", stats.Cache.Categories)

			cmd.Println(cli.TitleStyle.Render("Dictionary"))
			cmd.Printf("  cache hits %d, store hits %d, builtin hits %d, store errors %d\n",
				stats.Dictionary.CacheHits,
				stats.Dictionary.StoreHits,
				stats.Dictionary.BuiltinHits,
				stats.Dictionary.StoreErrors,
			)

			cmd.Println(cli.TitleStyle.Render("Learning"))
			cmd.Printf("  learned patterns %d, corpus size %d\n",
				stats.LearnedPatternCount,
				stats.CorpusSize,
			)
			return nil
		},
	}
}

func printCacheStats(cmd *cobra.Command, name string, s cache.Stats) {
	cmd.Printf("  %-10s size %d/%d, hits %d, misses %d, evictions %d, hit rate %s\n",
		name, s.Size, s.Capacity, s.Hits, s.Misses, s.Evictions,
		fmt.Sprintf("%.0f%%", s.HitRate*100),
	)
}
