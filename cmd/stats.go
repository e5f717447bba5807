package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vodila/vodila/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your progress and the community stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		id, authErr := e.identify(ctx)

		var (
			snap  progress.Snapshot
			stats progress.Stats
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snap, err = e.client.FetchProgress(gctx)
			if err != nil {
				return fmt.Errorf("fetch progress: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			stats, err = e.client.FetchStats(gctx)
			if err != nil {
				return fmt.Errorf("fetch stats: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		who := id.DisplayName()
		if authErr != nil {
			who += " (offline identity)"
		}
		printStats(who, snap, stats)
		return nil
	},
}

func printStats(who string, snap progress.Snapshot, stats progress.Stats) {
	sep := strings.Repeat("─", 40)

	fmt.Printf("Studying as: %s\n", who)
	fmt.Println(sep)
	fmt.Printf("%-14s %6d\n", "Known", snap.TotalKnown)
	fmt.Printf("%-14s %6d\n", "To learn", snap.TotalUnknown)
	fmt.Println()
	fmt.Printf("Everyone, %d cards\n", stats.TotalCards)
	fmt.Println(sep)
	fmt.Printf("%-14s %6d\n", "Known", stats.Known)
	fmt.Printf("%-14s %6d\n", "Unknown", stats.Unknown)
	fmt.Printf("%-14s %6d\n", "Not started", stats.NotStarted)
}
