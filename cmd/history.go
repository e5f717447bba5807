package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vodila/vodila/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failures, _ := cmd.Flags().GetBool("failures")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if failures {
			return listSyncFailures(cmd, s, limit)
		}
		return listSessionEvents(cmd, s, limit)
	},
}

func listSessionEvents(cmd *cobra.Command, s *store.Store, limit int) error {
	events, err := s.RecentSessionEvents(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("query session events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-5s  %-19s  %-8s  %-18s  %-9s  %s\n",
		"Seq", "Timestamp", "Session", "Mode", "Event", "Position")
	fmt.Println(strings.Repeat("─", 76))

	for _, e := range events {
		session := e.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Printf("%-5d  %-19s  %-8s  %-18s  %-9s  %d/%d\n",
			e.Sequence,
			e.At.Local().Format(timeLayout),
			session,
			e.Mode,
			e.Kind,
			e.Position,
			e.Total,
		)
	}
	return nil
}

func listSyncFailures(cmd *cobra.Command, s *store.Store, limit int) error {
	failures, err := s.RecentSyncFailures(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("query sync failures: %w", err)
	}
	if len(failures) == 0 {
		fmt.Println("No failed progress writes.")
		return nil
	}

	fmt.Printf("%-5s  %-19s  %-6s  %-7s  %s\n",
		"Seq", "Timestamp", "Card", "Status", "Cause")
	fmt.Println(strings.Repeat("─", 76))

	for _, f := range failures {
		cause := f.Cause
		if len(cause) > 40 {
			cause = cause[:40]
		}
		fmt.Printf("%-5d  %-19s  %-6d  %-7s  %s\n",
			f.Sequence,
			f.At.Local().Format(timeLayout),
			f.CardID,
			f.Status,
			cause,
		)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of rows")
	historyCmd.Flags().Bool("failures", false, "List progress writes that never reached the backend")
}
