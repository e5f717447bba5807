package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vodila/vodila/internal/config"
	"github.com/vodila/vodila/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "vodila",
	Short: "Spanish flashcards in the terminal",
	Long:  "Vodila: study Spanish flashcards by swiping, take short exams and listen to recorded cards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default ./vodila.yaml or the user config dir)")
	flags.String("api", "", "Backend base URL (overrides api.base_url)")
	flags.String("db", "", "Path to SQLite journal file (overrides VODILA_STORE_PATH)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(audioCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(ttsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies the
// persistent flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"api":       "api.base_url",
		"db":        "store.path",
		"log-level": "log.level",
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			overrides[key] = v
		}
	}
	return config.Load(config.Options{File: file, Overrides: overrides})
}

// resolveDBPath returns the configured journal path (from --db or
// store.path), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
