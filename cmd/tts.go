package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/tts"
)

var ttsCmd = &cobra.Command{
	Use:   "tts",
	Short: "Generate audio files for cards with a text-to-speech provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		flags := cmd.Flags()
		cfg := e.cfg.TTS
		if v, _ := flags.GetString("provider"); v != "" {
			cfg.Provider = v
		}
		if v, _ := flags.GetString("field"); v != "" {
			cfg.TextField = v
		}
		if v, _ := flags.GetString("out"); v != "" {
			cfg.OutputDir = v
		}
		voice, _ := flags.GetString("voice")
		if voice == "" {
			voice = cfg.Voice()
		}
		start, _ := flags.GetInt("start")
		end, _ := flags.GetInt("end")
		force, _ := flags.GetBool("force")
		onlyMissing, _ := flags.GetBool("only-missing")
		dryRun, _ := flags.GetBool("dry-run")

		field, err := tts.ParseField(cfg.TextField)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var provider tts.Provider = tts.NewMockProvider()
		if !dryRun {
			if err := cfg.Validate(); err != nil {
				return err
			}
			provider, err = tts.NewProvider(ctx, cfg, e.log)
			if err != nil {
				return err
			}
		}

		list, err := e.client.FetchCards(ctx, cards.Query{Mode: cards.ModeSequential})
		if err != nil {
			return fmt.Errorf("fetch cards: %w", err)
		}

		fmt.Printf("Provider: %s  Voice: %s  Field: %s  Output: %s\n",
			cfg.Provider, voice, field, cfg.OutputDir)
		fmt.Println(strings.Repeat("─", 60))

		report, runErr := tts.NewGenerator(provider, e.log).Run(ctx, list, tts.Options{
			OutputDir:   cfg.OutputDir,
			Field:       field,
			Voice:       voice,
			StartID:     start,
			EndID:       end,
			Force:       force,
			OnlyMissing: onlyMissing,
			DryRun:      dryRun,
			Pause:       cfg.Pause,
			Timeout:     cfg.Timeout,
			OnCard:      printResult,
		})

		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%d cards: %d generated, %d skipped, %d failed\n",
			report.Total, report.Generated, report.Skipped, report.Failed)
		if report.StoppedAt != 0 {
			fmt.Printf("Stopped at card %d. Resume with --start %d.\n", report.StoppedAt, report.StoppedAt)
		}
		return runErr
	},
}

func printResult(r tts.Result) {
	mark := "·"
	switch r.Outcome {
	case tts.OutcomeGenerated, tts.OutcomeWouldGen:
		mark = "✓"
	case tts.OutcomeFailed:
		mark = "✗"
	}
	line := fmt.Sprintf("%s %-5d %-15s %s", mark, r.CardID, r.Outcome, r.File)
	if r.Err != nil {
		line += "  " + r.Err.Error()
	}
	fmt.Println(line)
}

func init() {
	flags := ttsCmd.Flags()
	flags.String("provider", "", "TTS provider: gemini, openai or mock (overrides tts.provider)")
	flags.String("voice", "", "Voice name (default from the provider config)")
	flags.String("field", "", "Text to voice: answer, prompt or both (overrides tts.text_field)")
	flags.String("out", "", "Output directory (overrides tts.output_dir)")
	flags.Int("start", 0, "First card id, inclusive")
	flags.Int("end", 0, "Last card id, inclusive")
	flags.Bool("force", false, "Regenerate files that already exist")
	flags.Bool("only-missing", false, "Only generate missing files, even with --force")
	flags.Bool("dry-run", false, "List what would be generated without calling the provider")
}
