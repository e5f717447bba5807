package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vodila/vodila/internal/cards"
	"github.com/vodila/vodila/internal/screen"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session in the given mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("mode")
		mode, err := cards.ParseMode(raw)
		if err != nil {
			return err
		}
		return runApp(cmd, func(s screens) screen.Screen {
			return s.study(mode)
		})
	},
}

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Listen to recorded cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(s screens) screen.Screen {
			return s.audio()
		})
	},
}

func init() {
	names := lo.Map(cards.Modes(), func(m cards.ModeInfo, _ int) string {
		return string(m.Mode)
	})
	studyCmd.Flags().String("mode", string(cards.ModeSequential),
		fmt.Sprintf("Study mode: %s", strings.Join(names, ", ")))
}
