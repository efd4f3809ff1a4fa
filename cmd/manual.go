package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpad/internal/manual"
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Show the soundpad manual",
	Long:  `Render the built-in manual: filename grammar, keys, config, subcommands.`,
	RunE:  runManual,
}

func init() {
	rootCmd.AddCommand(manualCmd)
}

func runManual(cmd *cobra.Command, args []string) error {
	fmt.Print(manual.Render(0))
	return nil
}
