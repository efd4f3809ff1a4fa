package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at release time via -ldflags "-X ...cmd.version=".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the soundpad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("soundpad %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
