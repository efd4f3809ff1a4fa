package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpad/internal/demo"
)

var demoCmd = &cobra.Command{
	Use:   "demo [dir]",
	Short: "Generate a starter pack of synthesized sounds",
	Long: `Write a small pack of grammar-conforming WAV files (beeps, chimes, a
drone, a click) into dir, or into the configured sound directory when dir
is omitted. Existing files are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.SoundDir
	if len(args) > 0 {
		dir = args[0]
	}

	written, err := demo.Generate(dir)
	if err != nil {
		return fmt.Errorf("generating demo pack: %w", err)
	}
	if len(written) == 0 {
		fmt.Printf("Demo pack already present in %s\n", dir)
		return nil
	}

	fmt.Printf("Wrote %d files to %s:\n", len(written), dir)
	for _, p := range written {
		fmt.Printf("  %s\n", filepath.Base(p))
	}
	fmt.Println()
	fmt.Println("Run `soundpad` in that directory (or with --dir) to play them.")
	return nil
}
