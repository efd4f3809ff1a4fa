package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/soundpad/internal/audio"
	"github.com/zjrosen/soundpad/internal/binding"
	"github.com/zjrosen/soundpad/internal/catalog"
	"github.com/zjrosen/soundpad/internal/mode/board"
)

var keysFormat string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the key-to-group binding table",
	Long: `Scan the sound directory and print which key triggers which group,
without opening the audio device. The same table the board shows on tab.`,
	RunE: runKeys,
}

func init() {
	keysCmd.Flags().StringVar(&keysFormat, "format", "table", "output format: table or yaml")
	rootCmd.AddCommand(keysCmd)
}

// keyBinding is one row of the yaml output.
type keyBinding struct {
	Key    string `yaml:"key"`
	Group  string `yaml:"group"`
	Sounds int    `yaml:"sounds"`
	Order  string `yaml:"order"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := binding.New()
	if err != nil {
		return fmt.Errorf("building binding table: %w", err)
	}
	paths, err := catalog.ListDir(cfg.SoundDir)
	if err != nil {
		return err
	}
	cat := catalog.Build(audio.NopPlayer(), table, paths)
	defer cat.Close()

	switch keysFormat {
	case "table":
		printKeysTable(cat)
	case "yaml":
		rows := make([]keyBinding, 0, cat.Len())
		for _, g := range cat.Groups() {
			rows = append(rows, keyBinding{
				Key:    string(g.Key),
				Group:  g.Name,
				Sounds: len(g.Sounds),
				Order:  fmt.Sprintf("%03d", g.OrderIndex),
			})
		}
		data, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("encoding bindings: %w", err)
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown format %q (use table or yaml)", keysFormat)
	}
	return nil
}

// printKeysTable writes the bindings table with a bold header when stdout
// is a terminal; termenv degrades to plain text otherwise.
func printKeysTable(cat *catalog.Catalog) {
	out := termenv.NewOutput(os.Stdout)

	text := strings.TrimRight(board.BindingsText(cat), "\n")
	lines := strings.Split(text, "\n")
	fmt.Fprintln(out, out.String(lines[0]).Bold())
	for _, l := range lines[1:] {
		fmt.Fprintln(out, l)
	}
	for _, name := range cat.Dropped() {
		fmt.Fprintln(out, out.String("dropped (no keys left): "+name).Foreground(out.Color("3")))
	}
}
