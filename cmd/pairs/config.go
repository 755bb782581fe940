package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pairs/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the puzzle config",
	Long: `Print the effective config (after --config and --difficulty) as YAML.
With --defaults, print the embedded default file instead, ready to copy to
~/.arcade/configs/memory.yaml.

Examples:
  pairs config
  pairs config --difficulty hard
  pairs config --defaults > ~/.arcade/configs/memory.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := "memory"
	if len(args) == 1 {
		gameID = args[0]
	}

	if flagDefaults {
		data := config.GetDefaultYAML(gameID)
		if data == nil {
			fail("no default config for %q", gameID)
		}
		os.Stdout.Write(data)
		return
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := config.LoadMemory(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyMemoryPreset(&cfg, preset)

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
