// Command miniserverctl drives an Executor against a data directory
// from the shell: one-shot queries, or an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// config is the optional -config file contents: just the data directory
// today, kept as its own type so new settings have somewhere to land
// without touching flag wiring.
type config struct {
	DataDir string `yaml:"dataDir"`
}

var (
	rootCmd = &cobra.Command{
		Use:          "miniserverctl",
		Short:        "miniserverctl",
		SilenceUsage: true,
		Long:         `CLI for driving a miniserver data directory: run one query, or open a REPL.`,
	}

	dataDir    string
	configPath string
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", ".", "directory holding table files")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional YAML config file (overrides --data-dir)")
	return rootCmd.Execute()
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDataDir applies -config over -data-dir, the same override order
// vippsas-sqlcode-style CLIs use flags in: explicit config wins when set.
func resolveDataDir() (string, error) {
	if configPath == "" {
		return dataDir, nil
	}
	b, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("reading config %s: %w", configPath, err)
	}
	var cfg config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return "", fmt.Errorf("parsing config %s: %w", configPath, err)
	}
	if cfg.DataDir == "" {
		return dataDir, nil
	}
	return cfg.DataDir, nil
}
