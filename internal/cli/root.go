package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icnaming/icnaming/internal/config"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool
	quiet      bool

	// cfg is the loaded configuration, populated by initConfig and shared
	// by every subcommand.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "icnamingd",
	Short: "icnamingd - decentralized naming service node",
	Long: `icnamingd is an idiomatic Go implementation of a decentralized naming
service: a Registrar/Registry/Resolver triad backing first-level name
registration, paid orders reconciled against an external ledger, and
admin quota import.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}

// initConfig loads configuration from configFile, falling back to
// defaults when it is empty or absent. Exits on a malformed config since
// every subcommand depends on it.
func initConfig() {
	loaded, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
}
