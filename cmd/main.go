package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/brettbedarf/nsfs/config"
	"github.com/brettbedarf/nsfs/internal/util"
	"github.com/brettbedarf/nsfs/requests"
	"github.com/brettbedarf/nsfs/server"
)

// Flags shared by every subcommand
var (
	verbose    int
	configPath string
	envFile    string
	manifest   string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "nsfs",
	Short: "In-memory hierarchical namespace",
	Long: `nsfs keeps a tree of directories and empty files in memory.

The tree can be populated from a YAML or JSON manifest, printed, queried,
mounted with FUSE or served over HTTP. Without --manifest the built-in
university demo tree is loaded.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.InitializeLogger(config.VerboseToLogLevel(verbose))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&verbose, "verbose", "v", config.WarnVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")
	pf.StringVarP(&configPath, "config", "c", "", "Path to a YAML or JSON config file")
	pf.StringVar(&envFile, "env-file", ".env", "Path to a dotenv file with NSFS_* overrides")
	pf.StringVarP(&manifest, "manifest", "m", "", "Path to a YAML or JSON node manifest")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig layers defaults, the config file, the environment and the
// verbosity flag, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		override, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Merge(override)
	}

	envOverride, err := config.LoadEnvOverride(envFile)
	if err != nil {
		return nil, err
	}
	cfg.Merge(envOverride)

	if cmd.Flags().Changed("verbose") {
		cfg.Merge(&config.ConfigOverride{LogLvl: util.Pointer(verbose)})
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	util.InitializeLogger(cfg.LogLvl)
	return cfg, nil
}

// newStore builds the store and loads the manifest, or the demo tree when no
// manifest was given.
func newStore(cmd *cobra.Command) (*server.NSFS, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := util.GetLogger("main")

	reqs := requests.DemoManifest()
	if manifest != "" {
		if reqs, err = requests.LoadManifestFile(manifest); err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		logger.Debug().Str("manifest", manifest).Int("requests", len(reqs)).Msg("Manifest loaded")
	}

	s := server.New(cfg)
	res := requests.Apply(s, reqs)
	for _, f := range res.Failures {
		logger.Warn().Err(f.Err).Str("path", f.Request.Path).Msg("Failed to create node")
	}
	return s, nil
}

func colorize() bool {
	if noColor {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
