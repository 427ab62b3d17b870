// Package cli implements the command-line interface for susepkg.
package cli

import (
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ricardobranco777/susepkg/internal/config"
	"github.com/ricardobranco777/susepkg/internal/ui"
)

var (
	// Global flags
	cfgFile     string
	arch        string
	products    []string
	insensitive bool
	useRegex    bool
	allVersions bool
	noCache     bool
	verbose     bool
	noColor     bool

	// Global state
	cfg    *config.Config
	logger *log.Logger
)

// Version is set at build time via ldflags.
var Version = "2.2"

var rootCmd = &cobra.Command{
	Use:   "susepkg [flags] <package>",
	Short: "Show SUSE package versions",
	Long: `susepkg queries the SUSE Customer Center and openSUSE mirrorcache
package search APIs and prints the package versions available for a
product.

The package argument may be a literal name, a shell pattern (* ? [...])
or, with -x, a regular expression. Patterns are matched against full
package names; regular expressions match anywhere in the name.

Products are selected with -p, which may be repeated. The special
product "list" prints all known products, and "any" searches every one
of them.

Examples:
  susepkg -p SLES/15.6 podman             # exact package name
  susepkg -p SLES/15.6 '*podman*'         # shell pattern
  susepkg -p any -x 'podman-.*'           # regular expression, all products
  susepkg -p list                         # show known products
  susepkg -p Tumbleweed --all-versions vim`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
	RunE: runQuery,
}

func init() {
	rootCmd.Flags().StringVarP(&arch, "arch", "a", "", "architecture (aarch64, ppc64le, s390x, x86_64)")
	rootCmd.Flags().BoolVarP(&insensitive, "insensitive", "i", false, "case insensitive search")
	rootCmd.Flags().StringArrayVarP(&products, "product", "p", nil, "product, or 'list' or 'any'; may be repeated")
	rootCmd.Flags().BoolVarP(&useRegex, "regex", "x", false, "treat the package argument as a regular expression")
	rootCmd.Flags().BoolVar(&allVersions, "all-versions", false, "show every version, not only the newest")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if err := rootCmd.MarkFlagRequired("product"); err != nil {
		panic(err)
	}
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}
	return nil
}

// initializeApp loads configuration and sets up output and logging.
func initializeApp() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Apply flag overrides
	if arch != "" {
		cfg.General.Arch = arch
	}
	if allVersions {
		cfg.General.AllVersions = true
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	if !slices.Contains(config.Architectures, cfg.General.Arch) {
		return &InvalidArchError{Arch: cfg.General.Arch}
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if cfg.Output.Verbose || os.Getenv("DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	return nil
}
