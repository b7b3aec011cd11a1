package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/docxmlext/internal/cli/config"
	"github.com/conduit-lang/docxmlext/internal/cli/ui"
	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
	"github.com/conduit-lang/docxmlext/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
}

// setup loads the configuration, applies the global flag overrides and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return runerrors.Config(err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return runerrors.Config(err)
	}

	if a.noColor {
		color.NoColor = true
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Log.Level, cfg.Log.Format)
	return nil
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "docxmlext",
		Short: "Augment compiler documentation XML with type metadata",
		Long: color.CyanString(`docxmlext - documentation XML extender

docxmlext reads the documentation XML a compiler emits for a binary and the
binary's metadata manifest, resolves every documented member identifier and
adds a <reflection> element describing its signature, generic parameters and
attributes.

Configuration is read from docxmlext.yaml in the working directory (or
--config) and DOCXMLEXT_* environment variables.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default ./docxmlext.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", logging.FormatConsole, "Log format: console or json")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newExtendCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newWatchCommand(a))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the docxmlext version, Git commit, build date, and Go version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			noColor, _ := cmd.Flags().GetBool("no-color")
			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), noColor || color.NoColor)
			kv.AddRow("docxmlext version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(rootCmd, err)
		return err
	}
	return nil
}

func reportError(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	if re, ok := runerrors.As(err); ok {
		fmt.Fprint(w, ui.RunError(re, color.NoColor))
		return
	}
	ui.WriteError(w, ui.ErrorOptions{
		Level:   ui.ErrorLevelError,
		Problem: err.Error(),
		NoColor: color.NoColor,
	})
}
