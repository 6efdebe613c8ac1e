package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/clitemplate/go-cli-template/internal/config"
	"github.com/clitemplate/go-cli-template/internal/logger"
	"github.com/clitemplate/go-cli-template/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// annotationLenientConfig marks commands that still run when the config
// file cannot be read, so a broken file can be inspected and repaired.
const annotationLenientConfig = "lenient-config"

// annotationSkipSetup marks commands that neither read config nor log.
const annotationSkipSetup = "skip-setup"

// BuildInfo is the build metadata injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries the state shared by the commands of one tree.
type app struct {
	build  BuildInfo
	cfg    *config.Store
	log    *zap.Logger
	stderr io.Writer
}

// Execute runs the root command against the process arguments with build
// info injected via ldflags. Errors have already been reported on stderr;
// pass the result to ExitCode.
func Execute(version, commit, date string) error {
	return run(BuildInfo{Version: version, Commit: commit, Date: date}, os.Args[1:], os.Stdout, os.Stderr)
}

func run(build BuildInfo, args []string, stdout, stderr io.Writer) error {
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}

	rootCmd := NewRootCmd(build, stdout, stderr)
	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		return report(stderr, cmd, err)
	}
	return nil
}

// NewRootCmd builds the command tree. Command output goes to stdout;
// errors, usage on failure and diagnostics go to stderr.
func NewRootCmd(build BuildInfo, stdout, stderr io.Writer) *cobra.Command {
	build.Version = version.Resolve(build.Version, branding.Version())
	a := &app{
		build:  build,
		cfg:    config.New(),
		log:    zap.NewNop(),
		stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` is a starting point for Go command-line tools. It shows
the conventions new commands follow: Cobra for parsing and help, Viper for
layered configuration, and exit code 2 for usage errors.`,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &unknownCommandError{name: args[0]}
			}
			return errNoCommand
		},
	}
	rootCmd.SetHelpCommand(newHelpCmd())
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError(cmd, err)
	})

	flags := rootCmd.PersistentFlags()
	flags.BoolP("json", "j", false, "Output in JSON format")
	flags.String("log-level", config.DefaultLogLevel,
		"Diagnostic log level on stderr ("+strings.Join(logger.Levels, ", ")+")")
	a.bind(config.KeyJSON, flags.Lookup("json"))
	a.bind(config.KeyLogLevel, flags.Lookup("log-level"))

	// Register commands here.
	rootCmd.AddCommand(newGreetCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// setup loads the config file and builds the logger before any command runs.
// Command groups only dispatch or report usage errors, so they skip it.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.HasSubCommands() || cmd.Annotations[annotationSkipSetup] != "" {
		return nil
	}

	loadErr := a.cfg.Load()
	if loadErr != nil && cmd.Annotations[annotationLenientConfig] == "" {
		return loadErr
	}

	log, err := logger.New(a.cfg.LogLevel(), a.stderr)
	if err != nil {
		if cmd.Flags().Changed("log-level") {
			return newUsageError(cmd, err)
		}
		return fmt.Errorf("configuring logger: %w", err)
	}
	a.log = log

	if loadErr != nil {
		a.log.Warn("ignoring unreadable config file", zap.Error(loadErr))
	}
	a.log.Debug("dispatching command",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", a.cfg.Path()),
	)
	return nil
}

// bind ties a flag to a config key. A nil flag is a programming error.
func (a *app) bind(key string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("binding config key %q: flag not defined", key))
	}
	if err := a.cfg.BindFlag(key, flag); err != nil {
		panic(err)
	}
}

// newHelpCmd replaces cobra's help command so an unknown topic is reported
// like an unknown command instead of printing help with exit 0.
func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "help [command]",
		Short:       "Help about any command",
		Annotations: map[string]string{annotationSkipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, rest, err := cmd.Root().Find(args)
			if err != nil {
				return err
			}
			if len(rest) > 0 {
				return &unknownCommandError{name: rest[0]}
			}
			return target.Help()
		},
	}
}
