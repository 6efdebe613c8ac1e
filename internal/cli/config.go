package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/clitemplate/go-cli-template/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long: `Read and write settings stored at ~/` + branding.HomeDir() + `/config.yaml.

Known keys: ` + strings.Join(config.Keys(), ", ") + `. Each key can also be set with
the ` + branding.EnvVar("<key>") + ` environment variable, and the config
directory can be moved with ` + branding.EnvVar("home") + `.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &unknownCommandError{name: args[0]}
			}
			return errNoCommand
		},
	}

	cmd.AddCommand(newConfigPathCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigValidateCmd(a))
	return cmd
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the config file path",
		Args:        exactArgs(),
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Path())
			return err
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  exactArgs("key"),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.cfg.Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  exactArgs("key", "value"),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := a.cfg.Set(key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			a.log.Debug("config updated", zap.String("key", key), zap.String("path", a.cfg.Path()))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return err
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the config file against the schema",
		Args:        exactArgs(),
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := a.cfg.Path()

			result, err := a.cfg.ValidateFile()
			if errors.Is(err, fs.ErrNotExist) {
				_, err = fmt.Fprintf(out, "no config file at %s\n", path)
				return err
			}
			if err != nil {
				return err
			}

			if result.Valid {
				_, err = fmt.Fprintf(out, "%s is valid\n", path)
				return err
			}
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("%s: %s", path, config.Summary(len(result.Issues)))
		},
	}
}
