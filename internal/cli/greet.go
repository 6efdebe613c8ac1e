package cli

import (
	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/clitemplate/go-cli-template/internal/config"
	"github.com/clitemplate/go-cli-template/internal/greeting"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGreetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greet <name>",
		Short: "Greet someone by name",
		Long: `Print "<greeting>, <name>!" to stdout. With --json the greeting, name and
message are printed as a single-line JSON object instead.

The greeting defaults to "Hello". Change it for one call with --greeting, or
for every call with '` + branding.CLIName() + ` config set greeting <text>'.`,
		Example: `  ` + branding.CLIName() + ` greet World
  ` + branding.CLIName() + ` greet --greeting Hi Alice
  ` + branding.CLIName() + ` --json greet World`,
		Args: exactArgs("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := greeting.New(a.cfg.Greeting(), args[0])
			asJSON := a.cfg.JSON()
			a.log.Debug("greeting", zap.String("name", g.Name), zap.Bool("json", asJSON))
			return greeting.Write(cmd.OutOrStdout(), g, asJSON)
		},
	}

	cmd.Flags().StringP("greeting", "g", greeting.Default, "Custom greeting")
	a.bind(config.KeyGreeting, cmd.Flags().Lookup("greeting"))

	return cmd
}
