package cli

import (
	"encoding/json"
	"fmt"

	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func newVersionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info := versionInfo{
				Version: a.build.Version,
				Commit:  a.build.Commit,
				Date:    a.build.Date,
			}

			switch {
			case short:
				_, err := fmt.Fprintln(out, info.Version)
				return err
			case a.cfg.JSON():
				if err := json.NewEncoder(out).Encode(info); err != nil {
					return fmt.Errorf("encoding version info: %w", err)
				}
				return nil
			default:
				_, err := fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n",
					branding.CLIName(), info.Version, info.Commit, info.Date)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	return cmd
}
