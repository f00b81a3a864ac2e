package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/absorb/internal/config"
	"github.com/amirbrooks/absorb/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := config.Marshal(a.cfg)
			if err != nil {
				return &exitError{code: ExitInternal, err: err}
			}
			_, _ = a.out.Write(b)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml into the store root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(a.cfg.Root)
			if err := config.WriteDefault(path, force); err != nil {
				if errors.Is(err, config.ErrExists) {
					return &exitError{code: ExitUsage, err: fmt.Errorf("%w (use --force to overwrite)", err)}
				}
				return &exitError{code: ExitInternal, err: err}
			}
			a.println(ui.Success("Wrote " + path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}
