package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/config"
)

// defaultsCommand prints a parameter file. With no flags it is the default
// parameter set; flags and --config are applied first, so the command also
// converts a flag combination into a reusable file.
func (c *CLI) defaultsCommand() *cobra.Command {
	var params paramFlags

	cmd := &cobra.Command{
		Use:     "defaults",
		Short:   "Print the parameters as a TOML file",
		Example: "  meander defaults --loops 120 > chip.toml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := params.resolve(cmd)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), p)
		},
	}

	params.bind(cmd.Flags())
	return cmd
}
