package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/dto"
	"github.com/aretw0/behave/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <script>",
	Short: "Print the behaviour declared in a control script",
	Long: `Parses the header block of a control script and prints the behaviour as
YAML or JSON. The output can be edited and fed back to 'behave generate'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		name := scriptName(args[0])
		b, diags, err := e.ws.LoadBehaviour(cmd.Context(), name)
		printDiagnostics(tui.NewStatus(cmd.ErrOrStderr()), name, diags)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		return encode(cmd.OutOrStdout(), format, dto.FromDomain(b))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("format", "yaml", "Output format: yaml or json")
}
