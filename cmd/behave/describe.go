package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/internal/validator"
)

var describeCmd = &cobra.Command{
	Use:   "describe <script>",
	Short: "Render a readable summary of a behaviour",
	Long: `Prints the variables, verbs and lint findings of a behaviour as markdown,
styled for the terminal when stdout is a TTY.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		status := tui.NewStatus(cmd.ErrOrStderr())
		name := scriptName(args[0])
		b, diags, err := e.ws.LoadBehaviour(ctx, name)
		printDiagnostics(status, name, diags)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(ctx, e, status)
		if err != nil {
			return err
		}

		plain, _ := cmd.Flags().GetBool("plain")
		render := tui.NewRenderer(!plain && tui.IsTerminal(os.Stdout))
		out, err := render(tui.Describe(b, catalog, validator.Lint(b, catalog)))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print raw markdown")
}
