package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/presentation/graph"
	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/internal/validator"
)

var graphCmd = &cobra.Command{
	Use:   "graph <script>",
	Short: "Export the verb graph as a Mermaid flowchart",
	Long: `Prints a Mermaid flowchart of the follower edges of a behaviour.
With --lint, verbs with findings are highlighted.`,
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

		var overlay *graph.GraphOverlay
		lint, _ := cmd.Flags().GetBool("lint")
		selected, _ := cmd.Flags().GetString("verb")
		if lint || selected != "" {
			overlay = &graph.GraphOverlay{SelectedVerb: selected}
		}
		if lint {
			catalog, err := loadCatalog(ctx, e, status)
			if err != nil {
				return err
			}
			for _, f := range validator.Lint(b, catalog) {
				if f.Verb != "" {
					overlay.FlaggedVerbs = append(overlay.FlaggedVerbs, f.Verb)
				}
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(b, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("lint", false, "Highlight verbs with lint findings")
	graphCmd.Flags().String("verb", "", "Highlight this verb")
}
