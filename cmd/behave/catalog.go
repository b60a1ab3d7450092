package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/presentation/tui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the actions declared in util_verbs.nss",
	Long: `Parses the action catalog and prints every actual verb with its verb data
bindings and arguments. Mandatory arguments are marked with '*'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		status := tui.NewStatus(cmd.ErrOrStderr())
		catalog, diags, err := e.ws.LoadCatalog(cmd.Context(), e.cfg.Catalog)
		if err != nil {
			return err
		}
		printDiagnostics(status, e.cfg.Catalog, diags)
		for _, name := range catalog.Duplicates() {
			status.Warn("%s is declared more than once; the last declaration is used", name)
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "text" {
			return encode(cmd.OutOrStdout(), format, catalog)
		}

		out := cmd.OutOrStdout()
		for _, v := range catalog {
			var params []string
			for _, a := range v.Arguments {
				p := a.Type + " " + a.Name
				if a.Mandatory {
					p += "*"
				}
				params = append(params, p)
			}
			fmt.Fprintf(out, "%s(%s | %s)\n", v.Name, strings.Join(v.VerbData, ", "), strings.Join(params, ", "))
			if v.Description != "" {
				fmt.Fprintf(out, "    %s\n", v.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().String("format", "text", "Output format: text, yaml or json")
}
