package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [script...]",
	Short: "Check control scripts for structural and catalog problems",
	Long: `Parses each control script (all of them when none is given), checks the
behaviour invariants and lints the verb graph and the calls against the catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		status := tui.NewStatus(cmd.OutOrStdout())
		catalog, err := loadCatalog(ctx, e, status)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(args))
		for _, a := range args {
			names = append(names, scriptName(a))
		}
		if len(names) == 0 {
			if names, err = e.ws.ListBehaviours(ctx); err != nil {
				return err
			}
		}

		strict, _ := cmd.Flags().GetBool("strict")
		failed := 0
		for _, name := range names {
			b, diags, err := e.ws.LoadBehaviour(ctx, name)
			printDiagnostics(status, name, diags)
			if err != nil {
				status.Error("%v", err)
				failed++
				continue
			}

			report := validator.Lint(b, catalog)
			for _, f := range report {
				if f.Severity == validator.SeverityError {
					status.Error("%s: %s", name, f)
				} else {
					status.Warn("%s: %s", name, f)
				}
			}
			if report.HasErrors() || (strict && len(report) > 0) {
				failed++
				continue
			}
			status.Success("%s is valid", name)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scripts failed validation", failed, len(names))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as failures")
}
