package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/pkg/domain"
	"github.com/aretw0/behave/pkg/dsl"
	"github.com/aretw0/behave/pkg/ports"
)

var newCmd = &cobra.Command{
	Use:   "new <Name>",
	Short: "Create an empty behaviour",
	Long: `Writes b_<name>.nss and z_b_<name>.nss for a new behaviour with the given
actors and a single terminal verb to start from.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		name := args[0]
		control := domain.ControlFileName(name)
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			_, err := e.store.Read(cmd.Context(), control)
			if err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", control)
			}
			if !errors.Is(err, ports.ErrScriptNotFound) {
				return err
			}
		}

		builder := dsl.New(name)
		actors, _ := cmd.Flags().GetStringSlice("actor")
		for _, a := range actors {
			builder.Actor(a, "")
		}
		verb, _ := cmd.Flags().GetString("verb")
		builder.Verb(verb).Terminal()

		b, err := builder.Build()
		if err != nil {
			return err
		}
		if err := e.ws.SaveBehaviour(cmd.Context(), b); err != nil {
			return err
		}
		tui.NewStatus(cmd.ErrOrStderr()).Success("created %s", control)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringSlice("actor", []string{"oPC"}, "Actor variables to declare")
	newCmd.Flags().String("verb", "Start", "Context name of the initial verb")
	newCmd.Flags().Bool("force", false, "Overwrite an existing control script")
}
