package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/behave/internal/dto"
	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate <script|behaviour.yaml>",
	Short: "Regenerate the control and checkcues scripts of a behaviour",
	Long: `Regenerates b_<name>.nss and merges z_b_<name>.nss.

The source is either a control script in the workspace or a YAML/JSON file in
the shape printed by 'behave inspect'. Hand-written checkcues sections are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		status := tui.NewStatus(cmd.ErrOrStderr())

		b, err := readSource(cmd, e, status, args[0])
		if err != nil {
			return err
		}

		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, compiler.GenerateControlCode(b))
			fmt.Fprintln(out)
			fmt.Fprint(out, compiler.GenerateStubCode(b))
			return nil
		}

		if err := e.ws.SaveBehaviour(cmd.Context(), b); err != nil {
			return err
		}
		status.Success("wrote %s and %s", domain.ControlFileName(b.Name), domain.StubFileName(b.Name))
		return nil
	},
}

func readSource(cmd *cobra.Command, e *env, status *tui.Status, arg string) (*domain.Behaviour, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		name := scriptName(arg)
		b, diags, err := e.ws.LoadBehaviour(cmd.Context(), name)
		printDiagnostics(status, name, diags)
		return b, err
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	var d dto.Behaviour
	if ext == ".json" {
		err = json.Unmarshal(data, &d)
	} else {
		err = yaml.Unmarshal(data, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", arg, err)
	}
	return d.ToDomain()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Bool("stdout", false, "Print the generated scripts instead of writing them")
}
