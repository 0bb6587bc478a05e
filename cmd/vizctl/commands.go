package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"viz-ai/backend/internal/chart"
	"viz-ai/backend/internal/parser"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vizctl",
		Short:         "Inspect and fix chart documents",
		Long:          `vizctl validates, repairs and themes chart documents and summarizes data files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("compact", false, "print JSON on one line")

	root.AddCommand(
		&cobra.Command{
			Use:   "validate [file|-]",
			Short: "Check a chart document against the schema",
			Args:  cobra.ExactArgs(1),
			RunE:  runValidate,
		},
		&cobra.Command{
			Use:   "repair [file|-]",
			Short: "Apply the repair rules and print the result",
			Args:  cobra.ExactArgs(1),
			RunE:  runRepair,
		},
		&cobra.Command{
			Use:   "theme [file|-]",
			Short: "Apply the default theme to a valid document",
			Args:  cobra.ExactArgs(1),
			RunE:  runTheme,
		},
		&cobra.Command{
			Use:   "process [file|-]",
			Short: "Validate, repair once if needed, and theme",
			Args:  cobra.ExactArgs(1),
			RunE:  runProcess,
		},
		&cobra.Command{
			Use:   "summarize <file>",
			Short: "Print the summary sent to the model for a data file",
			Args:  cobra.ExactArgs(1),
			RunE:  runSummarize,
		},
	)
	return root
}

// readDocument decodes a chart document from a file, or stdin for "-".
// Markdown fences are tolerated so raw model output can be piped in.
func readDocument(cmd *cobra.Command, arg string) (any, error) {
	var (
		b   []byte
		err error
	)
	if arg == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", arg, err)
	}
	return chart.DecodeGenerated(string(b))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if compact, _ := cmd.Flags().GetBool("compact"); !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	if err := chart.Validate(raw); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}

func runRepair(cmd *cobra.Command, args []string) error {
	raw, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, chart.Repair(raw))
}

func runTheme(cmd *cobra.Command, args []string) error {
	raw, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := chart.Parse(raw)
	if err != nil {
		return err
	}
	return printJSON(cmd, chart.Theme(doc))
}

func runProcess(cmd *cobra.Command, args []string) error {
	raw, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := chart.Process(raw)
	if err != nil {
		return err
	}
	if res.Repaired {
		fmt.Fprintln(cmd.ErrOrStderr(), "repaired:", res.InitialErr)
	}
	return printJSON(cmd, res.Document)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	fileType, err := parser.DetectType(args[0])
	if err != nil {
		return err
	}
	data, err := parser.ParseFile(args[0], fileType)
	if err != nil {
		return err
	}
	return printJSON(cmd, parser.Summarize(data))
}
