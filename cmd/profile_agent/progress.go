package main

import (
	"encoding/json"
	"io"

	"github.com/jonathan/student-profile/internal/observability"
	"github.com/jonathan/student-profile/internal/wizard"
	"github.com/spf13/cobra"
)

var (
	progressDraft string
	progressJSON  bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completion and step gates for a saved draft",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runProgress(cmd.OutOrStdout(), progressDraft, progressJSON)
	},
}

func init() {
	progressCmd.Flags().StringVarP(&progressDraft, "draft", "d", "", "Draft JSON to inspect (required)")
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "Print the wizard snapshot as JSON")

	progressCmd.MarkFlagRequired("draft") //nolint:errcheck

	rootCmd.AddCommand(progressCmd)
}

func runProgress(out io.Writer, draftPath string, asJSON bool) error {
	draft, err := readDraft(draftPath)
	if err != nil {
		return err
	}
	snap := wizard.New(wizard.WithDraft(draft)).Snapshot()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	p := observability.NewPrinter(out)
	p.PrintDraft(snap.Draft)
	p.PrintSnapshot(snap)
	return nil
}
