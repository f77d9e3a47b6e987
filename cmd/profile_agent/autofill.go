package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/student-profile/internal/config"
	"github.com/jonathan/student-profile/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Pre-fill a profile draft from a PDF resume",
	Long: `Upload a PDF resume to the parsing service and merge the extracted fields into a draft.
Fields the resume provides overwrite the draft; everything else is kept.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAutofill(cmd.Context(), cmd.OutOrStdout(), cfg, logger, autofillOpts)
	},
}

type autofillOptions struct {
	resumePath string
	draftPath  string
	outPath    string
}

var autofillOpts autofillOptions

func init() {
	autofillCmd.Flags().StringVarP(&autofillOpts.resumePath, "resume", "r", "", "PDF resume to parse (required)")
	autofillCmd.Flags().StringVarP(&autofillOpts.draftPath, "draft", "d", "", "Existing draft JSON to merge into")
	autofillCmd.Flags().StringVarP(&autofillOpts.outPath, "out", "o", "", "Where to write the merged draft (default stdout)")

	autofillCmd.MarkFlagRequired("resume") //nolint:errcheck

	rootCmd.AddCommand(autofillCmd)
}

func runAutofill(ctx context.Context, out io.Writer, c config.Config, log *zap.Logger, opts autofillOptions) error {
	draft, err := readDraft(opts.draftPath)
	if err != nil {
		return err
	}
	resume, err := readAttachment(opts.resumePath)
	if err != nil {
		return err
	}
	if resume == nil {
		return fmt.Errorf("--resume is required")
	}

	w := newWizard(c, draft)
	log.Debug("uploading resume", zap.String("file", resume.Filename), zap.Int64("bytes", resume.Size()), zap.String("url", c.AutofillURL))

	parsed, err := w.SubmitResume(ctx, resume)
	if err != nil {
		return fmt.Errorf("resume autofill failed: %w", err)
	}
	log.Info("resume merged", zap.Float64("progress", w.Progress()))

	if c.Verbose {
		p := observability.NewPrinter(out)
		p.PrintParsedProfile(parsed)
		p.PrintSnapshot(w.Snapshot())
	}
	return saveDraft(opts.outPath, w.Draft(), out)
}
