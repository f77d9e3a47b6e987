package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/config"
	"github.com/jonathan/student-profile/internal/observability"
	"github.com/jonathan/student-profile/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Walk a saved draft through the wizard and submit it",
	Long: `Load a draft, check every step the way the wizard does, attach the optional resume and
profile picture, and send the profile to the profile API. Prints the assigned profile ID.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSubmit(cmd.Context(), cmd.OutOrStdout(), cfg, logger, submitOpts)
	},
}

type submitOptions struct {
	draftPath   string
	resumePath  string
	picturePath string
}

var submitOpts submitOptions

func init() {
	submitCmd.Flags().StringVarP(&submitOpts.draftPath, "draft", "d", "", "Draft JSON to submit (required)")
	submitCmd.Flags().StringVarP(&submitOpts.resumePath, "resume", "r", "", "PDF resume to attach")
	submitCmd.Flags().StringVarP(&submitOpts.picturePath, "picture", "p", "", "Profile picture to attach")

	submitCmd.MarkFlagRequired("draft") //nolint:errcheck

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(ctx context.Context, out io.Writer, c config.Config, log *zap.Logger, opts submitOptions) error {
	draft, err := readDraft(opts.draftPath)
	if err != nil {
		return err
	}

	var observe []wizard.Option
	if c.Verbose {
		observe = append(observe, wizard.WithObserver(func(s wizard.Snapshot) {
			log.Debug("wizard changed",
				zap.Stringer("step", s.Step),
				zap.Float64("progress", s.Progress),
				zap.String("upload", string(s.Upload.Status)))
		}))
	}
	w := newWizard(c, draft, observe...)

	if err := attachFiles(w, opts); err != nil {
		return err
	}
	for w.Step() < wizard.LastStep {
		if err := w.Next(); err != nil {
			return fmt.Errorf("step %s incomplete: %w", w.Step(), err)
		}
	}

	id, err := w.Submit(ctx)
	if err != nil {
		var ve *clienterr.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("step %s incomplete: %w", w.Step(), err)
		}
		return fmt.Errorf("submission failed: %w", err)
	}
	log.Info("profile submitted", zap.String("profile_id", id))

	observability.NewPrinter(out).PrintSubmitted(id)
	return nil
}

func attachFiles(w *wizard.Wizard, opts submitOptions) error {
	resume, err := readAttachment(opts.resumePath)
	if err != nil {
		return err
	}
	if resume != nil {
		if err := w.AttachResume(resume); err != nil {
			return err
		}
	}
	picture, err := readAttachment(opts.picturePath)
	if err != nil {
		return err
	}
	if picture != nil {
		if err := w.AttachProfilePicture(picture); err != nil {
			return err
		}
	}
	return nil
}
