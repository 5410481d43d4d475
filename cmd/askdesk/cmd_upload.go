package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liliang-cn/askdesk/internal/artifact"
	"github.com/liliang-cn/askdesk/internal/desk"
	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/term"
	"github.com/liliang-cn/askdesk/internal/validate"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload one PDF document and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := artifact.FromPath(args[0])
	if err != nil {
		return err
	}
	if err := validate.Artifact(a); err != nil {
		if errors.Is(err, domain.ErrTooLarge) {
			return fmt.Errorf("%s is %s: %w", a.Name, artifact.FormatSize(a.Size), err)
		}
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// one-shot runs report failures directly
	cfg.Connectivity.Enabled = false

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	d := desk.New(cfg, newRemote(cfg, logger), term.NewView(cmd.OutOrStdout()), logger)
	stop := startDesk(ctx, d, logger)
	defer stop()

	d.Upload.Select(a)
	d.Upload.Submit()

	state, err := awaitSettled(ctx, d.Upload.Settled())
	if err != nil {
		return err
	}
	if state == domain.StateFailed {
		return fmt.Errorf("upload of %s failed", a.Name)
	}
	return nil
}
