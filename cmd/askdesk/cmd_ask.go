package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liliang-cn/askdesk/internal/desk"
	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/term"
	"github.com/liliang-cn/askdesk/internal/validate"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question about the uploaded document and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	if _, err := validate.Query(question); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
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

	d.Query.SetInput(question)
	d.Query.Submit()

	state, err := awaitSettled(ctx, d.Query.Settled())
	if err != nil {
		return err
	}
	if state == domain.StateFailed {
		return fmt.Errorf("question could not be answered")
	}
	return nil
}
