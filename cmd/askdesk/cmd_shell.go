package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/desk"
	"github.com/liliang-cn/askdesk/internal/term"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive upload and question session (default)",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	d := desk.New(cfg, newRemote(cfg, logger), term.NewView(out), logger)
	stop := startDesk(ctx, d, logger)
	defer stop()

	logger.Info("Starting askdesk shell",
		zap.String("base_url", cfg.Server.BaseURL),
		zap.Bool("connectivity", cfg.Connectivity.Enabled),
	)
	return term.NewShell(d, cmd.InOrStdin(), out, logger).Run(ctx)
}
