package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yumelira/yumebot/internal/config"
	"github.com/yumelira/yumebot/internal/services/runner"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the release APK to Telegram",
	Long: `Execute the upload workflow:
1. Read configuration from the environment
2. Locate the arm64-v8a release APK
3. Send it with a caption built from TITLE, BRANCH and COMMIT_MESSAGE`,
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	parser, err := newParser()
	if err != nil {
		return err
	}

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return upload(ctx, log.Logger, parser, runner.New(log.Logger))
}

// newParser creates a parser, loading --env-file first when given.
func newParser() (*config.Parser, error) {
	parser := config.NewParser()
	if envFile != "" {
		if err := parser.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
	}
	return parser, nil
}

// upload loads the configuration and hands it to the runner. Nothing is
// sent when the configuration is incomplete.
func upload(ctx context.Context, logger zerolog.Logger, parser *config.Parser, runnerSvc runner.Service) error {
	cfg, err := parser.Load()
	if err != nil {
		return err
	}

	logger.Info().
		Str("chat_id", cfg.ChatID).
		Str("title", cfg.Title).
		Str("branch", cfg.Branch).
		Bool("thread", cfg.MessageThreadID != "").
		Msg("configuration loaded")

	return runnerSvc.Run(ctx, *cfg)
}
