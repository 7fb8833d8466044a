package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yumelira/yumebot/internal/config"
	"github.com/yumelira/yumebot/internal/services/locator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration and locate the APK without uploading",
	Long:  `Validate the environment and look for the release APK without calling the Telegram API.`,
	RunE:  validateSetup,
}

func validateSetup(cmd *cobra.Command, args []string) error {
	parser, err := newParser()
	if err != nil {
		return err
	}

	// Load configuration
	cfg, err := parser.Load()
	if err != nil {
		return err
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Locate files
	located, err := locator.New(log.Logger).Locate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Print configuration summary
	fmt.Fprintln(out, "Configuration is valid!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  Chat ID: %s\n", cfg.ChatID)
	fmt.Fprintf(out, "  Bot Token: (configured)\n")
	if cfg.MessageThreadID != "" {
		fmt.Fprintf(out, "  Message Thread ID: %s\n", cfg.MessageThreadID)
	} else {
		fmt.Fprintf(out, "  Message Thread ID: (not set)\n")
	}
	fmt.Fprintf(out, "  Title: %s\n", cfg.Title)
	fmt.Fprintf(out, "  Branch: %s\n", cfg.Branch)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Files:")
	for i, f := range located.Files {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, f)
	}

	return nil
}
