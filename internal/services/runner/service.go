// Package runner orchestrates the upload workflow.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yumelira/yumebot/internal/models"
	"github.com/yumelira/yumebot/internal/services/locator"
	"github.com/yumelira/yumebot/internal/services/telegram"
)

// ErrUploadFailed is returned when the Bot API did not accept the document.
var ErrUploadFailed = errors.New("upload failed")

// Service defines the interface for the upload runner.
type Service interface {
	Run(ctx context.Context, cfg models.UploadConfig) error
}

// Impl implements the runner Service interface.
type Impl struct {
	locatorSvc  locator.Service
	telegramSvc telegram.Service
	logger      zerolog.Logger
}

// New creates a new runner service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		locatorSvc:  locator.New(logger),
		telegramSvc: telegram.New(logger),
		logger:      logger,
	}
}

// NewWithServices creates a new runner service with custom services (for testing).
func NewWithServices(logger zerolog.Logger, locatorSvc locator.Service, telegramSvc telegram.Service) *Impl {
	return &Impl{
		locatorSvc:  locatorSvc,
		telegramSvc: telegramSvc,
		logger:      logger,
	}
}

// Run locates the release package and uploads the first match.
func (s *Impl) Run(ctx context.Context, cfg models.UploadConfig) error {
	s.logger.Info().Msg("starting Telegram upload")

	// Step 1: Locate release packages
	located, err := s.locatorSvc.Locate(ctx)
	if err != nil {
		return fmt.Errorf("locate failed: %w", err)
	}

	// Step 2: Caption
	caption := telegram.FormatCaption(cfg.Title, cfg.Branch, cfg.CommitMessage)
	s.logger.Info().Str("caption", caption).Msg("caption prepared")

	// Step 3: Upload
	path := located.Files[0]
	if len(located.Files) > 1 {
		s.logger.Warn().
			Int("skipped", len(located.Files)-1).
			Str("file", path).
			Msg("multiple packages found, uploading the first only")
	}

	result, err := s.telegramSvc.SendDocument(ctx, cfg, path)
	if err != nil {
		return fmt.Errorf("upload of %s failed: %w", path, err)
	}

	if !result.Uploaded {
		if result.Error == nil {
			result.Error = fmt.Errorf("telegram API returned status %d", result.StatusCode)
		}
		s.logger.Error().
			Err(result.Error).
			Str("file", path).
			Int("status", result.StatusCode).
			Str("description", result.Description).
			Str("body", result.Body).
			Msg("failed to upload document")
		return fmt.Errorf("%w: %s: %w", ErrUploadFailed, path, result.Error)
	}

	s.logger.Info().Str("file", path).Msg("upload completed")
	return nil
}
