// Package locator finds release packages produced by the Android build.
package locator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/yumelira/yumebot/internal/models"
)

// ErrNoFilesFound is returned when no pattern matched any file.
var ErrNoFilesFound = errors.New("no arm64-v8a APK files found")

// DefaultPatterns cover a checkout run from the repository root, from an
// unprefixed working directory, and inside the GitHub Actions container.
var DefaultPatterns = []string{
	"./app/build/outputs/apk/release/*arm64-v8a*.apk",
	"app/build/outputs/apk/release/*arm64-v8a*.apk",
	"/github/workspace/app/build/outputs/apk/release/*arm64-v8a*.apk",
}

// Service defines the interface for locating release packages.
type Service interface {
	Locate(ctx context.Context) (*models.LocateResult, error)
}

// Impl implements the locator Service interface.
type Impl struct {
	patterns []string
	logger   zerolog.Logger
}

// New creates a locator that searches DefaultPatterns.
func New(logger zerolog.Logger) *Impl {
	return NewWithPatterns(logger, DefaultPatterns)
}

// NewWithPatterns creates a locator with custom glob patterns (for testing).
func NewWithPatterns(logger zerolog.Logger, patterns []string) *Impl {
	return &Impl{
		patterns: patterns,
		logger:   logger,
	}
}

// Locate returns the union of all pattern matches. A file reachable through
// more than one pattern is listed once, under the first path that found it.
func (s *Impl) Locate(ctx context.Context) (*models.LocateResult, error) {
	result := &models.LocateResult{
		Matches: make(map[string]int, len(s.patterns)),
	}
	seen := make(map[string]struct{})

	for _, pattern := range s.patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		result.Matches[pattern] = len(found)
		if len(found) == 0 {
			s.logger.Debug().Str("pattern", pattern).Msg("no files matched")
			continue
		}

		s.logger.Info().
			Int("count", len(found)).
			Str("pattern", pattern).
			Msg("found files")

		for _, path := range found {
			key := fileKey(path)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result.Files = append(result.Files, path)
		}
	}

	if len(result.Files) == 0 {
		return nil, ErrNoFilesFound
	}

	s.logger.Info().
		Int("total", len(result.Files)).
		Strs("files", result.Files).
		Msg("files to upload")

	return result, nil
}

// fileKey identifies the physical file behind path.
func fileKey(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
