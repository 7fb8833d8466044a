// Package telegram uploads release packages through the Telegram Bot API.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yumelira/yumebot/internal/models"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	uploadTimeout  = 60 * time.Second
	parseMode      = "markdown"

	// maxResponseBody caps how much of the API response is kept for logging.
	maxResponseBody = 1 << 20
)

// Service defines the interface for Telegram upload operations.
type Service interface {
	SendDocument(ctx context.Context, cfg models.UploadConfig, path string) (*models.UploadResult, error)
}

// HTTPClient allows mocking HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Impl implements the Telegram Service interface.
type Impl struct {
	httpClient HTTPClient
	logger     zerolog.Logger
	baseURL    string
}

// New creates a new Telegram service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		httpClient: &http.Client{
			Timeout: uploadTimeout,
		},
		logger:  logger,
		baseURL: defaultBaseURL,
	}
}

// NewWithClient creates a new Telegram service with a custom HTTP client (for testing).
func NewWithClient(logger zerolog.Logger, httpClient HTTPClient, baseURL string) *Impl {
	return &Impl{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// FormatCaption builds the document caption: a bold title, the branch,
// and the commit message in a fenced code block. Markdown characters in
// the inputs are passed through as-is.
func FormatCaption(title, branch, commitMessage string) string {
	return "**" + title + "**\n" +
		"Branch: " + branch + "\n" +
		"```\n" + commitMessage + "\n```"
}

// apiResponse is the envelope returned by every Bot API method.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendDocument uploads the file at path with a caption built from cfg.
// The returned error covers local failures only; an unreachable API or a
// non-200 response is reported through the result.
func (s *Impl) SendDocument(ctx context.Context, cfg models.UploadConfig, path string) (*models.UploadResult, error) {
	result := &models.UploadResult{}

	s.logger.Info().
		Str("chat_id", cfg.ChatID).
		Str("file", path).
		Msg("uploading document")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	// The body is streamed so the package is never held in memory.
	pr, pw := io.Pipe()
	defer func() { _ = pr.Close() }()

	form := multipart.NewWriter(pw)
	done := make(chan error, 1)
	go func() {
		defer func() { _ = f.Close() }()
		err := writeDocumentForm(form, cfg, f, filepath.Base(path))
		_ = pw.CloseWithError(err)
		done <- err
	}()

	endpoint := fmt.Sprintf("%s/bot%s/sendDocument", s.baseURL, cfg.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, redactToken(fmt.Errorf("failed to create request: %w", err), cfg.BotToken)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		_ = pr.Close()
		if werr := <-done; werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
			return nil, werr
		}
		result.Error = redactToken(fmt.Errorf("failed to send request: %w", err), cfg.BotToken)
		return result, nil
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		s.logger.Debug().Err(err).Msg("failed to read response body")
	}
	result.Body = string(raw)

	if resp.StatusCode != http.StatusOK {
		var apiResp apiResponse
		if json.Unmarshal(raw, &apiResp) == nil {
			result.Description = apiResp.Description
		}
		result.Error = fmt.Errorf("telegram API returned status %d", resp.StatusCode)
		return result, nil
	}

	result.Uploaded = true
	s.logger.Info().Str("file", path).Msg("document uploaded successfully")

	return result, nil
}

// writeDocumentForm encodes the sendDocument multipart body into w.
func writeDocumentForm(w *multipart.Writer, cfg models.UploadConfig, doc io.Reader, name string) error {
	fields := [][2]string{
		{"chat_id", cfg.ChatID},
		{"caption", FormatCaption(cfg.Title, cfg.Branch, cfg.CommitMessage)},
		{"parse_mode", parseMode},
	}
	if cfg.MessageThreadID != "" {
		fields = append(fields, [2]string{"message_thread_id", cfg.MessageThreadID})
	}

	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return fmt.Errorf("failed to write field %s: %w", field[0], err)
		}
	}

	part, err := w.CreateFormFile("document", name)
	if err != nil {
		return fmt.Errorf("failed to create document part: %w", err)
	}
	if _, err := io.Copy(part, doc); err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return nil
}

// redactedToken replaces the bot token wherever a request URL is reported.
const redactedToken = "<redacted>"

// redactToken strips token from the URL carried by a *url.Error in err's
// chain. The chain is otherwise kept, so errors.Is still sees the cause.
func redactToken(err error, token string) error {
	if err == nil || token == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, token, redactedToken)
	}
	if !strings.Contains(err.Error(), token) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, redactedToken), err: err}
}

// redactedError reports a scrubbed message while keeping the wrapped chain.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
