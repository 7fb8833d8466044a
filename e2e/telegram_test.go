//go:build e2e

package e2e

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumelira/yumebot/internal/models"
	"github.com/yumelira/yumebot/internal/services/telegram"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func getTelegramConfig(t *testing.T) models.UploadConfig {
	t.Helper()

	botToken := os.Getenv("TEST_TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		t.Skip("TEST_TELEGRAM_BOT_TOKEN not set")
	}

	chatID := os.Getenv("TEST_TELEGRAM_CHAT_ID")
	if chatID == "" {
		t.Skip("TEST_TELEGRAM_CHAT_ID not set")
	}

	return models.UploadConfig{
		BotToken:        botToken,
		ChatID:          chatID,
		MessageThreadID: os.Getenv("TEST_TELEGRAM_MESSAGE_THREAD_ID"),
		CommitMessage:   "e2e: upload test document",
		Title:           "yumebot e2e",
		Branch:          "e2e",
	}
}

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yumebot-e2e-arm64-v8a.apk")
	require.NoError(t, os.WriteFile(path, []byte("yumebot e2e test document"), 0o600))
	return path
}

func TestTelegramSendDocument_E2E(t *testing.T) {
	cfg := getTelegramConfig(t)

	svc := telegram.New(testLogger())

	result, err := svc.SendDocument(context.Background(), cfg, writeDocument(t))

	require.NoError(t, err)
	assert.True(t, result.Uploaded, "body: %s", result.Body)
	assert.Nil(t, result.Error)
}

func TestTelegramSendDocument_InvalidToken_E2E(t *testing.T) {
	cfg := getTelegramConfig(t)
	cfg.BotToken = "000000:invalid"

	svc := telegram.New(testLogger())

	result, err := svc.SendDocument(context.Background(), cfg, writeDocument(t))

	require.NoError(t, err)
	assert.False(t, result.Uploaded)
	assert.Equal(t, 401, result.StatusCode)
	assert.NotEmpty(t, result.Description)
}
