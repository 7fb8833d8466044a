// Package config provides environment configuration loading.
package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yumelira/yumebot/internal/models"
)

// ErrMissingConfiguration is returned when a required variable is not set.
var ErrMissingConfiguration = errors.New("missing configuration")

// Configuration keys and the environment variables they are bound to.
const (
	keyBotToken        = "bot_token"
	keyChatID          = "chat_id"
	keyMessageThreadID = "message_thread_id"
	keyCommitMessage   = "commit_message"
	keyTitle           = "title"
	keyBranch          = "branch"
)

var envBindings = map[string]string{
	keyBotToken:        "BOT_TOKEN",
	keyChatID:          "CHAT_ID",
	keyMessageThreadID: "MESSAGE_THREAD_ID",
	keyCommitMessage:   "COMMIT_MESSAGE",
	keyTitle:           "TITLE",
	keyBranch:          "BRANCH",
}

// requiredKeys are checked in this order.
var requiredKeys = []string{keyBotToken, keyChatID, keyTitle, keyBranch}

// Parser handles configuration loading from the environment.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	// A variable set to "" is present; only unset variables are missing.
	v.AllowEmptyEnv(true)
	for key, env := range envBindings {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key, env)
	}
	return &Parser{v: v}
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. Variables that are already set are left untouched.
func (p *Parser) LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}
	return nil
}

// Load reads the upload configuration from the environment.
func (p *Parser) Load() (*models.UploadConfig, error) {
	for _, key := range requiredKeys {
		if !p.v.IsSet(key) {
			return nil, fmt.Errorf("%w: %s is not set", ErrMissingConfiguration, envBindings[key])
		}
	}

	return &models.UploadConfig{
		BotToken:        p.v.GetString(keyBotToken),
		ChatID:          p.v.GetString(keyChatID),
		MessageThreadID: p.v.GetString(keyMessageThreadID),
		CommitMessage:   p.v.GetString(keyCommitMessage),
		Title:           p.v.GetString(keyTitle),
		Branch:          p.v.GetString(keyBranch),
	}, nil
}

// Validate performs stricter validation on a loaded configuration.
// Load accepts blank values; Validate rejects them.
func Validate(cfg *models.UploadConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.BotToken == "" {
		return fmt.Errorf("%s is blank", envBindings[keyBotToken])
	}

	if cfg.ChatID == "" {
		return fmt.Errorf("%s is blank", envBindings[keyChatID])
	}

	if cfg.Title == "" {
		return fmt.Errorf("%s is blank", envBindings[keyTitle])
	}

	if cfg.Branch == "" {
		return fmt.Errorf("%s is blank", envBindings[keyBranch])
	}

	return nil
}
