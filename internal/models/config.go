// Package models contains the data structures used throughout yumebot.
package models

// UploadConfig holds the configuration for a single upload run.
type UploadConfig struct {
	BotToken        string
	ChatID          string
	MessageThreadID string // optional, omitted from the request when empty
	CommitMessage   string
	Title           string
	Branch          string
}
