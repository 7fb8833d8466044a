package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Configuration flags.
	envFile    string
	verbose    bool
	quiet      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "yumebot",
	Short: "Upload a release APK to a Telegram chat",
	Long: `yumebot is a CI helper that publishes the arm64-v8a release build:
  - reads BOT_TOKEN, CHAT_ID, MESSAGE_THREAD_ID, COMMIT_MESSAGE, TITLE and BRANCH
  - locates the APK under app/build/outputs/apk/release
  - sends it to the chat with the Bot API sendDocument method

Running without a subcommand is the same as "yumebot upload".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(os.Stdout)
	},
	RunE:          runUpload,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "load variables from a dotenv file (existing variables win)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output logs in JSON format")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(validateCmd)
}

// statusMarker renders the level column as the [+]/[-] progress prefix.
func statusMarker(i interface{}) string {
	s, ok := i.(string)
	if !ok {
		return "[?]"
	}
	switch s {
	case zerolog.LevelWarnValue, zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return "[-]"
	default:
		return "[+]"
	}
}

func setupLogging(out io.Writer) {
	// Set output format
	if jsonOutput {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
		output.FormatLevel = statusMarker
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set log level
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Error")
		return err
	}
	return nil
}
