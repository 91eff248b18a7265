// Package main is the aura command line: mood classification, expressive speech
// and a mood-aware chat agent.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/easeaico/aura/internal/config"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
	userID  string
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Affect-aware conversational feedback",
	Long: `aura infers a user's mood from text and speaks replies with a voice
tuned to that mood.

Environment Variables:
  ELEVEN_LABS_API_KEY   - voice credential; speech is disabled without it
  EMOTION_BACKEND       - http, llm or keyword
  EMOTION_SERVICE_URL   - base URL of the emotion model service
  LLM_PROVIDER          - gemini, grok, openai or openrouter
  DATABASE_URL          - PostgreSQL DSN for the mood journal and chat sessions`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./aura.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "local", "user id recorded in the mood journal")

	rootCmd.AddCommand(classifyCmd, speakCmd, respondCmd, chatCmd, migrateCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("configuration loaded",
		"emotion_backend", cfg.EmotionBackend,
		"llm_provider", cfg.LLMProvider,
		"voice_enabled", cfg.VoiceEnabled(),
		"journal_enabled", cfg.DatabaseURL != "")
	return cfg, nil
}
