package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"
	"google.golang.org/adk/session"
	"google.golang.org/adk/session/database"
	"gorm.io/driver/postgres"

	"github.com/easeaico/aura/internal/agent"
	"github.com/easeaico/aura/internal/callback"
	"github.com/easeaico/aura/internal/emotion"
	"github.com/easeaico/aura/internal/storage"
)

var speakMood string

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Print the mood and confidence for text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, cleanup, err := newService(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer cleanup()

		result := svc.Assess(cmd.Context(), userID, strings.Join(args, " "))
		return printJSON(cmd.OutOrStdout(), result)
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Speak text with the voice profile for --mood",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.VoiceEnabled() {
			return errors.New("ELEVEN_LABS_API_KEY is not set")
		}
		if !newSpeaker(cfg).Speak(cmd.Context(), strings.Join(args, " "), speakMood) {
			return errors.New("speech failed, see log for details")
		}
		return nil
	},
}

var respondReply string

var respondCmd = &cobra.Command{
	Use:   "respond <text>",
	Short: "Classify text, then speak a reply in the detected mood",
	Long: `respond classifies the user's text and speaks --reply with the matching
voice profile. Without --reply a reply is generated by the configured model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, cleanup, err := newService(cmd.Context(), cfg, respondReply == "")
		if err != nil {
			return err
		}
		defer cleanup()

		turn := svc.Respond(cmd.Context(), userID, strings.Join(args, " "), respondReply)
		return printJSON(cmd.OutOrStdout(), turnOutput{
			MoodResult:  turn.Mood,
			Instruction: turn.Instruction,
			Reply:       turn.Reply,
			Spoken:      turn.Spoken,
		})
	},
}

var chatCmd = &cobra.Command{
	Use:                "chat [launcher args]",
	Short:              "Run the mood-aware chat agent (console or web)",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := extractRootFlags(args)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		svc, cleanup, err := newService(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer cleanup()

		llm, err := agent.NewLLM(ctx, cfg)
		if err != nil {
			return err
		}
		var speaker callback.Speaker
		if cfg.VoiceEnabled() {
			speaker = newSpeaker(cfg)
		}
		companionAgent, err := agent.NewCompanionAgent(llm, svc, speaker)
		if err != nil {
			return err
		}

		var sessions session.Service = session.InMemoryService()
		if cfg.DatabaseURL != "" {
			sessions, err = database.NewSessionService(postgres.Open(cfg.DatabaseURL))
			if err != nil {
				return fmt.Errorf("failed to create session service: %w", err)
			}
		}

		l := full.NewLauncher()
		err = l.Execute(ctx, &launcher.Config{
			SessionService: sessions,
			AgentLoader:    adkagent.NewSingleLoader(companionAgent),
		}, args)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("failed to run agent: %w\n\n%s", err, l.CommandLineSyntax())
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the mood journal tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
		store, err := storage.NewStore(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.AutoMigrate(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "aura", Version)
	},
}

func init() {
	speakCmd.Flags().StringVar(&speakMood, "mood", "", "mood used to pick the voice profile")
	respondCmd.Flags().StringVar(&respondReply, "reply", "", "reply to speak instead of generating one")
}

type turnOutput struct {
	emotion.MoodResult
	Instruction string `json:"instruction,omitempty"`
	Reply       string `json:"reply,omitempty"`
	Spoken      bool   `json:"spoken"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
