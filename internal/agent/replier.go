package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/callback"
	"github.com/easeaico/aura/internal/emotion"
	"github.com/easeaico/aura/internal/utils"
)

const replyAppName = "aura"

// Replier produces a single reply for an already classified message.
type Replier struct {
	runner   *runner.Runner
	sessions session.Service
}

// NewReplier wraps llm in a one-shot agent backed by in-memory sessions.
func NewReplier(llm model.LLM) (*Replier, error) {
	if llm == nil {
		return nil, fmt.Errorf("model is required")
	}
	llmAgent, err := llmagent.New(llmagent.Config{
		Name:        replyAgentName,
		Description: "Single mood-aware reply",
		Model:       llm,
		Instruction: companionInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reply agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        replyAppName,
		Agent:          llmAgent,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reply runner: %w", err)
	}
	return &Replier{runner: r, sessions: sessions}, nil
}

// Reply answers text in a fresh session seeded with mood.
func (r *Replier) Reply(ctx context.Context, userID, text string, mood emotion.MoodResult) (string, error) {
	sessionID := uuid.NewString()
	if _, err := r.sessions.Create(ctx, &session.CreateRequest{
		AppName:   replyAppName,
		UserID:    userID,
		SessionID: sessionID,
		State: map[string]any{
			callback.StateMood:            mood.Mood,
			callback.StateConfidence:      mood.Confidence.String(),
			callback.StateMoodInstruction: emotion.MoodInstruction(mood.Mood),
		},
	}); err != nil {
		return "", fmt.Errorf("failed to create reply session: %w", err)
	}
	defer r.deleteSession(context.WithoutCancel(ctx), userID, sessionID)

	events := r.runner.Run(ctx, userID, sessionID, genai.NewContentFromText(text, genai.RoleUser), agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	})

	var last string
	for event, err := range events {
		if err != nil {
			return "", err
		}
		if event == nil || event.Content == nil || event.Author == "user" {
			continue
		}
		if t := strings.TrimSpace(utils.ExtractContentText(event.Content)); t != "" {
			last = t
		}
		if event.IsFinalResponse() {
			break
		}
	}
	if last == "" {
		return "", fmt.Errorf("empty reply")
	}
	return last, nil
}

func (r *Replier) deleteSession(ctx context.Context, userID, sessionID string) {
	if err := r.sessions.Delete(ctx, &session.DeleteRequest{
		AppName:   replyAppName,
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		slog.Warn("failed to delete reply session", "session_id", sessionID, "error", err.Error())
	}
}
