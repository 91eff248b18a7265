// Package callback holds adk agent callbacks that feed mood into the conversation.
package callback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/emotion"
	"github.com/easeaico/aura/internal/utils"
)

// Session state keys written by NewMoodCallback and read by the agent instruction.
const (
	StateMood            = "Mood"
	StateConfidence      = "Confidence"
	StateMoodInstruction = "MoodInstruction"
	StateNow             = "Now"
)

// Assessor classifies a user's text for a given user.
type Assessor interface {
	Assess(ctx context.Context, userID, text string) emotion.MoodResult
}

type turnContext interface {
	context.Context
	UserContent() *genai.Content
	UserID() string
	State() session.State
}

// NewMoodCallback classifies the incoming user message and stores the result in session state.
func NewMoodCallback(assessor Assessor) agent.BeforeAgentCallback {
	return func(cbCtx agent.CallbackContext) (*genai.Content, error) {
		return nil, recordMood(cbCtx, assessor)
	}
}

func recordMood(ctx turnContext, assessor Assessor) error {
	state := ctx.State()
	if state == nil {
		return nil
	}

	result := emotion.DefaultResult()
	if text := strings.TrimSpace(utils.ExtractContentText(ctx.UserContent())); text != "" {
		result = assessor.Assess(ctx, ctx.UserID(), text)
	}

	for key, value := range map[string]any{
		StateMood:            result.Mood,
		StateConfidence:      result.Confidence.String(),
		StateMoodInstruction: emotion.MoodInstruction(result.Mood),
		StateNow:             time.Now().Format(time.RFC3339),
	} {
		if err := state.Set(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}
