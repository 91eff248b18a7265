package callback

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/session"

	"github.com/easeaico/aura/internal/utils"
)

// Speaker voices a reply.
type Speaker interface {
	Speak(ctx context.Context, text, mood string) bool
}

// NewSpeechCallback speaks each final model reply using the mood stored in session state.
// The response is passed through unchanged.
func NewSpeechCallback(speaker Speaker) llmagent.AfterModelCallback {
	return func(cbCtx agent.CallbackContext, resp *model.LLMResponse, err error) (*model.LLMResponse, error) {
		if err != nil {
			return nil, err
		}
		speakReply(cbCtx, cbCtx.State(), resp, speaker)
		return nil, nil
	}
}

func speakReply(ctx context.Context, state session.State, resp *model.LLMResponse, speaker Speaker) bool {
	if speaker == nil || resp == nil || resp.Partial || resp.Content == nil {
		return false
	}
	text := strings.TrimSpace(utils.ExtractContentText(resp.Content))
	if text == "" {
		return false
	}
	if !speaker.Speak(ctx, text, moodFromState(state)) {
		slog.Debug("reply was not spoken")
		return false
	}
	return true
}

func moodFromState(state session.State) string {
	if state == nil {
		return ""
	}
	v, err := state.Get(StateMood)
	if err != nil {
		if !errors.Is(err, session.ErrStateKeyNotExist) {
			slog.Warn("failed to read mood from state", "error", err.Error())
		}
		return ""
	}
	mood, _ := v.(string)
	return mood
}
