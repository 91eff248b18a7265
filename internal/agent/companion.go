// Package agent builds the adk agents that hold a mood-aware conversation.
package agent

import (
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"

	"github.com/easeaico/aura/internal/callback"
)

const (
	companionAgentName = "aura_companion"
	replyAgentName     = "aura_reply"
)

// companionInstruction is rendered by adk against session state on every turn.
const companionInstruction = `You are Aura, a warm and attentive conversational companion.
Keep replies short enough to be read aloud comfortably: two to four sentences, no lists or markup.

The user currently seems {Mood} ({Confidence}).
{MoodInstruction}

Never tell the user which mood you detected unless they ask.`

// NewCompanionAgent builds the chat agent. Each turn is classified before the
// model runs; when speaker is non-nil every final reply is also spoken.
func NewCompanionAgent(llm model.LLM, assessor callback.Assessor, speaker callback.Speaker) (agent.Agent, error) {
	if llm == nil || assessor == nil {
		return nil, fmt.Errorf("model and assessor are required")
	}

	cfg := llmagent.Config{
		Name:        companionAgentName,
		Description: "Mood-aware conversational companion",
		Model:       llm,
		Instruction: companionInstruction,
		BeforeAgentCallbacks: []agent.BeforeAgentCallback{
			callback.WrapBeforeCallback("mood", callback.NewMoodCallback(assessor)),
		},
	}
	if speaker != nil {
		cfg.AfterModelCallbacks = []llmagent.AfterModelCallback{
			callback.WrapAfterModelCallback("speech", callback.NewSpeechCallback(speaker)),
		}
	}

	llmAgent, err := llmagent.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create companion agent: %w", err)
	}
	return llmAgent, nil
}
