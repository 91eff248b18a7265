package agent

import (
	"context"
	"iter"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/config"
	"github.com/easeaico/aura/internal/emotion"
	"github.com/easeaico/aura/internal/utils"
)

type fakeLLM struct {
	reply string

	mu          sync.Mutex
	instruction string
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	f.mu.Lock()
	if req.Config != nil {
		f.instruction = utils.ExtractContentText(req.Config.SystemInstruction)
	}
	f.mu.Unlock()
	return func(yield func(*model.LLMResponse, error) bool) {
		yield(&model.LLMResponse{
			Content:      genai.NewContentFromText(f.reply, genai.RoleModel),
			TurnComplete: true,
		}, nil)
	}
}

type fakeAssessor struct{}

func (fakeAssessor) Assess(context.Context, string, string) emotion.MoodResult {
	return emotion.DefaultResult()
}

func TestNewCompanionAgent(t *testing.T) {
	_, err := NewCompanionAgent(nil, fakeAssessor{}, nil)
	assert.Error(t, err)

	a, err := NewCompanionAgent(&fakeLLM{}, fakeAssessor{}, nil)
	require.NoError(t, err)
	assert.Equal(t, companionAgentName, a.Name())
}

func TestReplierSeedsMood(t *testing.T) {
	llm := &fakeLLM{reply: "I'm sorry it's been a heavy day."}
	r, err := NewReplier(llm)
	require.NoError(t, err)

	reply, err := r.Reply(context.Background(), "u1", "I feel so lonely", emotion.MoodResult{
		Mood:       "sad",
		Confidence: emotion.ConfidenceVery,
	})
	require.NoError(t, err)
	assert.Equal(t, "I'm sorry it's been a heavy day.", reply)

	left, err := r.sessions.List(context.Background(), &session.ListRequest{AppName: replyAppName, UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, left.Sessions)

	llm.mu.Lock()
	defer llm.mu.Unlock()
	assert.Contains(t, llm.instruction, "seems sad (Very confident)")
	assert.Contains(t, llm.instruction, emotion.MoodInstruction("sad"))
}

func TestNewLLMRequiresKey(t *testing.T) {
	_, err := NewLLM(context.Background(), config.Config{LLMProvider: "grok"})
	assert.Error(t, err)

	llm, err := NewLLM(context.Background(), config.Config{LLMProvider: "openai", OpenAIAPIKey: "k", LLMModel: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", llm.Name())
}
