package emotion

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

type fakeLLM struct {
	reply   string
	err     error
	lastReq *model.LLMRequest
}

func (m *fakeLLM) Name() string { return "fake" }

func (m *fakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	m.lastReq = req
	return func(yield func(*model.LLMResponse, error) bool) {
		if m.err != nil {
			yield(nil, m.err)
			return
		}
		yield(&model.LLMResponse{Content: genai.NewContentFromText(m.reply, "model")}, nil)
	}
}

func TestLLMScorerParsesScores(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n{\"emotions\":[{\"label\":\"joy\",\"score\":0.9},{\"label\":\"neutral\",\"score\":0.1}]}\n```"}
	scorer, err := NewLLMScorer(llm)
	require.NoError(t, err)

	scores, err := scorer.Score(context.Background(), "best day ever")
	require.NoError(t, err)
	assert.Equal(t, []EmotionScore{{Label: "joy", Score: 0.9}, {Label: "neutral", Score: 0.1}}, scores)

	require.NotNil(t, llm.lastReq)
	assert.Equal(t, "application/json", llm.lastReq.Config.ResponseMIMEType)
	assert.NotNil(t, llm.lastReq.Config.ResponseSchema)
}

func TestLLMScorerRejectsOutOfRangeScore(t *testing.T) {
	scorer, err := NewLLMScorer(&fakeLLM{reply: `{"emotions":[{"label":"joy","score":3}]}`})
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLLMScorerRejectsGarbage(t *testing.T) {
	scorer, err := NewLLMScorer(&fakeLLM{reply: "I think the user is happy"})
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLLMScorerModelErrorIsNotMalformed(t *testing.T) {
	scorer, err := NewLLMScorer(&fakeLLM{err: errors.New("quota exceeded")})
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), "hi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestLLMScorerWithoutModelIsUnavailable(t *testing.T) {
	scorer, err := NewLLMScorer(nil)
	require.NoError(t, err)
	assert.False(t, scorer.Available())

	_, err = scorer.Score(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestClassifierWithLLMScorer(t *testing.T) {
	scorer, err := NewLLMScorer(&fakeLLM{reply: `{"emotions":[{"label":"sadness","score":0.82},{"label":"joy","score":0.18}]}`})
	require.NoError(t, err)

	got := NewClassifier(scorer).Classify(context.Background(), "I miss my dog")
	assert.Equal(t, MoodResult{Mood: MoodSad, Confidence: ConfidenceVery}, got)
}
