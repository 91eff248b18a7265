package emotion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	calls  atomic.Int32
	scores []EmotionScore
	err    error
	delay  time.Duration
}

func (s *fakeScorer) Score(ctx context.Context, text string) ([]EmotionScore, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.scores, s.err
}

type offlineScorer struct{ fakeScorer }

func (s *offlineScorer) Available() bool { return false }

func TestClassifyUsesBackendAndCaches(t *testing.T) {
	scorer := &fakeScorer{scores: []EmotionScore{
		{Label: "joy", Score: 0.97},
		{Label: "neutral", Score: 0.03},
	}}
	c := NewClassifier(scorer)

	first := c.Classify(context.Background(), "what a day")
	second := c.Classify(context.Background(), "what a day")

	assert.Equal(t, MoodResult{Mood: MoodHappy, Confidence: ConfidenceExtreme}, first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, scorer.calls.Load())
	assert.True(t, c.Cached("what a day"))
}

func TestClassifyCacheIsCaseSensitive(t *testing.T) {
	scorer := &fakeScorer{scores: []EmotionScore{{Label: "sadness", Score: 0.7}}}
	c := NewClassifier(scorer)

	c.Classify(context.Background(), "Hello")
	c.Classify(context.Background(), "hello")

	assert.EqualValues(t, 2, scorer.calls.Load())
}

func TestClassifyEvictsLeastRecentlyUsed(t *testing.T) {
	scorer := &fakeScorer{scores: []EmotionScore{{Label: "joy", Score: 0.5}}}
	c := NewClassifier(scorer)
	ctx := context.Background()

	for i := 0; i < CacheSize; i++ {
		c.Classify(ctx, fmt.Sprintf("text-%d", i))
	}
	// Touch the oldest entry so text-1 becomes the eviction candidate.
	c.Classify(ctx, "text-0")
	c.Classify(ctx, "overflow")

	assert.True(t, c.Cached("text-0"))
	assert.False(t, c.Cached("text-1"))
	assert.True(t, c.Cached("overflow"))
	assert.EqualValues(t, CacheSize+1, scorer.calls.Load())
}

func TestClassifyEmptyBackendResultIsDefault(t *testing.T) {
	scorer := &fakeScorer{scores: []EmotionScore{}}
	c := NewClassifier(scorer)

	got := c.Classify(context.Background(), "I am so happy and glad today")

	assert.Equal(t, MoodResult{Mood: "neutral", Confidence: "Not very confident"}, got)
	assert.False(t, c.Cached("I am so happy and glad today"))
}

func TestClassifyMalformedResponseIsDefault(t *testing.T) {
	scorer := &fakeScorer{err: fmt.Errorf("%w: bad json", ErrMalformedResponse)}
	c := NewClassifier(scorer)

	got := c.Classify(context.Background(), "I am so happy and glad today")

	assert.Equal(t, DefaultResult(), got)
}

func TestClassifyBackendErrorFallsBackToKeywords(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("connection refused")}
	c := NewClassifier(scorer)

	got := c.Classify(context.Background(), "I am so happy and glad today")

	assert.Equal(t, MoodHappy, got.Mood)
	assert.Equal(t, ConfidenceLow, got.Confidence)
	assert.False(t, c.Cached("I am so happy and glad today"))
}

func TestClassifyWithoutBackendUsesKeywords(t *testing.T) {
	got := NewClassifier(nil).Classify(context.Background(), "I am so happy and glad today")
	assert.Equal(t, MoodHappy, got.Mood)

	offline := &offlineScorer{}
	got = NewClassifier(offline).Classify(context.Background(), "I feel so worried and scared")
	assert.Equal(t, "anxious", got.Mood)
	assert.EqualValues(t, 0, offline.calls.Load())
}

func TestClassifyTimeoutFallsBack(t *testing.T) {
	scorer := &fakeScorer{
		scores: []EmotionScore{{Label: "joy", Score: 0.99}},
		delay:  time.Second,
	}
	c := NewClassifier(scorer, WithTimeout(10*time.Millisecond))

	got := c.Classify(context.Background(), "I hate this, I am so mad")

	assert.Equal(t, "angry", got.Mood)
	assert.False(t, c.Cached("I hate this, I am so mad"))
}

func TestClassifyConcurrentCallersShareInference(t *testing.T) {
	scorer := &fakeScorer{
		scores: []EmotionScore{{Label: "surprise", Score: 0.81}},
		delay:  50 * time.Millisecond,
	}
	c := NewClassifier(scorer)

	var wg sync.WaitGroup
	results := make([]MoodResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Classify(context.Background(), "no way!")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, MoodResult{Mood: MoodSurprised, Confidence: ConfidenceVery}, r)
	}
	assert.EqualValues(t, 1, scorer.calls.Load())
}

type panicScorer struct{}

func (panicScorer) Score(context.Context, string) ([]EmotionScore, error) {
	panic("model crashed")
}

func TestClassifyCancelledCallerDoesNotAffectOthers(t *testing.T) {
	scorer := &fakeScorer{
		scores: []EmotionScore{{Label: "sadness", Score: 0.97}},
		delay:  100 * time.Millisecond,
	}
	c := NewClassifier(scorer)

	ctxA, cancelA := context.WithCancel(context.Background())
	resultA := make(chan MoodResult, 1)
	go func() { resultA <- c.Classify(ctxA, "I feel low") }()
	require.Eventually(t, func() bool { return scorer.calls.Load() == 1 }, time.Second, time.Millisecond)

	resultB := make(chan MoodResult, 1)
	go func() { resultB <- c.Classify(context.Background(), "I feel low") }()
	time.Sleep(10 * time.Millisecond)
	cancelA()

	assert.Equal(t, MoodCalm, (<-resultA).Mood)
	assert.Equal(t, MoodResult{Mood: MoodSad, Confidence: ConfidenceExtreme}, <-resultB)
	assert.EqualValues(t, 1, scorer.calls.Load())
	assert.True(t, c.Cached("I feel low"))
}

func TestClassifyPanickingBackendFallsBack(t *testing.T) {
	c := NewClassifier(panicScorer{})

	var got MoodResult
	require.NotPanics(t, func() {
		got = c.Classify(context.Background(), "I am so happy and glad today")
	})
	assert.Equal(t, "happy", got.Mood)
	assert.False(t, c.Cached("I am so happy and glad today"))
}
