// Package emotion infers a user's mood from text.
package emotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// CacheSize bounds the inference cache.
const CacheSize = 128

// Scorer returns scores for every supported emotion class.
type Scorer interface {
	Score(ctx context.Context, text string) ([]EmotionScore, error)
}

// availability is implemented by scorers that can report missing configuration up front.
type availability interface {
	Available() bool
}

// Classifier maps text to a MoodResult using a Scorer, an LRU of past scores and
// a keyword heuristic when the scorer cannot answer.
type Classifier struct {
	scorer  Scorer
	cache   *lru.Cache[string, []EmotionScore]
	group   singleflight.Group
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTimeout bounds each backend call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		c.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier returns a Classifier. A nil scorer always uses the keyword heuristic.
func NewClassifier(scorer Scorer, opts ...Option) *Classifier {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []EmotionScore](CacheSize)
	c := &Classifier{
		scorer: scorer,
		cache:  cache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the mood for text. It never fails; backend problems degrade to
// the keyword heuristic, empty or malformed responses to DefaultResult.
func (c *Classifier) Classify(ctx context.Context, text string) MoodResult {
	if !c.backendReady() {
		return Resolve(KeywordScores(text))
	}

	scores, err := c.scores(ctx, text)
	if errors.Is(err, ErrMalformedResponse) {
		c.logger.Warn("emotion backend returned a malformed response", "error", err.Error())
		return DefaultResult()
	}
	if err != nil {
		c.logger.Warn("emotion backend failed, using keyword fallback", "error", err.Error())
		return Resolve(KeywordScores(text))
	}
	if len(scores) == 0 {
		c.logger.Debug("emotion backend returned no scores")
	}
	return Resolve(scores)
}

// Cached reports whether scores for text are cached, without touching recency.
func (c *Classifier) Cached(text string) bool {
	return c.cache.Contains(text)
}

func (c *Classifier) backendReady() bool {
	if c.scorer == nil {
		return false
	}
	if a, ok := c.scorer.(availability); ok {
		return a.Available()
	}
	return true
}

func (c *Classifier) scores(ctx context.Context, text string) ([]EmotionScore, error) {
	if cached, ok := c.cache.Get(text); ok {
		return cached, nil
	}

	// The flight outlives any single caller; each caller waits on its own ctx.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(text, func() (any, error) {
		if cached, ok := c.cache.Get(text); ok {
			return cached, nil
		}
		scores, err := c.infer(flightCtx, text)
		if err != nil {
			return nil, err
		}
		if len(scores) > 0 {
			c.cache.Add(text, scores)
		}
		return scores, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		scores, _ := r.Val.([]EmotionScore)
		return scores, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// infer runs the scorer on its own goroutine so the caller only waits on the result
// or on ctx. A panicking scorer is reported as an unavailable backend.
func (c *Classifier) infer(ctx context.Context, text string) ([]EmotionScore, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	type result struct {
		scores []EmotionScore
		err    error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: scorer panicked: %v", ErrBackendUnavailable, r)}
			}
		}()
		scores, err := c.scorer.Score(ctx, text)
		done <- result{scores: scores, err: err}
	}()

	select {
	case r := <-done:
		return r.scores, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
