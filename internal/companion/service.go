// Package companion composes mood classification, the mood journal and
// expressive speech for a single conversational turn.
package companion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/easeaico/aura/internal/emotion"
	"github.com/easeaico/aura/internal/storage"
)

// MoodClassifier infers a mood from user text.
type MoodClassifier interface {
	Classify(ctx context.Context, text string) emotion.MoodResult
}

// Speaker voices a reply with mood-tuned delivery.
type Speaker interface {
	Speak(ctx context.Context, text, mood string) bool
}

// Journal records classified utterances.
type Journal interface {
	Add(ctx context.Context, entry storage.MoodLog) (storage.MoodLog, error)
}

// Replier writes a reply for a classified message.
type Replier interface {
	Reply(ctx context.Context, userID, text string, mood emotion.MoodResult) (string, error)
}

// Turn is the outcome of one exchange.
type Turn struct {
	Mood        emotion.MoodResult
	Instruction string
	Reply       string
	Spoken      bool
}

// Option customizes a Service.
type Option func(*Service)

// WithJournal records every assessment.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithSpeaker enables spoken replies.
func WithSpeaker(sp Speaker) Option {
	return func(s *Service) { s.speaker = sp }
}

// WithReplier generates replies when Respond is called without one.
func WithReplier(r Replier) Option {
	return func(s *Service) { s.replier = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service runs turns.
type Service struct {
	classifier MoodClassifier
	speaker    Speaker
	journal    Journal
	replier    Replier
	logger     *slog.Logger
}

// New returns a Service. Speaker and journal are optional.
func New(classifier MoodClassifier, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assess classifies text and records it in the journal when one is configured.
func (s *Service) Assess(ctx context.Context, userID, text string) emotion.MoodResult {
	result := s.classifier.Classify(ctx, text)
	s.logger.Debug("mood assessed", "user_id", userID, "mood", result.Mood, "confidence", result.Confidence.String())

	if s.journal != nil && strings.TrimSpace(text) != "" {
		_, err := s.journal.Add(ctx, storage.MoodLog{
			UserID:     userID,
			Text:       text,
			Mood:       result.Mood,
			Confidence: result.Confidence.String(),
		})
		if err != nil {
			s.logger.Warn("failed to record mood", "user_id", userID, "error", err.Error())
		}
	}
	return result
}

// Respond assesses the user's text and speaks reply in the detected mood.
// An empty reply is generated by the replier when one is configured.
func (s *Service) Respond(ctx context.Context, userID, text, reply string) Turn {
	result := s.Assess(ctx, userID, text)
	turn := Turn{
		Mood:        result,
		Instruction: emotion.MoodInstruction(result.Mood),
		Reply:       reply,
	}
	if turn.Reply == "" && s.replier != nil {
		generated, err := s.replier.Reply(ctx, userID, text, result)
		if err != nil {
			s.logger.Error("failed to generate reply", "user_id", userID, "error", err.Error())
		}
		turn.Reply = generated
	}
	if s.speaker != nil && turn.Reply != "" {
		turn.Spoken = s.speaker.Speak(ctx, turn.Reply, result.Mood)
	}
	return turn
}
