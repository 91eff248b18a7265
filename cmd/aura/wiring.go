package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easeaico/aura/internal/agent"
	"github.com/easeaico/aura/internal/companion"
	"github.com/easeaico/aura/internal/config"
	"github.com/easeaico/aura/internal/emotion"
	"github.com/easeaico/aura/internal/storage"
	"github.com/easeaico/aura/internal/voice"
)

func newScorer(ctx context.Context, cfg config.Config) (emotion.Scorer, error) {
	switch cfg.EmotionBackend {
	case config.BackendHTTP:
		if cfg.EmotionServiceURL == "" {
			slog.Warn("EMOTION_SERVICE_URL not set, using keyword heuristic")
			return nil, nil
		}
		return emotion.NewHTTPScorer(cfg.EmotionServiceURL, cfg.EmotionTimeout), nil
	case config.BackendLLM:
		llm, err := agent.NewLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return emotion.NewLLMScorer(llm)
	default:
		return nil, nil
	}
}

func newClassifier(ctx context.Context, cfg config.Config) (*emotion.Classifier, error) {
	scorer, err := newScorer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("emotion backend: %w", err)
	}
	return emotion.NewClassifier(scorer,
		emotion.WithTimeout(cfg.EmotionTimeout),
		emotion.WithLogger(slog.Default().With("component", "emotion")),
	), nil
}

func newSpeaker(cfg config.Config) *voice.Speaker {
	var synth voice.Synthesizer
	switch cfg.VoiceTransport {
	case config.TransportWebsocket:
		synth = voice.NewElevenLabsWS(cfg.ElevenLabsAPIKey, "")
	default:
		synth = voice.NewElevenLabs(cfg.ElevenLabsAPIKey, cfg.VoiceTimeout)
	}
	return voice.NewSpeaker(voice.Config{
		APIKey:       cfg.ElevenLabsAPIKey,
		VoiceID:      cfg.VoiceID,
		ModelID:      cfg.VoiceModelID,
		TempDir:      cfg.AudioDir,
		PollInterval: cfg.PollInterval,
	}, synth, voice.WithLogger(slog.Default().With("component", "voice")))
}

// openStore connects the mood journal. A nil store means journaling is off.
func openStore(ctx context.Context, cfg config.Config) *storage.Store {
	if cfg.DatabaseURL == "" {
		return nil
	}
	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("mood journal disabled", "error", err.Error())
		return nil
	}
	return store
}

// newService wires the classifier with the optional journal, speaker and replier.
func newService(ctx context.Context, cfg config.Config, withReplier bool) (*companion.Service, func(), error) {
	classifier, err := newClassifier(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []companion.Option{companion.WithLogger(slog.Default().With("component", "companion"))}
	cleanup := func() {}
	if store := openStore(ctx, cfg); store != nil {
		opts = append(opts, companion.WithJournal(store.Moods))
		cleanup = store.Close
	}
	if cfg.VoiceEnabled() {
		opts = append(opts, companion.WithSpeaker(newSpeaker(cfg)))
	}
	if withReplier {
		llm, err := agent.NewLLM(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		replier, err := agent.NewReplier(llm)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, companion.WithReplier(replier))
	}
	return companion.New(classifier, opts...), cleanup, nil
}
