package voice

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPollInterval is how often a busy player is checked.
const DefaultPollInterval = 100 * time.Millisecond

// State is a stage of a single Speak call.
type State int

const (
	StateIdle State = iota
	StateSynthesizing
	StateWriting
	StatePlayingPrimary
	StatePlayingFallback
	StateCleanup
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSynthesizing:
		return "synthesizing"
	case StateWriting:
		return "writing"
	case StatePlayingPrimary:
		return "playing_primary"
	case StatePlayingFallback:
		return "playing_fallback"
	case StateCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Config configures a Speaker.
type Config struct {
	APIKey       string
	VoiceID      string
	ModelID      string
	TempDir      string
	PollInterval time.Duration
}

// Option customizes a Speaker.
type Option func(*Speaker)

// WithPlayer overrides the detected player. A nil player forces the opener path.
func WithPlayer(p Player) Option {
	return func(s *Speaker) {
		s.player = p
		s.playerSet = true
	}
}

// WithOpener overrides the platform opener.
func WithOpener(o Opener) Option {
	return func(s *Speaker) { s.opener = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Speaker) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStateHook registers a callback invoked on every state transition.
func WithStateHook(fn func(State)) Option {
	return func(s *Speaker) { s.onState = fn }
}

// Speaker synthesizes text with mood-tuned delivery and plays it locally.
type Speaker struct {
	cfg       Config
	synth     Synthesizer
	player    Player
	playerSet bool
	opener    Opener
	logger    *slog.Logger
	onState   func(State)
}

// NewSpeaker builds a Speaker. The player is detected once here unless provided.
func NewSpeaker(cfg Config, synth Synthesizer, opts ...Option) *Speaker {
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	s := &Speaker{
		cfg:    cfg,
		synth:  synth,
		opener: SystemOpener{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.playerSet {
		s.player = DetectPlayer()
	}
	return s
}

// Enabled reports whether Speak can do anything at all.
func (s *Speaker) Enabled() bool {
	return strings.TrimSpace(s.cfg.APIKey) != "" && s.synth != nil
}

func (s *Speaker) enter(st State) {
	if s.onState != nil {
		s.onState(st)
	}
}

// Speak voices text with the profile chosen for mood. It reports whether
// playback was started by either the local player or the platform opener.
func (s *Speaker) Speak(ctx context.Context, text, mood string) bool {
	if !s.Enabled() || strings.TrimSpace(text) == "" {
		return false
	}

	profile := ProfileFor(mood)
	s.enter(StateSynthesizing)

	path := s.artifactPath()
	ok := s.run(ctx, path, SynthesisRequest{
		Text:    text,
		VoiceID: s.cfg.VoiceID,
		ModelID: s.cfg.ModelID,
		Profile: profile,
	})

	s.enter(StateCleanup)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove speech artifact", "path", path, "error", err.Error())
	}
	s.enter(StateIdle)
	return ok
}

func (s *Speaker) run(ctx context.Context, path string, req SynthesisRequest) bool {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		s.logger.Error("failed to create speech artifact", "path", path, "error", err.Error())
		return false
	}

	written := 0
	wrote := false
	for chunk, err := range s.synth.Stream(ctx, req) {
		if err != nil {
			_ = f.Close()
			s.logger.Error("speech synthesis failed", "voice", req.VoiceID, "error", err.Error())
			return false
		}
		if !wrote {
			s.enter(StateWriting)
			wrote = true
		}
		n, err := f.Write(chunk)
		written += n
		if err != nil {
			_ = f.Close()
			s.logger.Error("failed to write speech artifact", "path", path, "error", err.Error())
			return false
		}
	}
	if err := f.Close(); err != nil {
		s.logger.Error("failed to close speech artifact", "path", path, "error", err.Error())
		return false
	}
	if written == 0 {
		s.logger.Error("speech synthesis returned no audio")
		return false
	}

	if s.player != nil {
		s.enter(StatePlayingPrimary)
		err := s.playPrimary(ctx, path)
		if err == nil {
			return true
		}
		s.logger.Warn("primary playback failed, using system opener", "error", err.Error())
	}

	s.enter(StatePlayingFallback)
	if s.opener != nil {
		if err := s.opener.Open(path); err != nil {
			s.logger.Warn("system opener failed", "path", path, "error", err.Error())
		}
	}
	return true
}

func (s *Speaker) playPrimary(ctx context.Context, path string) error {
	if err := s.player.Load(path); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := s.player.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for s.player.Busy() {
		select {
		case <-ctx.Done():
			s.logger.Info("stopped waiting for playback", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func (s *Speaker) artifactPath() string {
	id, err := uuid.NewV7()
	var name string
	if err == nil {
		name = id.String()
	} else {
		name = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return filepath.Join(s.cfg.TempDir, "aura_response_"+name+".mp3")
}
