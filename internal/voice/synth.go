package voice

import (
	"context"
	"iter"
)

const (
	// DefaultVoiceID is the fixed assistant voice.
	DefaultVoiceID = "Xb7hH8MSUJpSbSDYk0k2"
	// DefaultModelID is the synthesis model used with DefaultVoiceID.
	DefaultModelID = "eleven_monolingual_v1"
)

// SynthesisRequest describes one utterance.
type SynthesisRequest struct {
	Text    string
	VoiceID string
	ModelID string
	Profile VoiceProfile
}

// Synthesizer streams encoded audio chunks in playback order.
type Synthesizer interface {
	Stream(ctx context.Context, req SynthesisRequest) iter.Seq2[[]byte, error]
}
