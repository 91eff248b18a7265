package emotion

import "errors"

var (
	// ErrBackendUnavailable is returned by scorers that are not configured or reachable.
	ErrBackendUnavailable = errors.New("emotion backend unavailable")
	// ErrMalformedResponse is returned when a backend answers with an unexpected shape.
	ErrMalformedResponse = errors.New("malformed emotion response")
)

// EmotionScore is one candidate emotion with its probability.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ConfidenceLevel is a qualitative bucket over a probability score.
type ConfidenceLevel string

const (
	ConfidenceExtreme  ConfidenceLevel = "Extremely confident"
	ConfidenceVery     ConfidenceLevel = "Very confident"
	ConfidenceModerate ConfidenceLevel = "Moderately confident"
	ConfidenceLow      ConfidenceLevel = "Not very confident"
)

// Rank orders confidence levels; higher is more confident. Unknown levels rank 0.
func (c ConfidenceLevel) Rank() int {
	switch c {
	case ConfidenceExtreme:
		return 4
	case ConfidenceVery:
		return 3
	case ConfidenceModerate:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

func (c ConfidenceLevel) String() string {
	return string(c)
}

// Normalized mood vocabulary.
const (
	MoodHappy     = "happy"
	MoodSad       = "sad"
	MoodUpset     = "upset"
	MoodAnxious   = "anxious"
	MoodSurprised = "surprised"
	MoodDisgusted = "disgusted"
	MoodCalm      = "calm"
	MoodNeutral   = "neutral"
)

// MoodResult is the user-facing classification.
type MoodResult struct {
	Mood       string          `json:"mood"`
	Confidence ConfidenceLevel `json:"confidence"`
}

// DefaultResult is returned when no usable scores exist.
func DefaultResult() MoodResult {
	return MoodResult{Mood: MoodNeutral, Confidence: ConfidenceLow}
}
