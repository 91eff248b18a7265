package emotion

import "strings"

var moodByLabel = map[string]string{
	"joy":      MoodHappy,
	"sadness":  MoodSad,
	"anger":    MoodUpset,
	"fear":     MoodAnxious,
	"surprise": MoodSurprised,
	"disgust":  MoodDisgusted,
	"neutral":  MoodCalm,
}

type confidenceStep struct {
	min   float64
	level ConfidenceLevel
}

// confidenceLadder is evaluated highest-first; bounds are inclusive.
var confidenceLadder = []confidenceStep{
	{min: 0.95, level: ConfidenceExtreme},
	{min: 0.80, level: ConfidenceVery},
	{min: 0.65, level: ConfidenceModerate},
}

// NormalizeMood lowercases a raw model label and maps it to the mood vocabulary.
// Unknown labels pass through lowercased.
func NormalizeMood(label string) string {
	lowered := strings.ToLower(label)
	if mood, ok := moodByLabel[lowered]; ok {
		return mood
	}
	return lowered
}

// ConfidenceFor buckets a score.
func ConfidenceFor(score float64) ConfidenceLevel {
	for _, step := range confidenceLadder {
		if score >= step.min {
			return step.level
		}
	}
	return ConfidenceLow
}

// Top returns the highest scoring entry. The first maximal entry wins ties.
func Top(scores []EmotionScore) (EmotionScore, bool) {
	if len(scores) == 0 {
		return EmotionScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

// Resolve turns a score list into a MoodResult.
func Resolve(scores []EmotionScore) MoodResult {
	best, ok := Top(scores)
	if !ok {
		return DefaultResult()
	}
	mood := NormalizeMood(best.Label)
	if mood == "" {
		mood = MoodNeutral
	}
	return MoodResult{
		Mood:       mood,
		Confidence: ConfidenceFor(best.Score),
	}
}
