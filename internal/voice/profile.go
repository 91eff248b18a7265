// Package voice speaks text through a remote voice service with mood-tuned delivery.
package voice

// VoiceProfile holds synthesis tuning parameters.
type VoiceProfile struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

var (
	profileSubdued  = VoiceProfile{Stability: 0.7, SimilarityBoost: 0.8}
	profileLively   = VoiceProfile{Stability: 0.5, SimilarityBoost: 0.75}
	profileSteady   = VoiceProfile{Stability: 0.8, SimilarityBoost: 0.7}
	profileBalanced = VoiceProfile{Stability: 0.6, SimilarityBoost: 0.75}
)

// profileByMood is keyed on exact mood strings.
var profileByMood = map[string]VoiceProfile{
	"sad":       profileSubdued,
	"depressed": profileSubdued,
	"lonely":    profileSubdued,
	"happy":     profileLively,
	"excited":   profileLively,
	"anxious":   profileSteady,
	"confused":  profileSteady,
}

// DefaultProfile is used for empty or unrecognized moods.
func DefaultProfile() VoiceProfile {
	return profileBalanced
}

// ProfileFor selects the delivery parameters for mood.
func ProfileFor(mood string) VoiceProfile {
	if p, ok := profileByMood[mood]; ok {
		return p
	}
	return profileBalanced
}
