package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		mood string
		want VoiceProfile
	}{
		{"sad", VoiceProfile{0.7, 0.8}},
		{"depressed", VoiceProfile{0.7, 0.8}},
		{"lonely", VoiceProfile{0.7, 0.8}},
		{"happy", VoiceProfile{0.5, 0.75}},
		{"excited", VoiceProfile{0.5, 0.75}},
		{"anxious", VoiceProfile{0.8, 0.7}},
		{"confused", VoiceProfile{0.8, 0.7}},
		{"", VoiceProfile{0.6, 0.75}},
		{"calm", VoiceProfile{0.6, 0.75}},
		{"Sad", VoiceProfile{0.6, 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileFor(tt.mood))
		})
	}
	assert.Equal(t, DefaultProfile(), ProfileFor("boredom"))
}
