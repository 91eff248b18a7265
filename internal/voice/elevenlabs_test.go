package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s Synthesizer, req SynthesisRequest) ([]byte, error) {
	t.Helper()
	var out []byte
	for chunk, err := range s.Stream(context.Background(), req) {
		if err != nil {
			return out, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func TestElevenLabsStream(t *testing.T) {
	var got elevenLabsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/text-to-speech/"+DefaultVoiceID+"/stream", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("xi-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3"))
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	synth := NewElevenLabs("key", 0).WithBaseURL(srv.URL + "/")
	audio, err := collect(t, synth, SynthesisRequest{
		Text:    "hello",
		VoiceID: DefaultVoiceID,
		ModelID: DefaultModelID,
		Profile: ProfileFor("sad"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ID3audio", string(audio))
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, DefaultModelID, got.ModelID)
	assert.Equal(t, VoiceProfile{Stability: 0.7, SimilarityBoost: 0.8}, got.VoiceSettings)
}

func TestElevenLabsStreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := collect(t, NewElevenLabs("key", 0).WithBaseURL(srv.URL), SynthesisRequest{Text: "hi", VoiceID: "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestElevenLabsRequiresKey(t *testing.T) {
	_, err := collect(t, NewElevenLabs("  ", 0), SynthesisRequest{Text: "hi"})
	require.Error(t, err)
}
