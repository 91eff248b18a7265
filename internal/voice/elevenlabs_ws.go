package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const elevenLabsWSBase = "wss://api.elevenlabs.io/v1/text-to-speech/{voice_id}/stream-input"

type wsInit struct {
	Text          string       `json:"text"`
	VoiceSettings VoiceProfile `json:"voice_settings"`
	XIAPIKey      string       `json:"xi_api_key"`
}

type wsText struct {
	Text  string `json:"text"`
	Flush bool   `json:"flush,omitempty"`
}

type wsMessage struct {
	Audio   string `json:"audio"`
	IsFinal bool   `json:"isFinal"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ElevenLabsWS streams speech over the ElevenLabs stream-input websocket.
type ElevenLabsWS struct {
	apiKey string
	base   string
	dialer *websocket.Dialer
}

// NewElevenLabsWS returns a websocket synthesizer. An empty base uses the public endpoint.
func NewElevenLabsWS(apiKey, base string) *ElevenLabsWS {
	base = strings.TrimSpace(base)
	if base == "" {
		base = elevenLabsWSBase
	}
	return &ElevenLabsWS{
		apiKey: strings.TrimSpace(apiKey),
		base:   base,
		dialer: websocket.DefaultDialer,
	}
}

func (e *ElevenLabsWS) endpoint(req SynthesisRequest) (string, error) {
	raw := strings.ReplaceAll(e.base, "{voice_id}", url.PathEscape(req.VoiceID))
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid elevenlabs ws url: %w", err)
	}
	q := u.Query()
	if q.Get("model_id") == "" && req.ModelID != "" {
		q.Set("model_id", req.ModelID)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Stream implements Synthesizer.
func (e *ElevenLabsWS) Stream(ctx context.Context, req SynthesisRequest) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if e.apiKey == "" {
			yield(nil, errors.New("elevenlabs api key is required"))
			return
		}
		wsURL, err := e.endpoint(req)
		if err != nil {
			yield(nil, err)
			return
		}

		header := http.Header{}
		header.Set("xi-api-key", e.apiKey)
		conn, _, err := e.dialer.DialContext(ctx, wsURL, header)
		if err != nil {
			yield(nil, fmt.Errorf("dial elevenlabs: %w", err))
			return
		}
		defer conn.Close()

		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
		defer stop()

		text := strings.TrimSpace(req.Text) + " "
		for _, msg := range []any{
			wsInit{Text: " ", VoiceSettings: req.Profile, XIAPIKey: e.apiKey},
			wsText{Text: text, Flush: true},
			wsText{Text: ""},
		} {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				yield(nil, fmt.Errorf("send text: %w", err))
				return
			}
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					err = ctx.Err()
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					return
				}
				yield(nil, fmt.Errorf("read audio: %w", err))
				return
			}
			var msg wsMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if msg.Error != "" {
				yield(nil, fmt.Errorf("elevenlabs ws error %s: %s", msg.Error, msg.Message))
				return
			}
			if msg.Audio != "" {
				audio, err := base64.StdEncoding.DecodeString(msg.Audio)
				if err != nil {
					yield(nil, fmt.Errorf("decode audio: %w", err))
					return
				}
				if len(audio) > 0 && !yield(audio, nil) {
					return
				}
			}
			if msg.IsFinal {
				return
			}
		}
	}
}
