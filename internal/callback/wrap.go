package callback

import (
	"fmt"
	"log/slog"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// WrapBeforeCallback logs cb and turns a panic into an error.
func WrapBeforeCallback(name string, cb agent.BeforeAgentCallback) agent.BeforeAgentCallback {
	return func(ctx agent.CallbackContext) (content *genai.Content, err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("before callback panic", "name", name, "error", r)
				content, err = nil, fmt.Errorf("callback %s panicked: %v", name, r)
			}
		}()

		slog.Debug("before callback start", "name", name)
		content, err = cb(ctx)
		if err != nil {
			slog.Error("before callback error", "name", name, "error", err.Error())
			return content, err
		}
		slog.Debug("before callback done", "name", name, "has_content", content != nil)
		return content, nil
	}
}

// WrapAfterModelCallback logs cb and swallows a panic, keeping the original response.
func WrapAfterModelCallback(name string, cb llmagent.AfterModelCallback) llmagent.AfterModelCallback {
	return func(ctx agent.CallbackContext, resp *model.LLMResponse, respErr error) (out *model.LLMResponse, err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("after model callback panic", "name", name, "error", r)
				out, err = nil, respErr
			}
		}()
		return cb(ctx, resp, respErr)
	}
}
