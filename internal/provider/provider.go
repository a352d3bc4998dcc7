// Package provider builds request payloads for the supported LLM backends and
// extracts generated text or API errors from their responses.
package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies an LLM backend
type ID string

const (
	OpenAI    ID = "openai"
	Anthropic ID = "anthropic"
)

// IDs lists the known providers in toggle order
var IDs = []ID{OpenAI, Anthropic}

// ErrUnknownProvider is returned for provider identifiers outside IDs
var ErrUnknownProvider = errors.New("unknown provider")

// ParseID validates a provider identifier
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range IDs {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownProvider, s, joinIDs())
}

func joinIDs() string {
	names := make([]string, len(IDs))
	for i, id := range IDs {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}

// Spec describes one provider endpoint and its sampling parameters.
// Temperature is not part of it: requests are always sent with temperature 0.
type Spec struct {
	ID        ID
	URL       string
	KeyEnv    string // environment variable holding the API key
	KeyURL    string // where users can obtain a key
	Model     string
	MaxTokens int
}

// Default returns the built-in spec for a provider
func Default(id ID) (Spec, error) {
	switch id {
	case OpenAI:
		return Spec{
			ID:        OpenAI,
			URL:       "https://api.openai.com/v1/chat/completions",
			KeyEnv:    "OPENAI_API_KEY",
			KeyURL:    "https://platform.openai.com/api-keys",
			Model:     "gpt-4o-mini",
			MaxTokens: 256,
		}, nil
	case Anthropic:
		return Spec{
			ID:        Anthropic,
			URL:       "https://api.anthropic.com/v1/messages",
			KeyEnv:    "ANTHROPIC_API_KEY",
			KeyURL:    "https://console.anthropic.com/settings/keys",
			Model:     "claude-3-5-haiku-20241022",
			MaxTokens: 256,
		}, nil
	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownProvider, string(id))
	}
}

// Request is a fully built HTTP POST
type Request struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// Result is the provider's answer: either generated text or an API error message
type Result struct {
	Text    string
	Failed  bool
	Message string
}

// Ok wraps generated text
func Ok(text string) Result {
	return Result{Text: text}
}

// Err wraps an API error message
func Err(message string) Result {
	return Result{Failed: true, Message: message}
}

// Adapter converts between the (intro, prompt) pair and a provider's wire format
type Adapter interface {
	// BuildPayload returns the POST request for intro and prompt
	BuildPayload(intro, prompt, apiKey string) (Request, error)

	// ParseResponse extracts the error message or generated text from a raw
	// response body. It returns an error when the body does not have the
	// provider's response shape.
	ParseResponse(raw []byte) (Result, error)
}

// New returns the adapter for spec.ID
func New(spec Spec) (Adapter, error) {
	switch spec.ID {
	case OpenAI:
		return &openAIAdapter{spec: spec}, nil
	case Anthropic:
		return &anthropicAdapter{spec: spec}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, string(spec.ID))
	}
}

// apiError is the error object both providers return
type apiError struct {
	Message *string `json:"message"`
}

func (e *apiError) result() (Result, bool) {
	if e == nil || e.Message == nil {
		return Result{}, false
	}
	return Err(*e.Message), true
}
