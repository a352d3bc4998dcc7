package provider

import (
	"encoding/json"
	"fmt"
)

const anthropicVersion = "2023-06-01"

type anthropicAdapter struct {
	spec Spec
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string  `json:"type"`
		Text *string `json:"text"`
	} `json:"content"`
	Error *apiError `json:"error"`
}

func (a *anthropicAdapter) BuildPayload(intro, prompt, apiKey string) (Request, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     a.spec.Model,
		MaxTokens: a.spec.MaxTokens,
		System:    intro,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return Request{}, fmt.Errorf("failed to marshal anthropic request: %w", err)
	}

	return Request{
		URL: a.spec.URL,
		Headers: map[string]string{
			"Content-Type":      "application/json",
			"x-api-key":         apiKey,
			"anthropic-version": anthropicVersion,
		},
		Body: body,
	}, nil
}

func (a *anthropicAdapter) ParseResponse(raw []byte) (Result, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Result{}, fmt.Errorf("failed to decode anthropic response: %w", err)
	}

	if res, ok := resp.Error.result(); ok {
		return res, nil
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return Result{}, fmt.Errorf("anthropic response has no content[0].text")
	}

	return Ok(*resp.Content[0].Text), nil
}
