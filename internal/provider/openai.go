package provider

import (
	"encoding/json"
	"fmt"
)

type openAIAdapter struct {
	spec Spec
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// field order matches the documented wire shape
type openAIRequest struct {
	Messages    []openAIMessage `json:"messages"`
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

func (a *openAIAdapter) BuildPayload(intro, prompt, apiKey string) (Request, error) {
	body, err := json.Marshal(openAIRequest{
		Messages: []openAIMessage{
			{Role: "system", Content: intro},
			{Role: "user", Content: prompt},
		},
		Model:     a.spec.Model,
		MaxTokens: a.spec.MaxTokens,
	})
	if err != nil {
		return Request{}, fmt.Errorf("failed to marshal openai request: %w", err)
	}

	return Request{
		URL: a.spec.URL,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + apiKey,
		},
		Body: body,
	}, nil
}

func (a *openAIAdapter) ParseResponse(raw []byte) (Result, error) {
	var resp openAIResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Result{}, fmt.Errorf("failed to decode openai response: %w", err)
	}

	if res, ok := resp.Error.result(); ok {
		return res, nil
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return Result{}, fmt.Errorf("openai response has no choices[0].message.content")
	}

	return Ok(*resp.Choices[0].Message.Content), nil
}
