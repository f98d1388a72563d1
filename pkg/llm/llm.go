package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"text_trans_api/config"
	"text_trans_api/pkg/httpclient"
)

// Client for an OpenAI-compatible chat completion endpoint. Translation
// and language detection are both single-turn completions with a fixed
// system prompt.

const translateSystemPrompt = "You are a professional translator. Translate the user's text from %s to %s. " +
	"Translate literally, preserve line breaks, numbers, punctuation and any placeholder tokens exactly. " +
	"Return only the translated text with no explanation."

const detectSystemPrompt = "Identify the language of the user's text. " +
	"Respond with only the ISO 639-1 two-letter language code, nothing else."

const detectSampleLimit = 50

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func chatCompletion(ctx context.Context, system string, user string) (string, error) {
	payload := chatRequest{
		Model: config.Cfg.OpenAI.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(config.Cfg.OpenAI.BaseUrl, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+config.Cfg.OpenAI.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed: %s, %s", resp.Status, string(bodyBytes))
	}

	var completion chatResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return "", err
	}

	if completion.Error != nil {
		return "", errors.New(completion.Error.Message)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Translate returns the literal translation of text. Language arguments
// are display names or ISO codes; the prompt passes them through as-is.
func Translate(ctx context.Context, from string, to string, text string) (string, error) {
	system := fmt.Sprintf(translateSystemPrompt, from, to)
	translated, err := chatCompletion(ctx, system, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(translated), nil
}

// Three patterns tried in sequence against the completion output: a
// bare code, a quoted or labeled code, then any two-letter token.
var detectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*([a-z]{2})\s*$`),
	regexp.MustCompile("[`\"':]\\s*([a-z]{2})\\b"),
	regexp.MustCompile(`\b([a-z]{2})\b`),
}

// ParseLanguageCode extracts an ISO 639-1 code from raw model output.
// The second return reports whether any pattern matched; callers fall
// back to "en" when it did not.
func ParseLanguageCode(output string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(output))
	for _, pattern := range detectPatterns {
		match := pattern.FindStringSubmatch(normalized)
		if match != nil {
			return match[1], true
		}
	}
	return "en", false
}

// Detect asks the model for the language of a sample. The sample is
// truncated to 50 characters; detection does not need more and short
// prompts keep the call cheap.
func Detect(ctx context.Context, text string) (string, error) {
	sample := []rune(text)
	if len(sample) > detectSampleLimit {
		sample = sample[:detectSampleLimit]
	}

	output, err := chatCompletion(ctx, detectSystemPrompt, string(sample))
	if err != nil {
		return "", err
	}

	code, _ := ParseLanguageCode(output)
	return code, nil
}
