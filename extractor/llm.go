package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"seva/engine"
	"strings"

	"github.com/go-resty/resty/v2"
)

type llmExtractor struct {
	client *resty.Client
	url    string
	apiKey string
}

func newLLMExtractor(url, apiKey string) *llmExtractor {
	return &llmExtractor{
		client: resty.New(),
		url:    url,
		apiKey: apiKey,
	}
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Extract posts an extraction prompt to the configured model endpoint
// and parses the JSON it returns into a field record.
func (e *llmExtractor) Extract(ctx context.Context, fileText, docName string) (engine.FieldRecord, error) {
	if strings.TrimSpace(fileText) == "" {
		return engine.FieldRecord{}, ErrUnreadable
	}

	prompt := fmt.Sprintf(`You are a strict data extraction engine.
Extract the following fields from this %s text as a JSON object:
- full_name (string)
- dob (string, format YYYY-MM-DD)
- id_number (string, e.g. Aadhaar/PAN/enrollment number)
- income (number, for income certificates)
Omit any field not found. Return ONLY valid JSON.

Document Text:
%s`, docName, fileText)

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	var result generateResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("key", e.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(e.url)
	if err != nil {
		return engine.FieldRecord{}, fmt.Errorf("extractor request failed: %w", err)
	}
	if resp.IsError() {
		return engine.FieldRecord{}, fmt.Errorf("extractor returned status %d", resp.StatusCode())
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return engine.FieldRecord{}, fmt.Errorf("extractor returned no candidates")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	var record engine.FieldRecord
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &record); err != nil {
		return engine.FieldRecord{}, fmt.Errorf("extractor returned malformed JSON: %w", err)
	}
	return record, nil
}
