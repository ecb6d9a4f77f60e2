package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the Gemini generateContent API.
type Client struct {
	APIKey     string
	Model      string
	MaxTokens  int
	HTTPClient *http.Client
}

// NewClient creates a Client using the GEMINI_API_KEY env var.
func NewClient(model string, maxTokens int) (*Client, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return &Client{
		APIKey:     key,
		Model:      model,
		MaxTokens:  maxTokens,
		HTTPClient: &http.Client{},
	}, nil
}

type apiRequest struct {
	SystemInstruction *apiContent  `json:"system_instruction,omitempty"`
	Contents          []apiContent `json:"contents"`
	GenerationConfig  apiGenConfig `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type apiGenConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type apiResponse struct {
	Candidates []apiCandidate `json:"candidates"`
	Usage      apiUsage       `json:"usageMetadata"`
	Error      *apiError      `json:"error,omitempty"`
}

type apiCandidate struct {
	Content apiContent `json:"content"`
}

type apiUsage struct {
	InputTokens  int `json:"promptTokenCount"`
	OutputTokens int `json:"candidatesTokenCount"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Usage reports token consumption for one generation call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Generate sends a system prompt and user prompt to Gemini and returns the
// raw text response.
func (c *Client) Generate(ctx context.Context, systemPrompt, prompt string) (string, Usage, error) {
	reqBody := apiRequest{
		Contents: []apiContent{
			{Role: "user", Parts: []apiPart{{Text: prompt}}},
		},
		GenerationConfig: apiGenConfig{MaxOutputTokens: c.MaxTokens},
	}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &apiContent{Parts: []apiPart{{Text: systemPrompt}}}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", Usage{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, c.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", Usage{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", Usage{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Usage{}, fmt.Errorf("reading response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", Usage{}, fmt.Errorf("parsing response: %w", err)
	}

	if apiResp.Error != nil {
		return "", Usage{}, fmt.Errorf("API error (%s): %s", apiResp.Error.Status, apiResp.Error.Message)
	}

	if resp.StatusCode != 200 {
		return "", Usage{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", Usage{}, fmt.Errorf("empty response from API")
	}

	usage := Usage{
		InputTokens:  apiResp.Usage.InputTokens,
		OutputTokens: apiResp.Usage.OutputTokens,
	}
	return apiResp.Candidates[0].Content.Parts[0].Text, usage, nil
}
