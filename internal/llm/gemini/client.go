package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"intervai/internal/llm"
	"intervai/internal/models"
)

// Client represents a Gemini LLM client
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// GenerateContent sends one prompt. A response schema switches the model to JSON output.
func (c *Client) GenerateContent(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error) {
	startTime := time.Now()

	var genConfig *genai.GenerateContentConfig
	if req.SystemInstruction != "" || req.ResponseSchema != nil {
		genConfig = &genai.GenerateContentConfig{}
		if req.SystemInstruction != "" {
			genConfig.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
		}
		if req.ResponseSchema != nil {
			genConfig.ResponseMIMEType = "application/json"
			genConfig.ResponseSchema = toGenaiSchema(req.ResponseSchema)
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, classifyError(ctx, err)
	}

	if result == nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	content := strings.TrimSpace(result.Text())
	if content == "" {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResponse{
		Content:   content,
		RequestID: req.RequestID,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       "gemini",
			Model:          c.config.Model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}

func classifyError(ctx context.Context, err error) error {
	code := llm.ErrCodeServiceDown
	message := "Failed to generate content"
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		code = llm.ErrCodeTimeout
		message = "Generation timed out"
	case isRateLimitError(err):
		code = llm.ErrCodeRateLimit
		message = "Rate limit exceeded"
	}
	return &llm.ProviderError{
		Provider: "gemini",
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
