package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"intervai/internal/models"
	"intervai/internal/utils"
)

// GenerateObject runs a schema-constrained request and decodes the reply into out.
// Malformed output is reported as an error; callers decide whether to fall back.
func GenerateObject(ctx context.Context, provider Provider, req *models.GenerationRequest, out any) error {
	if req.ResponseSchema == nil {
		return fmt.Errorf("generate object: response schema is required")
	}
	resp, err := provider.GenerateContent(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(utils.StripFences(resp.Content)), out); err != nil {
		return fmt.Errorf("generate object: parse %s output: %w", provider.GetProviderName(), err)
	}
	return nil
}
