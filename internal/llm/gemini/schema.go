package gemini

import (
	"google.golang.org/genai"

	"intervai/internal/models"
)

func toGenaiSchema(s *models.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		MinItems:    s.MinItems,
		MaxItems:    s.MaxItems,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case models.SchemaObject:
		return genai.TypeObject
	case models.SchemaArray:
		return genai.TypeArray
	case models.SchemaInteger:
		return genai.TypeInteger
	case models.SchemaNumber:
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}
