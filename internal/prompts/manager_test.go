package prompts

import (
	"strings"
	"testing"
)

func TestPromptManagerBuildPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	data := map[string]interface{}{
		"Role":      "Backend Engineer",
		"Level":     "Senior",
		"Techstack": "go,postgres",
		"Type":      "Technical",
		"Amount":    5,
	}
	prompt, err := pm.BuildPrompt("questions", "Technical", data)
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}

	if !containsAll(prompt, []string{"Backend Engineer", "Senior", "go,postgres", "Number of Questions: 5", "ONLY technical"}) {
		t.Fatalf("prompt did not contain expected values: %s", prompt)
	}

	if _, err := pm.BuildPrompt("unknown", "default", data); err == nil {
		t.Fatalf("expected error for unknown mode")
	}

	if _, err := pm.BuildPrompt("questions", "missing", data); err == nil {
		t.Fatalf("expected error for missing variant")
	}

	if _, err := pm.BuildPrompt("questions", "Mixed", map[string]interface{}{"Role": "x"}); err == nil {
		t.Fatalf("expected error for missing template data")
	}

	if len(pm.GetTemplates()) == 0 {
		t.Fatalf("expected templates to be loaded")
	}
}

func TestFeedbackPromptListsCategories(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	prompt, err := pm.BuildPrompt("feedback", "default", map[string]interface{}{
		"Transcript": "- user: hello\n",
		"Categories": []string{"Technical Knowledge", "Problem Solving"},
	})
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}
	if !containsAll(prompt, []string{"- user: hello", "- Technical Knowledge\n- Problem Solving"}) {
		t.Fatalf("feedback prompt missing transcript or categories: %s", prompt)
	}
	if pm.SystemPrompt("feedback") == "" {
		t.Fatal("expected feedback system prompt")
	}
	if pm.SystemPrompt("questions") != "" {
		t.Fatal("expected no system prompt for questions")
	}
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
