package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// GenerateQuestionsRequest is the body of POST /api/vapi/generate.
type GenerateQuestionsRequest struct {
	Type      string `json:"type"`
	Role      string `json:"role"`
	Level     string `json:"level"`
	Techstack string `json:"techstack"` // comma-joined
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
}

// UnmarshalJSON accepts amount as a JSON number or a numeric string, since the voice assistant
// forwards tool arguments as strings. An unparseable amount decodes as 0 and fails validation.
func (r *GenerateQuestionsRequest) UnmarshalJSON(data []byte) error {
	type plain GenerateQuestionsRequest
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Amount = parseAmount(aux.Amount)
	return nil
}

func parseAmount(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// implements the Validator interface
func (r *GenerateQuestionsRequest) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return &ErrorResponse{Code: "missing_role", Message: "role is required"}
	}
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user", Message: "userid is required"}
	}
	if r.Amount <= 0 || r.Amount > 50 {
		return &ErrorResponse{Code: "invalid_amount", Message: "amount must be between 1 and 50"}
	}
	if strings.TrimSpace(r.Type) == "" {
		r.Type = InterviewTypeMixed
	}
	canonical, ok := CanonicalInterviewType(r.Type)
	if !ok {
		return &ErrorResponse{
			Code:    "invalid_type",
			Message: "type must be one of: " + strings.Join(ValidInterviewTypesList(), ", "),
		}
	}
	r.Type = canonical
	return nil
}

// CreateInterviewRequest creates an interview record for the authenticated user.
type CreateInterviewRequest struct {
	Role      string   `json:"role"`
	Type      string   `json:"type"`
	Techstack []string `json:"techstack"`
	Questions []string `json:"questions"`
	Level     string   `json:"level"`
	Finalized *bool    `json:"finalized"`
}

func (r *CreateInterviewRequest) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return &ErrorResponse{Code: "missing_role", Message: "role is required"}
	}
	if strings.TrimSpace(r.Type) == "" {
		return &ErrorResponse{Code: "missing_type", Message: "type is required"}
	}
	return nil
}

// StartSessionRequest starts a live voice session.
type StartSessionRequest struct {
	Mode        string   `json:"mode"`
	UserName    string   `json:"userName"`
	InterviewID string   `json:"interviewId"`
	FeedbackID  string   `json:"feedbackId"`
	Role        string   `json:"role"`
	Type        string   `json:"type"`
	Techstack   []string `json:"techstack"`
	Questions   []string `json:"questions"`
}

func (r *StartSessionRequest) Validate() error {
	if r.Mode == "" {
		r.Mode = SessionModeInterview
	}
	if r.Mode != SessionModeInterview && r.Mode != SessionModeGenerate {
		return &ErrorResponse{Code: "invalid_mode", Message: "mode must be interview or generate"}
	}
	if r.Type != "" {
		canonical, ok := CanonicalInterviewType(r.Type)
		if !ok {
			return &ErrorResponse{
				Code:    "invalid_type",
				Message: "type must be one of: " + strings.Join(ValidInterviewTypesList(), ", "),
			}
		}
		r.Type = canonical
	}
	return nil
}

// CreateFeedbackRequest runs the feedback pipeline for an interview transcript.
type CreateFeedbackRequest struct {
	Transcript []TranscriptMessage `json:"transcript"`
	FeedbackID string              `json:"feedbackId"`
}

func (r *CreateFeedbackRequest) Validate() error {
	for i, m := range r.Transcript {
		if m.Role != RoleUser && m.Role != RoleAssistant && m.Role != RoleSystem {
			return &ErrorResponse{
				Code:    "invalid_transcript",
				Message: "transcript contains an unknown speaker role",
				Details: []ValidationErrorDetail{{Field: transcriptField(i), Reason: "role must be user, assistant or system"}},
			}
		}
	}
	return nil
}

func transcriptField(i int) string {
	return "transcript[" + strconv.Itoa(i) + "].role"
}
