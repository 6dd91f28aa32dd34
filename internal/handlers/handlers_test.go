package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"text/template"
	"time"

	"github.com/go-chi/chi/v5"

	"intervai/internal/middleware"
	"intervai/internal/models"
	"intervai/internal/store/sqlstore"
)

type mockProvider struct {
	generateContentFn func(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error)
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error) {
	if m.generateContentFn == nil {
		return &models.GenerationResponse{}, nil
	}
	return m.generateContentFn(ctx, req)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	getTemplatesFn func() map[string]map[string]*template.Template
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data interface{}) (string, error) {
	return "mock prompt", nil
}

func (m *mockPromptManager) SystemPrompt(string) string { return "" }

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	if m.getTemplatesFn == nil {
		return map[string]map[string]*template.Template{
			"feedback": {
				"default": template.Must(template.New("test").Parse("test")),
			},
		}
	}
	return m.getTemplatesFn()
}

type mockGenerator struct {
	generateFn func(ctx context.Context, requestID string, req *models.GenerateQuestionsRequest) ([]string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, requestID string, req *models.GenerateQuestionsRequest) ([]string, error) {
	return m.generateFn(ctx, requestID, req)
}

type mockPipeline struct {
	result models.FeedbackResult
	calls  []models.CreateFeedbackParams
}

func (m *mockPipeline) CreateFeedback(_ context.Context, params models.CreateFeedbackParams) models.FeedbackResult {
	m.calls = append(m.calls, params)
	return m.result
}

type mockNotifier struct {
	mu     sync.Mutex
	events []models.InterviewFinalizedEvent
}

func (m *mockNotifier) InterviewFinalized(_ context.Context, ev models.InterviewFinalizedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	s, err := sqlstore.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

// asUser stands in for RequireUser in handler tests.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), userID)))
		})
	}
}

func newUserRouter(userID string) chi.Router {
	r := chi.NewRouter()
	r.Use(asUser(userID))
	return r
}

func performRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func seedInterview(t *testing.T, s *sqlstore.Store, interview *models.Interview) string {
	t.Helper()
	id, err := s.CreateInterview(context.Background(), interview)
	if err != nil {
		t.Fatalf("failed to seed interview: %v", err)
	}
	return id
}
