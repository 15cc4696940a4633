package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daydesk/daydesk/internal/auth"
	"github.com/daydesk/daydesk/internal/state"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (http.Handler, *state.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := state.NewStore(state.StoreConfig{
		IDProvider: state.NewUUIDProvider(),
		Logger:     zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}

	issuer := auth.NewSessionIssuer(auth.SessionIssuerConfig{
		SigningSecret: []byte("router-test-secret"),
		Issuer:        "daydesk-auth",
		Audience:      "daydesk-api",
		SessionTTL:    time.Hour,
	})

	handler, err := NewHTTPHandler(Dependencies{
		Store:    store,
		Sessions: issuer,
		Logger:   zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("failed to build handler: %v", err)
	}
	return handler, store
}

func performRequest(handler http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func signInForTest(t *testing.T, handler http.Handler) string {
	t.Helper()
	recorder := performRequest(handler, http.MethodPost, "/auth/session", "", `{"email":"casey@example.com","name":"Casey"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("sign-in failed with status %d: %s", recorder.Code, recorder.Body.String())
	}
	var payload signInResponsePayload
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode sign-in response: %v", err)
	}
	if payload.AccessToken == "" {
		t.Fatalf("expected access token in sign-in response")
	}
	return payload.AccessToken
}

func TestSignInIssuesTokenAndReturnsUser(t *testing.T) {
	handler, store := newTestHandler(t)

	recorder := performRequest(handler, http.MethodPost, "/auth/session", "", `{"email":"casey@example.com","name":"Casey","avatar":"https://example.com/a.png"}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, want %d", recorder.Code, http.StatusOK)
	}
	var payload signInResponsePayload
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.TokenType != "Bearer" {
		t.Fatalf("unexpected token type: %q", payload.TokenType)
	}
	if payload.ExpiresIn <= 0 {
		t.Fatalf("expected positive expiry, got %d", payload.ExpiresIn)
	}
	if payload.User == nil || payload.User.Email != "casey@example.com" {
		t.Fatalf("unexpected user payload: %+v", payload.User)
	}
	snapshot := store.Snapshot()
	if snapshot.User == nil || snapshot.User.ID != payload.User.ID {
		t.Fatalf("expected store user to match response user")
	}
}

func TestSignInRejectsMissingEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	recorder := performRequest(handler, http.MethodPost, "/auth/session", "", `{"name":"Casey"}`)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d, want %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	recorder := performRequest(handler, http.MethodGet, "/state", "", "")

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestTodoLifecycleOverHTTP(t *testing.T) {
	handler, _ := newTestHandler(t)
	token := signInForTest(t, handler)

	recorder := performRequest(handler, http.MethodPost, "/todos", token, `{"text":"file taxes","priority":"high","color":"#ff0000"}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("add todo failed with status %d: %s", recorder.Code, recorder.Body.String())
	}

	snapshot := fetchState(t, handler, token)
	if len(snapshot.Todos) != 1 {
		t.Fatalf("expected one todo, got %d", len(snapshot.Todos))
	}
	todo := snapshot.Todos[0]
	if todo.Text != "file taxes" || todo.Priority != state.PriorityHigh || todo.Completed {
		t.Fatalf("unexpected todo: %+v", todo)
	}

	recorder = performRequest(handler, http.MethodPatch, "/todos/"+todo.ID, token, `{"completed":true}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("update todo failed with status %d", recorder.Code)
	}
	snapshot = fetchState(t, handler, token)
	if !snapshot.Todos[0].Completed {
		t.Fatalf("expected todo to be completed")
	}

	recorder = performRequest(handler, http.MethodDelete, "/todos/"+todo.ID, token, "")
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("delete todo failed with status %d", recorder.Code)
	}
	snapshot = fetchState(t, handler, token)
	if len(snapshot.Todos) != 0 {
		t.Fatalf("expected todos to be empty, got %d", len(snapshot.Todos))
	}
}

func TestInvalidDomainInputAnswersNoContent(t *testing.T) {
	handler, _ := newTestHandler(t)
	token := signInForTest(t, handler)

	recorder := performRequest(handler, http.MethodPost, "/todos", token, `{"text":"   "}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d, want %d", recorder.Code, http.StatusNoContent)
	}
	snapshot := fetchState(t, handler, token)
	if len(snapshot.Todos) != 0 {
		t.Fatalf("expected blank todo to be dropped, got %d todos", len(snapshot.Todos))
	}

	recorder = performRequest(handler, http.MethodPatch, "/todos/missing-id", token, `{"completed":true}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("unexpected status for unknown id: got %d, want %d", recorder.Code, http.StatusNoContent)
	}
}

func TestMalformedJSONAnswersBadRequest(t *testing.T) {
	handler, _ := newTestHandler(t)
	token := signInForTest(t, handler)

	recorder := performRequest(handler, http.MethodPost, "/todos", token, `{"text":`)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	expected := `{"error":"invalid_request"}`
	if recorder.Body.String() != expected {
		t.Fatalf("unexpected response body: %s", recorder.Body.String())
	}
}

func TestSignOutClearsSessionUser(t *testing.T) {
	handler, store := newTestHandler(t)
	token := signInForTest(t, handler)

	recorder := performRequest(handler, http.MethodDelete, "/auth/session", token, "")

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d, want %d", recorder.Code, http.StatusNoContent)
	}
	if store.Snapshot().User != nil {
		t.Fatalf("expected user to be cleared after sign-out")
	}
}

func TestViewAndSidebarEndpoints(t *testing.T) {
	handler, store := newTestHandler(t)
	token := signInForTest(t, handler)

	recorder := performRequest(handler, http.MethodPut, "/view", token, `{"view":"notes"}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("set view failed with status %d", recorder.Code)
	}
	recorder = performRequest(handler, http.MethodPut, "/sidebar", token, `{"open":true}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("set sidebar failed with status %d", recorder.Code)
	}

	snapshot := store.Snapshot()
	if snapshot.CurrentView != "notes" {
		t.Fatalf("unexpected current view: %q", snapshot.CurrentView)
	}
	if !snapshot.SidebarOpen {
		t.Fatalf("expected sidebar to be open")
	}
}

func TestHabitToggleOverHTTP(t *testing.T) {
	handler, _ := newTestHandler(t)
	token := signInForTest(t, handler)

	recorder := performRequest(handler, http.MethodPost, "/habits", token, `{"name":"stretch"}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("add habit failed with status %d", recorder.Code)
	}
	snapshot := fetchState(t, handler, token)
	if len(snapshot.Habits) != 1 {
		t.Fatalf("expected one habit, got %d", len(snapshot.Habits))
	}
	habitID := snapshot.Habits[0].ID
	today := time.Now().UTC().Format("2006-01-02")

	recorder = performRequest(handler, http.MethodPost, "/habits/"+habitID+"/toggle", token, `{"date":"`+today+`"}`)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("toggle habit failed with status %d", recorder.Code)
	}
	snapshot = fetchState(t, handler, token)
	habit := snapshot.Habits[0]
	if len(habit.CompletedDates) != 1 || habit.CompletedDates[0] != today {
		t.Fatalf("unexpected completed dates: %v", habit.CompletedDates)
	}
	if habit.Streak != 1 {
		t.Fatalf("unexpected streak: %d", habit.Streak)
	}
}

func fetchState(t *testing.T, handler http.Handler, token string) state.State {
	t.Helper()
	recorder := performRequest(handler, http.MethodGet, "/state", token, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("state fetch failed with status %d", recorder.Code)
	}
	var snapshot state.State
	if err := json.Unmarshal(recorder.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	return snapshot
}
