package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/model"
)

// memSession is an in-memory SessionStore for tests.
type memSession struct {
	token   string
	profile *model.User
	readErr error
	cleared bool
}

func (m *memSession) Token() (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	if m.token == "" {
		return "", errors.New("no active session")
	}
	return m.token, nil
}

func (m *memSession) Profile() (*model.User, error) {
	if m.profile == nil {
		return nil, errors.New("no active session")
	}
	return m.profile, nil
}

func (m *memSession) Set(token string, profile *model.User) error {
	m.token = token
	m.profile = profile
	m.cleared = false
	return nil
}

func (m *memSession) Clear() error {
	m.token = ""
	m.profile = nil
	m.cleared = true
	return nil
}

func testClient(serverURL string, sess *memSession) *Client {
	return NewClient(&config.APIConfig{
		BaseURL:         serverURL + "/api",
		Timeout:         5 * time.Second,
		UploadTimeout:   5 * time.Second,
		AnalysisTimeout: 5 * time.Second,
	}, sess)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	}))
	defer server.Close()

	sess := &memSession{token: "token-abc"}
	c := testClient(server.URL, sess)

	res := c.ListUsers(context.Background())
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if gotAuth != "Bearer token-abc" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("Expected X-Request-ID header")
	}
}

func TestClientUnreadableTokenGoesUnauthenticated(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	}))
	defer server.Close()

	sess := &memSession{readErr: errors.New("corrupt session file")}
	c := testClient(server.URL, sess)

	// The read failure is swallowed; the request proceeds without a token
	res := c.ListUsers(context.Background())
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if gotAuth != "" {
		t.Errorf("Expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient401ClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
	}))
	defer server.Close()

	sess := &memSession{token: "expired", profile: &model.User{ID: "u1"}}
	c := testClient(server.URL, sess)

	res := c.ListContracts(context.Background(), nil)
	if res.Success {
		t.Fatal("Expected failure")
	}
	if res.Message != "invalid credentials" {
		t.Errorf("Expected status-coded default message, got %q", res.Message)
	}
	if !sess.cleared {
		t.Error("Expected session to be cleared on 401")
	}
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        any
		wantMessage string
	}{
		{"server message wins", http.StatusBadRequest,
			map[string]any{"success": false, "message": "contract number already exists"},
			"contract number already exists"},
		{"400 default", http.StatusBadRequest, map[string]any{"success": false}, "invalid data"},
		{"404 default", http.StatusNotFound, map[string]any{"success": false}, "not found"},
		{"500 default", http.StatusInternalServerError, map[string]any{"success": false}, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer server.Close()

			c := testClient(server.URL, &memSession{})
			res := c.GetContract(context.Background(), "c1")
			if res.Success {
				t.Fatal("Expected failure")
			}
			if res.Message != tt.wantMessage {
				t.Errorf("Expected %q, got %q", tt.wantMessage, res.Message)
			}
			if res.Status != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, res.Status)
			}
		})
	}
}

func TestClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately: every request fails at the transport

	c := testClient(server.URL, &memSession{})
	res := c.ListUsers(context.Background())
	if res.Success {
		t.Fatal("Expected failure")
	}
	if res.Message != "could not connect to the server" {
		t.Errorf("Expected connection message, got %q", res.Message)
	}
	if res.Status != 0 {
		t.Errorf("Expected status 0 for no response, got %d", res.Status)
	}
}

func TestSignInPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signin" {
			t.Errorf("Expected /api/auth/signin, got %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@adcu.test" || body["password"] != "secret" {
			t.Errorf("Unexpected credentials: %v", body)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "token-xyz",
				"user":  map[string]any{"id": "u1", "email": "ana@adcu.test", "role": "admin"},
			},
		})
	}))
	defer server.Close()

	sess := &memSession{}
	c := testClient(server.URL, sess)

	res := c.SignIn(context.Background(), "ana@adcu.test", "secret")
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if sess.token != "token-xyz" {
		t.Errorf("Expected token persisted, got %q", sess.token)
	}
	if sess.profile == nil || sess.profile.Email != "ana@adcu.test" {
		t.Errorf("Expected profile persisted, got %+v", sess.profile)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid credentials"})
	}))
	defer server.Close()

	sess := &memSession{}
	c := testClient(server.URL, sess)

	res := c.SignIn(context.Background(), "ana@adcu.test", "wrong")
	if res.Success {
		t.Fatal("Expected failure")
	}
	if sess.token != "" {
		t.Error("Expected no session persisted")
	}
}

func TestLogoutClearsSessionEvenOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
	}))
	defer server.Close()

	sess := &memSession{token: "token-abc"}
	c := testClient(server.URL, sess)

	c.Logout(context.Background())
	if sess.token != "" {
		t.Error("Expected local session cleared regardless of server outcome")
	}
}

func TestVerifyLegacyDateEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// This endpoint answers with "date" instead of "data"
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"date":    map[string]any{"id": "u1", "name": "Ana"},
		})
	}))
	defer server.Close()

	c := testClient(server.URL, &memSession{token: "t"})
	res := c.Verify(context.Background())
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if res.Data.ID != "u1" || res.Data.Name != "Ana" {
		t.Errorf("Expected profile from legacy envelope, got %+v", res.Data)
	}
}

func TestRefreshReplacesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"token": "token-new"},
		})
	}))
	defer server.Close()

	sess := &memSession{token: "token-old", profile: &model.User{ID: "u1"}}
	c := testClient(server.URL, sess)

	res := c.Refresh(context.Background())
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if sess.token != "token-new" {
		t.Errorf("Expected refreshed token, got %q", sess.token)
	}
	if sess.profile == nil || sess.profile.ID != "u1" {
		t.Error("Expected profile kept across refresh")
	}
}

func TestListContractorsStateFilter(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "c1", "user": map[string]any{"id": "u1", "state": true}},
			},
		})
	}))
	defer server.Close()

	c := testClient(server.URL, &memSession{token: "t"})
	active := true
	res := c.ListContractors(context.Background(), &active)
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if gotQuery != "state=true" {
		t.Errorf("Expected state filter in query, got %q", gotQuery)
	}
	if len(res.Data) != 1 || !res.Data[0].User.State {
		t.Errorf("Unexpected contractors: %+v", res.Data)
	}
}

func TestRunAnalysisPropagatesCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Falta el archivo RUT",
			"code":    "missing_file",
		})
	}))
	defer server.Close()

	c := testClient(server.URL, &memSession{token: "t"})
	res := c.RunAnalysis(context.Background(), "dm-1")
	if res.Success {
		t.Fatal("Expected failure")
	}
	if res.Code != CodeMissingFile {
		t.Errorf("Expected structured code, got %q", res.Code)
	}
	if res.Status != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", res.Status)
	}
}
