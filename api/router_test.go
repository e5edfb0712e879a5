package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hireboard-backend/pkg/config"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/utils"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Environment:    "development",
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"*"},
	}
	cfg.Database.Driver = "memory"
	return NewRouter(cfg, database.NewMemoryStore())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *utils.APIError `json:"error"`
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func register(t *testing.T, handler http.Handler, email string) (userID, token string) {
	t.Helper()
	code, env := doJSON(t, handler, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "supersecret",
		"name":     "User " + email,
	})
	if code != http.StatusCreated {
		t.Fatalf("register %s: status %d, error %+v", email, code, env.Error)
	}
	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.User.ID, resp.AccessToken
}

func TestAuthEndpoints(t *testing.T) {
	handler := newTestRouter(t)

	_, token := register(t, handler, "user@mail.test")

	code, env := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "user@mail.test",
		"password": "supersecret",
	})
	if code != http.StatusOK {
		t.Fatalf("login: status %d, error %+v", code, env.Error)
	}

	code, env = doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "user@mail.test",
		"password": "wrong-password",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", code)
	}

	code, _ = doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", token, nil)
	if code != http.StatusOK {
		t.Fatalf("me: status %d, want 200", code)
	}
	code, _ = doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("me without token: status %d, want 401", code)
	}
}

func TestInviteFlowOverHTTP(t *testing.T) {
	handler := newTestRouter(t)

	_, ownerToken := register(t, handler, "owner@acme.test")

	code, env := doJSON(t, handler, http.MethodPost, "/api/v1/companies", ownerToken, map[string]string{
		"name": "Acme",
		"cnpj": "11.111.111/0001-11",
	})
	if code != http.StatusCreated {
		t.Fatalf("create company: status %d, error %+v", code, env.Error)
	}
	var company struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &company); err != nil {
		t.Fatalf("decode company: %v", err)
	}

	// An unknown role is rejected as validation, never a server error.
	code, env = doJSON(t, handler, http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/invites", company.ID), ownerToken, map[string]string{
			"email": "hire@acme.test",
			"role":  "owner",
		})
	if code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("invalid role: status %d, error %+v, want 400 VALIDATION_ERROR", code, env.Error)
	}

	code, env = doJSON(t, handler, http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/invites", company.ID), ownerToken, map[string]string{
			"email": "hire@acme.test",
		})
	if code != http.StatusCreated {
		t.Fatalf("issue invite: status %d, error %+v", code, env.Error)
	}
	var invite struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &invite); err != nil {
		t.Fatalf("decode invite: %v", err)
	}

	// Verify is public and must not echo the token back.
	code, env = doJSON(t, handler, http.MethodGet, "/api/v1/invites/verify?token="+invite.Token, "", nil)
	if code != http.StatusOK {
		t.Fatalf("verify invite: status %d, error %+v", code, env.Error)
	}
	var verification map[string]interface{}
	if err := json.Unmarshal(env.Data, &verification); err != nil {
		t.Fatalf("decode verification: %v", err)
	}
	if _, leaked := verification["token"]; leaked {
		t.Error("verify response leaks the invite token")
	}
	if verification["company_name"] != "Acme" {
		t.Errorf("company_name = %v, want Acme", verification["company_name"])
	}

	hireID, hireToken := register(t, handler, "hire@acme.test")
	code, env = doJSON(t, handler, http.MethodPost, "/api/v1/invites/accept", hireToken, map[string]string{
		"token": invite.Token,
	})
	if code != http.StatusOK {
		t.Fatalf("accept invite: status %d, error %+v", code, env.Error)
	}
	var joined struct {
		Recruiters []string `json:"recruiters"`
	}
	if err := json.Unmarshal(env.Data, &joined); err != nil {
		t.Fatalf("decode joined company: %v", err)
	}
	found := false
	for _, id := range joined.Recruiters {
		if id == hireID {
			found = true
		}
	}
	if !found {
		t.Error("redeemer missing from recruiters set")
	}

	// The token is spent now.
	code, env = doJSON(t, handler, http.MethodPost, "/api/v1/invites/accept", hireToken, map[string]string{
		"token": invite.Token,
	})
	if code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Fatalf("second accept: status %d, error %+v, want 400 CONFLICT", code, env.Error)
	}
}

func TestRecruiterWorkflowOverHTTP(t *testing.T) {
	handler := newTestRouter(t)

	_, ownerToken := register(t, handler, "owner@acme.test")
	code, env := doJSON(t, handler, http.MethodPost, "/api/v1/companies", ownerToken, map[string]string{
		"name": "Acme",
		"cnpj": "11.111.111/0001-11",
	})
	if code != http.StatusCreated {
		t.Fatalf("create company: status %d, error %+v", code, env.Error)
	}
	var company struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &company); err != nil {
		t.Fatalf("decode company: %v", err)
	}

	_, applicantToken := register(t, handler, "applicant@mail.test")
	code, env = doJSON(t, handler, http.MethodPost, "/api/v1/recruiters/apply", applicantToken, map[string]string{
		"company_id": company.ID,
	})
	if code != http.StatusCreated {
		t.Fatalf("apply: status %d, error %+v", code, env.Error)
	}
	var request struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &request); err != nil {
		t.Fatalf("decode request: %v", err)
	}

	// The applicant cannot decide their own request.
	code, _ = doJSON(t, handler, http.MethodPost,
		"/api/v1/recruiters/requests/"+request.ID+"/approve", applicantToken, nil)
	if code != http.StatusForbidden {
		t.Fatalf("self-approve: status %d, want 403", code)
	}

	code, env = doJSON(t, handler, http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/recruiters/pending", company.ID), ownerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("list pending: status %d, error %+v", code, env.Error)
	}

	code, env = doJSON(t, handler, http.MethodPost,
		"/api/v1/recruiters/requests/"+request.ID+"/approve", ownerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("approve: status %d, error %+v", code, env.Error)
	}

	code, env = doJSON(t, handler, http.MethodPost,
		"/api/v1/recruiters/requests/"+request.ID+"/reject", ownerToken, map[string]string{"reason": "late"})
	if code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Fatalf("reject after approve: status %d, error %+v, want 400 CONFLICT", code, env.Error)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestRouter(t)
	code, env := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	if code != http.StatusOK || !env.Success {
		t.Fatalf("health: status %d success %v", code, env.Success)
	}
}
