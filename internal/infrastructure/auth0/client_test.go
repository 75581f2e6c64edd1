package auth0_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/campushub/user-gateway/internal/infrastructure/auth0"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type fakeTenant struct {
	mu            sync.Mutex
	tokenCalls    int
	roleCalls     int
	roleStatus    int
	createdEmails []string
	usersByEmail  map[string][]map[string]any
	listTotal     int
	listPages     map[string][]map[string]any
}

func (f *fakeTenant) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.tokenCalls++
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mgmt-token",
			"token_type":   "Bearer",
			"expires_in":   86400,
		})
	})

	mux.HandleFunc("POST /api/v2/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer mgmt-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		email, _ := body["email"].(string)

		f.mu.Lock()
		if email == "dup@example.com" {
			f.mu.Unlock()
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{
				"statusCode": 409,
				"error":      "Conflict",
				"message":    "The user already exists.",
			})
			return
		}
		f.createdEmails = append(f.createdEmails, email)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"user_id":      "auth0|abc123",
			"email":        email,
			"app_metadata": body["app_metadata"],
			"created_at":   "2026-01-01T00:00:00.000Z",
		})
	})

	mux.HandleFunc("POST /api/v2/users/{id}/roles", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.roleCalls++
		status := f.roleStatus
		f.mu.Unlock()
		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
	})

	mux.HandleFunc("GET /api/v2/users-by-email", func(w http.ResponseWriter, r *http.Request) {
		users := f.usersByEmail[r.URL.Query().Get("email")]
		if users == nil {
			users = []map[string]any{}
		}
		json.NewEncoder(w).Encode(users)
	})

	mux.HandleFunc("GET /api/v2/users", func(w http.ResponseWriter, r *http.Request) {
		users := f.listPages[r.URL.Query().Get("page")]
		if users == nil {
			users = []map[string]any{}
		}
		json.NewEncoder(w).Encode(map[string]any{"users": users, "total": f.listTotal})
	})

	mux.HandleFunc("DELETE /api/v2/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "auth0|gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func newManagement(t *testing.T, tenant *fakeTenant) *auth0.Management {
	t.Helper()

	server := httptest.NewServer(tenant.handler())
	t.Cleanup(server.Close)

	creds := auth0.Credentials{
		Domain:       server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		Audience:     server.URL + "/api/v2/",
	}
	roleIDs := map[domain.Role]string{
		domain.RoleStaff:   "rol_staff",
		domain.RoleTeacher: "rol_teacher",
		domain.RoleStudent: "rol_student",
	}
	return auth0.NewManagement(creds, roleIDs, zap.NewNop())
}

func TestManagementCreateUserAssignsRole(t *testing.T) {
	t.Parallel()

	tenant := &fakeTenant{}
	mgmt := newManagement(t, tenant)

	created, err := mgmt.CreateUser(context.Background(), domain.CreateUser{
		Email:    "alice@example.com",
		Password: "supersecret1",
		Role:     domain.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != "auth0|abc123" || created.Role != domain.RoleTeacher {
		t.Fatalf("unexpected user: %+v", created)
	}
	if tenant.roleCalls != 1 {
		t.Fatalf("expected 1 role assignment, got %d", tenant.roleCalls)
	}
}

func TestManagementCreateUserSwallowsRoleFailure(t *testing.T) {
	t.Parallel()

	tenant := &fakeTenant{roleStatus: http.StatusBadRequest}
	mgmt := newManagement(t, tenant)

	if _, err := mgmt.CreateUser(context.Background(), domain.CreateUser{
		Email:    "bob@example.com",
		Password: "supersecret1",
		Role:     domain.RoleStaff,
	}); err != nil {
		t.Fatalf("role assignment failure must not fail creation, got %v", err)
	}
}

func TestManagementCreateUserDuplicate(t *testing.T) {
	t.Parallel()

	mgmt := newManagement(t, &fakeTenant{})

	_, err := mgmt.CreateUser(context.Background(), domain.CreateUser{
		Email:    "dup@example.com",
		Password: "supersecret1",
		Role:     domain.RoleStudent,
	})

	var dirErr *domain.DirectoryError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectoryError, got %v", err)
	}
	if dirErr.StatusCode != 409 || dirErr.Message != "The user already exists." {
		t.Fatalf("unexpected error: %+v", dirErr)
	}
}

func TestManagementFindByEmail(t *testing.T) {
	t.Parallel()

	tenant := &fakeTenant{usersByEmail: map[string][]map[string]any{
		"carol@example.com": {{
			"user_id":      "auth0|carol",
			"email":        "carol@example.com",
			"app_metadata": map[string]string{"role": "staff"},
		}},
	}}
	mgmt := newManagement(t, tenant)

	user, err := mgmt.FindByEmail(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "auth0|carol" || user.Role != domain.RoleStaff {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := mgmt.FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestManagementFindByEmailDefaultsRole(t *testing.T) {
	t.Parallel()

	tenant := &fakeTenant{usersByEmail: map[string][]map[string]any{
		"norole@example.com": {{"user_id": "auth0|norole", "email": "norole@example.com"}},
	}}
	mgmt := newManagement(t, tenant)

	user, err := mgmt.FindByEmail(context.Background(), "norole@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("expected student fallback, got %q", user.Role)
	}
}

func TestManagementListUsers(t *testing.T) {
	t.Parallel()

	tenant := &fakeTenant{
		listTotal: 3,
		listPages: map[string][]map[string]any{
			"1": {{"user_id": "auth0|d", "email": "d@example.com"}},
		},
	}
	mgmt := newManagement(t, tenant)

	users, total, err := mgmt.ListUsers(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 3 || len(users) != 1 {
		t.Fatalf("unexpected listing: total=%d users=%d", total, len(users))
	}
}

func TestManagementDeleteUserNotFound(t *testing.T) {
	t.Parallel()

	mgmt := newManagement(t, &fakeTenant{})

	if err := mgmt.DeleteUser(context.Background(), "auth0|abc123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mgmt.DeleteUser(context.Background(), "auth0|gone"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestManagementCachesToken(t *testing.T) {
	t.Parallel()

	tenant := &fakeTenant{listTotal: 0}
	mgmt := newManagement(t, tenant)

	for i := 0; i < 3; i++ {
		if _, _, err := mgmt.ListUsers(context.Background(), 0, 50); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if tenant.tokenCalls != 1 {
		t.Fatalf("expected a single token exchange, got %d", tenant.tokenCalls)
	}
}
