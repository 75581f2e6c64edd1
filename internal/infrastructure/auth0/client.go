package auth0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

// connection is the Auth0 database connection new users are created in.
const connection = "Username-Password-Authentication"

// Management talks to the Auth0 Management API v2 and implements the
// directory client port. Role assignment inside CreateUser and UpdateUser is
// best-effort: a failure is logged and swallowed so the user operation
// itself still succeeds.
type Management struct {
	base    string
	tokens  *tokenSource
	client  *http.Client
	roleIDs map[domain.Role]string
	log     *zap.Logger
}

func NewManagement(creds Credentials, roleIDs map[domain.Role]string, log *zap.Logger) *Management {
	client := &http.Client{Timeout: 30 * time.Second}
	return &Management{
		base:    creds.baseURL(),
		tokens:  &tokenSource{creds: creds, client: client},
		client:  client,
		roleIDs: roleIDs,
		log:     log,
	}
}

type auth0User struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	AppMetadata   struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

func (u auth0User) toDirectoryUser() domain.DirectoryUser {
	role, ok := domain.ParseRole(u.AppMetadata.Role)
	if !ok {
		role = domain.RoleStudent
	}
	return domain.DirectoryUser{
		ID:            u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		GivenName:     u.GivenName,
		FamilyName:    u.FamilyName,
		Role:          role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *Management) CreateUser(ctx context.Context, in domain.CreateUser) (domain.DirectoryUser, error) {
	name := in.Name
	if name == "" {
		name = strings.TrimSpace(in.GivenName + " " + in.FamilyName)
	}

	payload := map[string]any{
		"email":          in.Email,
		"password":       in.Password,
		"connection":     connection,
		"email_verified": false,
		"app_metadata":   map[string]string{"role": string(in.Role)},
	}
	if in.GivenName != "" {
		payload["given_name"] = in.GivenName
	}
	if in.FamilyName != "" {
		payload["family_name"] = in.FamilyName
	}
	if name != "" {
		payload["name"] = name
	}

	var created auth0User
	if err := m.do(ctx, http.MethodPost, "/api/v2/users", payload, &created); err != nil {
		return domain.DirectoryUser{}, err
	}

	m.assignRole(ctx, created.UserID, in.Role)
	m.log.Info("user created", zap.String("email", in.Email))

	user := created.toDirectoryUser()
	user.Role = in.Role
	return user, nil
}

func (m *Management) FindByEmail(ctx context.Context, email string) (domain.DirectoryUser, error) {
	var users []auth0User
	path := "/api/v2/users-by-email?email=" + url.QueryEscape(email)
	if err := m.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return domain.DirectoryUser{}, err
	}
	if len(users) == 0 {
		return domain.DirectoryUser{}, domain.ErrUserNotFound
	}
	return users[0].toDirectoryUser(), nil
}

func (m *Management) GetByID(ctx context.Context, id string) (domain.DirectoryUser, error) {
	var user auth0User
	if err := m.do(ctx, http.MethodGet, "/api/v2/users/"+url.PathEscape(id), nil, &user); err != nil {
		return domain.DirectoryUser{}, err
	}
	return user.toDirectoryUser(), nil
}

func (m *Management) ListUsers(ctx context.Context, page, perPage int) ([]domain.DirectoryUser, int, error) {
	var listing struct {
		Users []auth0User `json:"users"`
		Total int         `json:"total"`
	}

	path := fmt.Sprintf("/api/v2/users?include_totals=true&page=%d&per_page=%d", page, perPage)
	if err := m.do(ctx, http.MethodGet, path, nil, &listing); err != nil {
		return nil, 0, err
	}

	users := make([]domain.DirectoryUser, 0, len(listing.Users))
	for _, u := range listing.Users {
		users = append(users, u.toDirectoryUser())
	}
	return users, listing.Total, nil
}

func (m *Management) UpdateUser(ctx context.Context, id string, in domain.UpdateUser) (domain.DirectoryUser, error) {
	payload := map[string]any{}
	if in.GivenName != nil {
		payload["given_name"] = *in.GivenName
	}
	if in.FamilyName != nil {
		payload["family_name"] = *in.FamilyName
	}
	if in.Name != nil {
		payload["name"] = *in.Name
	}
	if in.Password != nil {
		payload["password"] = *in.Password
	}
	if in.Role != nil {
		payload["app_metadata"] = map[string]string{"role": string(*in.Role)}
	}

	var updated auth0User
	if err := m.do(ctx, http.MethodPatch, "/api/v2/users/"+url.PathEscape(id), payload, &updated); err != nil {
		return domain.DirectoryUser{}, err
	}

	if in.Role != nil {
		m.assignRole(ctx, id, *in.Role)
	}

	user := updated.toDirectoryUser()
	if in.Role != nil {
		user.Role = *in.Role
	}
	m.log.Info("user updated", zap.String("user_id", id))
	return user, nil
}

func (m *Management) DeleteUser(ctx context.Context, id string) error {
	if err := m.do(ctx, http.MethodDelete, "/api/v2/users/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	m.log.Info("user deleted", zap.String("user_id", id))
	return nil
}

// assignRole links the tenant role to the user. Failures here must not fail
// the enclosing operation: a user can exist without a role and be reconciled
// later.
func (m *Management) assignRole(ctx context.Context, userID string, role domain.Role) {
	roleID := m.roleIDs[role]
	if roleID == "" {
		m.log.Warn("role ID not configured", zap.String("role", string(role)))
		return
	}

	payload := map[string][]string{"roles": {roleID}}
	if err := m.do(ctx, http.MethodPost, "/api/v2/users/"+url.PathEscape(userID)+"/roles", payload, nil); err != nil {
		m.log.Error("failed to assign role",
			zap.String("user_id", userID),
			zap.String("role", string(role)),
			zap.Error(err))
		return
	}

	m.log.Debug("role assigned", zap.String("user_id", userID), zap.String("role", string(role)))
}

func (m *Management) do(ctx context.Context, method, path string, body, out any) error {
	token, err := m.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("management token: %w", err)
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.base+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("management request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return domain.ErrUserNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(res *http.Response) error {
	var body struct {
		StatusCode int    `json:"statusCode"`
		Err        string `json:"error"`
		Message    string `json:"message"`
	}
	_ = json.NewDecoder(res.Body).Decode(&body)

	message := body.Message
	if message == "" {
		message = body.Err
	}
	if message == "" {
		message = res.Status
	}
	return &domain.DirectoryError{StatusCode: res.StatusCode, Message: message}
}
