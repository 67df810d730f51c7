package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Brianali-codes/Remaya-full/internal/audit"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/identity/local"
	"github.com/Brianali-codes/Remaya-full/internal/service"
	"github.com/Brianali-codes/Remaya-full/internal/store"
	"github.com/Brianali-codes/Remaya-full/internal/token"
)

const (
	testSecret     = "0123456789abcdef0123456789abcdef"
	testAdminEmail = "admin@remaya.org"
	testAdminPass  = "correct horse battery staple"
)

type testEnv struct {
	handler http.Handler
	store   *store.Memory
	auditor *audit.InMemoryAuditor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	auditor := audit.NewInMemoryAuditor()

	adminHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPass), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing admin password: %v", err)
	}

	minter := token.NewMinter([]byte(testSecret), time.Hour)
	verifier := token.NewVerifier([]byte(testSecret))
	provider := local.New(mem)

	sessions := service.NewSessionService(provider, mem, minter, service.AdminCredential{
		Email:        testAdminEmail,
		PasswordHash: adminHash,
	}, auditor, time.Second)
	blogs := service.NewBlogService(mem, time.Second)
	profiles := service.NewProfileService(mem, time.Second)

	srv := NewServer(sessions, blogs, profiles, verifier, nil, auditor, []string{"*"})
	return &testEnv{
		handler: srv.Routes(),
		store:   mem,
		auditor: auditor,
	}
}

func (e *testEnv) do(t *testing.T, method, path, authToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return out
}

// signupAndSignin registers a fresh account and returns its session
// token and account id.
func (e *testEnv) signupAndSignin(t *testing.T, email, password string) (string, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, SignupRoute, "", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, SigninRoute, "", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signin returned %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeInto[service.SessionResult](t, rec)
	if result.Token == "" {
		t.Fatal("signin returned empty token")
	}
	return result.Token, result.Account.ID
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, AdminSigninRoute, "", map[string]string{
		"email": testAdminEmail, "password": testAdminPass,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin signin returned %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeInto[service.SessionResult](t, rec)
	if !result.IsAdmin {
		t.Fatal("admin signin result not flagged as admin")
	}
	return result.Token
}

func TestSigninThenCreateAndReadBlog(t *testing.T) {
	env := newTestEnv(t)
	tok, accountID := env.signupAndSignin(t, "writer@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, BlogsRoute, tok, map[string]any{
		"title":   "First post",
		"content": "Hello from the new site.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeInto[core.BlogPost](t, rec)
	if created.AuthorID != accountID {
		t.Errorf("author id = %q, want %q", created.AuthorID, accountID)
	}
	if created.IsAdminPost {
		t.Error("user-created post flagged as admin post")
	}

	// single posts are readable without a session
	rec = env.do(t, http.MethodGet, BlogsRoute+"/"+created.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public get returned %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeInto[core.BlogPost](t, rec)
	if got.Title != "First post" {
		t.Errorf("title = %q, want %q", got.Title, "First post")
	}
}

func TestUnauthenticatedCreateIsRejectedWithoutSideEffects(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, BlogsRoute, "", map[string]any{
		"title":   "sneaky",
		"content": "no token",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create without token returned %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodGet, BlogsRoute, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}
	posts := decodeInto[[]core.BlogPost](t, rec)
	if len(posts) != 0 {
		t.Fatalf("rejected create left %d posts behind", len(posts))
	}
}

func TestTamperedTokenIsForbidden(t *testing.T) {
	env := newTestEnv(t)

	foreign := token.NewMinter([]byte("another-key-another-key-another!"), time.Hour)
	signed, _, err := foreign.Mint(&core.Principal{ID: "x", Email: "x@example.com", Role: core.RoleUser})
	if err != nil {
		t.Fatalf("minting foreign token: %v", err)
	}

	rec := env.do(t, http.MethodGet, MyBlogsRoute, signed, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign-key token returned %d, want 403", rec.Code)
	}
}

func TestAdminSigninWrongPasswordIsGeneric(t *testing.T) {
	env := newTestEnv(t)

	for _, creds := range []map[string]string{
		{"email": testAdminEmail, "password": "wrong"},
		{"email": "not-the-admin@example.com", "password": testAdminPass},
	} {
		rec := env.do(t, http.MethodPost, AdminSigninRoute, "", creds)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("admin signin with bad creds returned %d, want 401", rec.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding error response: %v", err)
		}
		if _, hasToken := resp["token"]; hasToken {
			t.Fatal("rejected admin signin leaked a token")
		}
	}
}

func TestUserCannotCreateAdminPost(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.signupAndSignin(t, "user@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, BlogsRoute, tok, map[string]any{
		"title":         "official news",
		"content":       "pretending",
		"is_admin_post": true,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user admin-post create returned %d, want 403", rec.Code)
	}
}

func TestAdminCanMutateAnyPost(t *testing.T) {
	env := newTestEnv(t)
	userTok, _ := env.signupAndSignin(t, "author@example.com", "hunter22")
	adminTok := env.adminToken(t)

	rec := env.do(t, http.MethodPost, BlogsRoute, userTok, map[string]any{
		"title": "mine", "content": "user content",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d", rec.Code)
	}
	post := decodeInto[core.BlogPost](t, rec)

	rec = env.do(t, http.MethodPut, BlogsRoute+"/"+post.ID, adminTok, map[string]any{
		"title": "moderated", "content": "edited by admin",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin update returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, BlogsRoute+"/"+post.ID, adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, BlogsRoute+"/"+post.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete returned %d, want 404", rec.Code)
	}
}

func TestUserCannotMutateForeignPost(t *testing.T) {
	env := newTestEnv(t)
	aTok, _ := env.signupAndSignin(t, "a@example.com", "hunter22")
	bTok, _ := env.signupAndSignin(t, "b@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, BlogsRoute, aTok, map[string]any{
		"title": "a's post", "content": "belongs to a",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d", rec.Code)
	}
	post := decodeInto[core.BlogPost](t, rec)

	rec = env.do(t, http.MethodPut, BlogsRoute+"/"+post.ID, bTok, map[string]any{
		"title": "stolen", "content": "b was here",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign update returned %d, want 403", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, BlogsRoute+"/"+post.ID, bTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign delete returned %d, want 403", rec.Code)
	}
}

func TestListByUserIsAuthenticatedButNotOwnerRestricted(t *testing.T) {
	env := newTestEnv(t)
	aTok, aID := env.signupAndSignin(t, "a@example.com", "hunter22")
	bTok, _ := env.signupAndSignin(t, "b@example.com", "hunter22")

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, BlogsRoute, aTok, map[string]any{
			"title": fmt.Sprintf("post %d", i), "content": "body",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create returned %d", rec.Code)
		}
	}

	path := BlogsRoute + "/user/" + aID
	rec := env.do(t, http.MethodGet, path, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous by-user listing returned %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodGet, path, bTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cross-user listing returned %d, want 200", rec.Code)
	}
	posts := decodeInto[[]core.BlogPost](t, rec)
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
}

func TestMyBlogsScoping(t *testing.T) {
	env := newTestEnv(t)
	userTok, userID := env.signupAndSignin(t, "user@example.com", "hunter22")
	adminTok := env.adminToken(t)

	rec := env.do(t, http.MethodPost, BlogsRoute, userTok, map[string]any{
		"title": "user post", "content": "body",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, BlogsRoute, adminTok, map[string]any{
		"title": "announcement", "content": "body", "is_admin_post": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, MyBlogsRoute, userTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("my blogs returned %d", rec.Code)
	}
	mine := decodeInto[[]core.BlogPost](t, rec)
	if len(mine) != 1 || mine[0].AuthorID != userID {
		t.Fatalf("user's listing = %+v, want exactly the user's post", mine)
	}

	// the admin view is the shared admin namespace
	rec = env.do(t, http.MethodGet, MyBlogsRoute, adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin my blogs returned %d", rec.Code)
	}
	adminPosts := decodeInto[[]core.BlogPost](t, rec)
	if len(adminPosts) != 1 || !adminPosts[0].IsAdminPost {
		t.Fatalf("admin listing = %+v, want exactly the admin post", adminPosts)
	}
}

func TestProfileUpsertFlow(t *testing.T) {
	env := newTestEnv(t)
	tok, accountID := env.signupAndSignin(t, "profile@example.com", "hunter22")

	// signup already created an empty profile
	rec := env.do(t, http.MethodGet, ProfileRoute, tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile get returned %d", rec.Code)
	}
	profile := decodeInto[core.Profile](t, rec)
	if profile.ID != accountID {
		t.Fatalf("profile id = %q, want %q", profile.ID, accountID)
	}

	rec = env.do(t, http.MethodPut, ProfileRoute, tok, map[string]string{
		"name": "Pat", "bio": "volunteer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("profile update returned %d: %s", rec.Code, rec.Body.String())
	}

	// same update again must stay idempotent
	rec = env.do(t, http.MethodPut, ProfileRoute, tok, map[string]string{
		"name": "Pat", "bio": "volunteer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("repeated profile update returned %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, ProfileRoute, tok, nil)
	profile = decodeInto[core.Profile](t, rec)
	if profile.Name != "Pat" || profile.Bio != "volunteer" {
		t.Fatalf("profile = %+v, want name/bio persisted", profile)
	}
}

func TestChangePasswordRotatesCredential(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.signupAndSignin(t, "rotate@example.com", "old-password")

	rec := env.do(t, http.MethodPut, PasswordRoute, tok, map[string]string{
		"currentPassword": "old-password",
		"newPassword":     "new-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("password change returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, SigninRoute, "", map[string]string{
		"email": "rotate@example.com", "password": "old-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("signin with old password returned %d, want 401", rec.Code)
	}
	rec = env.do(t, http.MethodPost, SigninRoute, "", map[string]string{
		"email": "rotate@example.com", "password": "new-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signin with new password returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuditEndpointIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	userTok, _ := env.signupAndSignin(t, "user@example.com", "hunter22")
	adminTok := env.adminToken(t)

	rec := env.do(t, http.MethodGet, AdminAuditRoute, userTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user audit access returned %d, want 403", rec.Code)
	}

	rec = env.do(t, http.MethodGet, AdminAuditRoute, adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin audit access returned %d: %s", rec.Code, rec.Body.String())
	}
	entries := decodeInto[[]core.AuditEntry](t, rec)
	if len(entries) == 0 {
		t.Fatal("audit log is empty after signins")
	}
}

func TestValidationFailuresReturn400(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.signupAndSignin(t, "user@example.com", "hunter22")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"content": "body"}},
		{"missing content", map[string]any{"title": "t"}},
		{"blank title", map[string]any{"title": "   ", "content": "body"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, BlogsRoute, tok, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("create returned %d, want 400", rec.Code)
			}
		})
	}
}

func TestAuditLimitValidation(t *testing.T) {
	env := newTestEnv(t)
	adminTok := env.adminToken(t)

	for _, limit := range []string{"-1", "0", "abc"} {
		t.Run("limit "+limit, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, AdminAuditRoute+"?limit="+limit, adminTok, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("limit=%s returned %d, want 400", limit, rec.Code)
			}
		})
	}

	rec := env.do(t, http.MethodGet, AdminAuditRoute+"?limit=10", adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("limit=10 returned %d, want 200", rec.Code)
	}
}

func TestNonBearerAuthorizationIsUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.signupAndSignin(t, "user@example.com", "hunter22")

	tests := []struct {
		name   string
		header string
	}{
		{"basic scheme", "Basic dXNlcjpwdw=="},
		{"no separating space", "Bearer" + tok},
		{"bare token", tok},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, MyBlogsRoute, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("header %q returned %d, want 401", tt.header, rec.Code)
			}
		})
	}

	// the well-formed header still works, case-insensitive scheme included
	req := httptest.NewRequest(http.MethodGet, MyBlogsRoute, nil)
	req.Header.Set("Authorization", "bearer "+tok)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("lowercase bearer scheme returned %d, want 200", rec.Code)
	}
}
