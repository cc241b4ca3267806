package hosted

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testapp/internal/identity"
	"testapp/pkg/autherrors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return New(Config{
		BaseURL:   baseURL,
		AnonKey:   "anon-key",
		TokenFile: filepath.Join(t.TempDir(), "token.json"),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func signedToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSignIn(t *testing.T) {
	profile := identity.Profile{ID: "u-1", Email: "admin@testapp.com", Name: "Admin User", Role: identity.RoleAdmin}

	t.Run("success returns the profile and persists the token", func(t *testing.T) {
		var sawAPIKey atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("apikey") == "anon-key" {
				sawAPIKey.Store(true)
			}
			switch r.URL.Path {
			case "/auth/v1/token":
				_ = json.NewEncoder(w).Encode(map[string]any{
					"access_token": signedToken(t, "u-1", time.Hour),
					"user":         map[string]string{"id": "u-1"},
				})
			case "/rest/v1/profiles":
				_ = json.NewEncoder(w).Encode(profile)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		got, err := client.SignIn(context.Background(), "admin@testapp.com", "secret99")
		require.NoError(t, err)
		assert.Equal(t, profile, got)
		assert.True(t, sawAPIKey.Load())

		session, err := client.CurrentSession(context.Background())
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "u-1", session.UserID)
	})

	t.Run("rejected credentials map to an unauthorized error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		_, err := client.SignIn(context.Background(), "admin@testapp.com", "wrong")
		require.Error(t, err)
		assert.True(t, autherrors.HasCode(err, autherrors.CodeUnauthorized))
		assert.Equal(t, "Invalid email or password", autherrors.DisplayMessage(err))
	})

	t.Run("unreachable backend maps to an unavailable error", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1")
		_, err := client.SignIn(context.Background(), "admin@testapp.com", "secret99")
		require.Error(t, err)
		assert.True(t, autherrors.HasCode(err, autherrors.CodeUnavailable))
	})
}

func TestSignUp(t *testing.T) {
	t.Run("duplicate email maps to a conflict error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		_, err := client.SignUp(context.Background(), "admin@testapp.com", "abcdef", "Admin")
		require.Error(t, err)
		assert.True(t, autherrors.HasCode(err, autherrors.CodeConflict))
	})

	t.Run("waits out the provisioning trigger before returning the profile", func(t *testing.T) {
		var profileCalls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/v1/signup":
				_ = json.NewEncoder(w).Encode(map[string]any{
					"access_token": signedToken(t, "u-9", time.Hour),
					"user":         map[string]string{"id": "u-9"},
				})
			case "/rest/v1/profiles":
				if profileCalls.Add(1) < 3 {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_ = json.NewEncoder(w).Encode(identity.Profile{ID: "u-9", Email: "jo@x.com", Name: "Jo", Role: identity.RoleUser})
			}
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		profile, err := client.SignUp(context.Background(), "jo@x.com", "abcdef", "Jo")
		require.NoError(t, err)
		assert.Equal(t, "u-9", profile.ID)
		assert.GreaterOrEqual(t, profileCalls.Load(), int32(3))
	})

	t.Run("gives up on provisioning after the backoff budget", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/v1/signup":
				_ = json.NewEncoder(w).Encode(map[string]any{
					"access_token": signedToken(t, "u-9", time.Hour),
					"user":         map[string]string{"id": "u-9"},
				})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		client.pollDelay = time.Millisecond
		_, err := client.SignUp(context.Background(), "jo@x.com", "abcdef", "Jo")
		require.Error(t, err)
		assert.True(t, autherrors.HasCode(err, autherrors.CodeUnavailable))
		assert.Contains(t, autherrors.DisplayMessage(err), "still being provisioned")
	})
}

func TestSignOut(t *testing.T) {
	t.Run("clears local session state even when the backend errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/v1/token":
				_ = json.NewEncoder(w).Encode(map[string]any{
					"access_token": signedToken(t, "u-1", time.Hour),
					"user":         map[string]string{"id": "u-1"},
				})
			case "/rest/v1/profiles":
				_ = json.NewEncoder(w).Encode(identity.Profile{ID: "u-1", Email: "a@b.c", Name: "A", Role: identity.RoleUser})
			case "/auth/v1/logout":
				w.WriteHeader(http.StatusInternalServerError)
			}
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		_, err := client.SignIn(context.Background(), "a@b.c", "secret99")
		require.NoError(t, err)

		err = client.SignOut(context.Background())
		require.Error(t, err)

		session, err := client.CurrentSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("signing out with no session is a no-op", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1")
		require.NoError(t, client.SignOut(context.Background()))
	})
}

func TestCurrentSession(t *testing.T) {
	t.Run("expired persisted token reads as no session", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1")
		client.setToken(signedToken(t, "u-1", -time.Minute), "u-1")

		session, err := client.CurrentSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("garbage persisted token reads as no session", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1")
		client.setToken("not-a-jwt", "u-1")

		session, err := client.CurrentSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestListSessions(t *testing.T) {
	t.Run("requests newest-active-first ordering", func(t *testing.T) {
		var order string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = r.URL.Query().Get("order")
			_ = json.NewEncoder(w).Encode([]identity.Session{
				{ID: "s-2", UserID: "u-1"},
				{ID: "s-1", UserID: "u-1"},
			})
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		sessions, err := client.ListSessions(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, "last_active_at.desc", order)
		require.Len(t, sessions, 2)
		assert.Equal(t, "s-2", sessions[0].ID)
	})
}

func TestListAuditEvents(t *testing.T) {
	t.Run("requests newest-first ordering with a limit", func(t *testing.T) {
		var query string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			_ = json.NewEncoder(w).Encode([]identity.AuditEvent{
				{ID: "a-2", UserID: "u-1", Action: identity.ActionSignedIn},
				{ID: "a-1", UserID: "u-1", Action: identity.ActionSignedUp},
			})
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		events, err := client.ListAuditEvents(context.Background(), "u-1", 5)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Contains(t, query, "order=created_at.desc")
		assert.Contains(t, query, "limit=5")
	})
}

func TestRevokeSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ok, err := client.RevokeSession(context.Background(), "s-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
