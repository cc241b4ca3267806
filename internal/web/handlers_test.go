package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testapp/internal/identity/mock"
	"testapp/internal/session"
)

type testApp struct {
	router  http.Handler
	session *session.Context
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	marker := mock.NewMarker(filepath.Join(t.TempDir(), "session.json"))
	store := mock.New(marker, logger)
	sc := session.New(store, logger, nil)
	sc.Bootstrap(context.Background())

	h := NewHandler(sc, logger, true)
	return &testApp{router: NewRouter(h), session: sc}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) signIn(t *testing.T) {
	t.Helper()
	rec := a.postForm("/login", url.Values{"email": {"admin@testapp.com"}, "password": {"password123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestMarketingPages(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Enterprise Authentication"},
		{"/", "Enterprise-Grade Features"},
		{"/about", "About testapp"},
		{"/pricing", "Simple, Transparent Pricing"},
		{"/pricing", "$49"},
		{"/contact", "Get in Touch"},
		{"/terms", "Terms of Service"},
		{"/privacy", "Privacy Policy"},
	}
	for _, tc := range tests {
		t.Run(tc.path+" contains "+tc.want, func(t *testing.T) {
			rec := app.get(tc.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestLoginFlow(t *testing.T) {
	t.Run("valid credentials redirect to the dashboard", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)

		rec := app.get("/dashboard")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Admin User")
		assert.Contains(t, rec.Body.String(), "Member since")
	})

	t.Run("rejected credentials re-render the form with the error and the email", func(t *testing.T) {
		app := newTestApp(t)
		rec := app.postForm("/login", url.Values{"email": {"nobody@testapp.com"}, "password": {"password123"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
		assert.Contains(t, rec.Body.String(), `value="nobody@testapp.com"`)
	})

	t.Run("demo credentials are listed on the sign-in page", func(t *testing.T) {
		app := newTestApp(t)
		rec := app.get("/login")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "admin@testapp.com")
	})

	t.Run("signed-in users are bounced from the sign-in page", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		rec := app.get("/login")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})
}

func TestSignupFlow(t *testing.T) {
	t.Run("valid submission creates the account and redirects", func(t *testing.T) {
		app := newTestApp(t)
		rec := app.postForm("/signup", url.Values{
			"name": {"Fresh Account"}, "email": {"fresh@x.com"}, "password": {"hunter2x"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

		dash := app.get("/dashboard")
		assert.Contains(t, dash.Body.String(), "Fresh Account")
	})

	t.Run("short password re-renders with the validation message", func(t *testing.T) {
		app := newTestApp(t)
		rec := app.postForm("/signup", url.Values{
			"name": {"Valid Name"}, "email": {"short@x.com"}, "password": {"abcde"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Password must be at least 6 characters")
		assert.Contains(t, rec.Body.String(), `value="short@x.com"`)
	})
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)

	rec := app.postForm("/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	dash := app.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, dash.Code)
	assert.Equal(t, "/", dash.Header().Get("Location"))
}

func TestContactForm(t *testing.T) {
	t.Run("missing fields are rejected", func(t *testing.T) {
		app := newTestApp(t)
		rec := app.postForm("/contact", url.Values{"name": {"Jo"}, "email": {"jo@x.com"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "All fields are required.")
	})

	t.Run("complete submission renders the confirmation", func(t *testing.T) {
		app := newTestApp(t)
		rec := app.postForm("/contact", url.Values{
			"name": {"Jo"}, "email": {"jo@x.com"}, "subject": {"Hello"}, "message": {"Just saying hi."},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thanks for reaching out!")
	})
}

func TestRevokeSessionInDemoMode(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)

	rec := app.postForm("/dashboard/sessions/s-1/revoke", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/dashboard?error=")
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	health := app.get("/healthz")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", health.Body.String())

	css := app.get("/static/app.css")
	assert.Equal(t, http.StatusOK, css.Code)
	assert.Equal(t, "text/css; charset=utf-8", css.Header().Get("Content-Type"))

	missing := app.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), "Page Not Found")
}
