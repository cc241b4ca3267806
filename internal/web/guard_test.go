package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"testapp/internal/identity/mock"
	"testapp/internal/session"
	"testapp/pkg/testutil"
)

func newGuarded(t *testing.T, bootstrap bool) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	marker := mock.NewMarker(filepath.Join(t.TempDir(), "session.json"))
	sc := session.New(mock.New(marker, logger), logger, nil)
	if bootstrap {
		sc.Bootstrap(context.Background())
	}
	h := NewHandler(sc, logger, true)
	return h.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireUser(t *testing.T) {
	testutil.Given(t, "a session context that has not finished bootstrapping", func(t *testing.T) {
		guarded := newGuarded(t, false)

		testutil.When(t, "a guarded route is requested", func(t *testing.T) {
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			testutil.Then(t, "a neutral loading page is rendered", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), "Loading your session")
			})
		})
	})

	testutil.Given(t, "a bootstrapped context with no signed-in user", func(t *testing.T) {
		guarded := newGuarded(t, true)

		testutil.When(t, "a guarded route is requested", func(t *testing.T) {
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			testutil.Then(t, "the request is redirected home", func(t *testing.T) {
				assert.Equal(t, http.StatusSeeOther, rec.Code)
				assert.Equal(t, "/", rec.Header().Get("Location"))
			})
		})
	})
}
