// Package web is the server-rendered surface: the public marketing pages, the
// auth forms, and the authenticated dashboard. Handlers delegate identity work
// to the session context and keep only form plumbing here.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"testapp/internal/session"
	"testapp/pkg/autherrors"
)

type Handler struct {
	Session *session.Context
	Logger  *slog.Logger

	// Demo marks the seeded in-memory backend so the sign-in page can list
	// the demo accounts.
	Demo bool
}

func NewHandler(sc *session.Context, logger *slog.Logger, demo bool) *Handler {
	return &Handler{Session: sc, Logger: logger, Demo: demo}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// errorStatus maps a handler error to the status the re-rendered form carries.
func errorStatus(err error) int {
	var e *autherrors.Error
	if errors.As(err, &e) {
		return autherrors.ToHTTPStatus(e.Code)
	}
	return http.StatusInternalServerError
}
