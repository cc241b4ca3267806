package web

import "net/http"

// RequireUser gates authenticated routes on the session context. While
// bootstrap is still resolving it renders a neutral loading page instead of
// guessing; once resolved, unauthenticated requests land back on the home
// page.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Session.Bootstrapping() {
			renderHTML(w, http.StatusOK, loadingPage())
			return
		}
		if _, ok := h.Session.User(); !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
