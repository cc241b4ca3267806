package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"testapp/internal/identity"
	"testapp/internal/identity/device"
	"testapp/pkg/autherrors"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Session.User()
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sessions, err := h.Session.Sessions(r.Context())
	if err != nil {
		h.Logger.WarnContext(r.Context(), "failed to load sessions for dashboard", "error", err)
	}
	activity, err := h.Session.RecentActivity(r.Context(), 10)
	if err != nil {
		h.Logger.WarnContext(r.Context(), "failed to load recent activity for dashboard", "error", err)
	}

	body := []gomponents.Node{
		html.H1(html.Class("page-title"), gomponents.Text("Welcome back, "+user.Name)),
	}
	if errMsg := strings.TrimSpace(r.URL.Query().Get("error")); errMsg != "" {
		body = append(body, html.P(html.Class("error"), gomponents.Text(errMsg)))
	}
	body = append(body,
		profileCard(user),
		accountTiles(user),
		activityCard(activity),
		sessionsCard(sessions),
	)

	renderHTML(w, http.StatusOK, appPage("Dashboard", "", &user, body...))
}

func (h *Handler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.Session.RevokeSession(r.Context(), sessionID); err != nil {
		h.Logger.WarnContext(r.Context(), "session revocation failed", "session_id", sessionID, "error", err)
		http.Redirect(w, r, "/dashboard?error="+url.QueryEscape(autherrors.DisplayMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func profileCard(user identity.Profile) gomponents.Node {
	var avatar gomponents.Node
	if user.AvatarURL != "" {
		avatar = html.Img(html.Src(user.AvatarURL), html.Alt(user.Name), html.Class("avatar"))
	} else {
		avatar = html.Div(html.Class("avatar avatar-initial"), gomponents.Text(initial(user.Name)))
	}
	return html.Div(
		html.Class("card profile"),
		avatar,
		html.Div(
			html.H2(gomponents.Text(user.Name)),
			html.P(html.Class("muted"), gomponents.Text(user.Email)),
		),
	)
}

func accountTiles(user identity.Profile) gomponents.Node {
	return html.Div(
		html.Class("tiles"),
		html.Div(
			html.Class("card tile"),
			html.Span(html.Class("muted"), gomponents.Text("Member since")),
			html.Strong(gomponents.Text(formatDate(user.CreatedAt))),
		),
		html.Div(
			html.Class("card tile"),
			html.Span(html.Class("muted"), gomponents.Text("Role")),
			html.Strong(gomponents.Text(string(user.Role))),
		),
		html.Div(
			html.Class("card tile"),
			html.Span(html.Class("muted"), gomponents.Text("Status")),
			html.Strong(html.Class("status-active"), gomponents.Text("Active")),
		),
	)
}

func activityCard(events []identity.AuditEvent) gomponents.Node {
	if len(events) == 0 {
		return html.Div(
			html.Class("card"),
			html.H2(gomponents.Text("Recent Activity")),
			html.P(html.Class("muted"), gomponents.Text("No recent activity to show.")),
		)
	}
	rows := make([]gomponents.Node, 0, len(events))
	for _, e := range events {
		rows = append(rows, html.Li(
			html.Strong(gomponents.Text(activityLabel(e.Action))),
			html.Span(html.Class("muted"), gomponents.Text(formatTime(e.CreatedAt))),
		))
	}
	return html.Div(
		html.Class("card"),
		html.H2(gomponents.Text("Recent Activity")),
		html.Ul(html.Class("activity"), gomponents.Group(rows)),
	)
}

func activityLabel(action identity.Action) string {
	switch action {
	case identity.ActionSignedIn:
		return "Signed in"
	case identity.ActionSignedUp:
		return "Account created"
	case identity.ActionSignedOut:
		return "Signed out"
	case identity.ActionProfileUpdated:
		return "Profile updated"
	case identity.ActionSessionRevoked:
		return "Session revoked"
	default:
		return string(action)
	}
}

func sessionsCard(sessions []identity.Session) gomponents.Node {
	if len(sessions) == 0 {
		return html.Div(
			html.Class("card"),
			html.H2(gomponents.Text("Active Sessions")),
			html.P(html.Class("muted"), gomponents.Text("No tracked sessions for this account.")),
		)
	}
	rows := make([]gomponents.Node, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, html.Tr(
			html.Td(gomponents.Text(device.ParseUserAgent(s.UserAgent))),
			html.Td(gomponents.Text(s.IPAddress)),
			html.Td(gomponents.Text(formatTime(s.LastActiveAt))),
			html.Td(
				html.Form(
					html.Method("post"),
					html.Action("/dashboard/sessions/"+s.ID+"/revoke"),
					html.Class("inline-form"),
					html.Button(html.Type("submit"), html.Class("btn btn-ghost danger"), gomponents.Text("Revoke")),
				),
			),
		))
	}
	return html.Div(
		html.Class("card table-wrap"),
		html.H2(gomponents.Text("Active Sessions")),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Device")),
				html.Th(gomponents.Text("IP Address")),
				html.Th(gomponents.Text("Last Active")),
				html.Th(gomponents.Text("")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}
