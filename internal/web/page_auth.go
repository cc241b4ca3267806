package web

import (
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"testapp/pkg/autherrors"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Session.User(); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, h.loginPage("", ""))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, h.loginPage("", "The form could not be read. Please try again."))
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if _, err := h.Session.Login(r.Context(), email, password); err != nil {
		h.Logger.InfoContext(r.Context(), "login rejected", "email", email, "error", err)
		renderHTML(w, errorStatus(err), h.loginPage(email, autherrors.DisplayMessage(err)))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Session.User(); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, h.signupPage("", "", ""))
}

func (h *Handler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, h.signupPage("", "", "The form could not be read. Please try again."))
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if _, err := h.Session.Signup(r.Context(), email, password, name); err != nil {
		h.Logger.InfoContext(r.Context(), "signup rejected", "email", email, "error", err)
		renderHTML(w, errorStatus(err), h.signupPage(name, email, autherrors.DisplayMessage(err)))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout always lands the user back on the home page. A backend failure is
// logged but the local session is already cleared, so there is nothing
// actionable to show.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		h.Logger.WarnContext(r.Context(), "sign-out did not complete on the backend", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) loginPage(email, errMsg string) gomponents.Node {
	body := []gomponents.Node{
		html.Div(
			html.Class("auth-head"),
			html.H1(gomponents.Text("Welcome Back")),
			html.P(html.Class("muted"), gomponents.Text("Sign in to your testapp account")),
		),
	}
	if errMsg != "" {
		body = append(body, html.P(html.Class("error"), gomponents.Text(errMsg)))
	}
	body = append(body,
		html.Form(
			html.Method("post"),
			html.Action("/login"),
			html.Class("stacked-form card"),
			html.Label(html.For("email"), gomponents.Text("Email Address")),
			html.Input(html.ID("email"), html.Type("email"), html.Name("email"), html.Value(email), html.Placeholder("you@example.com"), html.Required()),
			html.Label(html.For("password"), gomponents.Text("Password")),
			html.Input(html.ID("password"), html.Type("password"), html.Name("password"), html.Required()),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("Sign In")),
			html.P(html.Class("muted"),
				gomponents.Text("Don't have an account? "),
				html.A(html.Href("/signup"), gomponents.Text("Sign up")),
			),
		),
	)
	if h.Demo {
		body = append(body, html.Div(
			html.Class("card demo-hint"),
			html.P(html.Class("muted"), gomponents.Text("Demo Credentials:")),
			html.P(html.Class("mono"), gomponents.Text("Email: admin@testapp.com")),
			html.P(html.Class("mono"), gomponents.Text("Password: password123")),
		))
	}
	return appPage("Sign in", "", nil, html.Div(html.Class("auth-wrap"), gomponents.Group(body)))
}

func (h *Handler) signupPage(name, email, errMsg string) gomponents.Node {
	body := []gomponents.Node{
		html.Div(
			html.Class("auth-head"),
			html.H1(gomponents.Text("Create Your Account")),
			html.P(html.Class("muted"), gomponents.Text("Start building with testapp today")),
		),
	}
	if errMsg != "" {
		body = append(body, html.P(html.Class("error"), gomponents.Text(errMsg)))
	}
	body = append(body,
		html.Form(
			html.Method("post"),
			html.Action("/signup"),
			html.Class("stacked-form card"),
			html.Label(html.For("name"), gomponents.Text("Full Name")),
			html.Input(html.ID("name"), html.Type("text"), html.Name("name"), html.Value(name), html.Placeholder("John Doe"), html.Required()),
			html.Label(html.For("email"), gomponents.Text("Email Address")),
			html.Input(html.ID("email"), html.Type("email"), html.Name("email"), html.Value(email), html.Placeholder("you@example.com"), html.Required()),
			html.Label(html.For("password"), gomponents.Text("Password")),
			html.Input(html.ID("password"), html.Type("password"), html.Name("password"), html.Required()),
			html.P(html.Class("muted small"), gomponents.Text("Must be at least 6 characters")),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("Create Account")),
			html.P(html.Class("muted"),
				gomponents.Text("Already have an account? "),
				html.A(html.Href("/login"), gomponents.Text("Sign in")),
			),
		),
	)
	return appPage("Sign up", "", nil, html.Div(html.Class("auth-wrap"), gomponents.Group(body)))
}
