package web

import (
	"strings"
	"time"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"testapp/internal/identity"
)

type navItem struct {
	Label string
	Href  string
	Key   string
}

var navItems = []navItem{
	{Label: "Home", Href: "/", Key: "home"},
	{Label: "About", Href: "/about", Key: "about"},
	{Label: "Pricing", Href: "/pricing", Key: "pricing"},
	{Label: "Contact", Href: "/contact", Key: "contact"},
}

// appPage is the shared layout: top bar with nav and auth controls, page body,
// footer. user is nil on public pages viewed signed out.
func appPage(title, active string, user *identity.Profile, body ...gomponents.Node) gomponents.Node {
	nav := make([]gomponents.Node, 0, len(navItems))
	for _, item := range navItems {
		className := ""
		if item.Key == active {
			className = "active"
		}
		nav = append(nav, html.A(html.Href(item.Href), html.Class(className), gomponents.Text(item.Label)))
	}

	var authControls gomponents.Node
	if user != nil {
		authControls = html.Div(
			html.Class("auth-controls"),
			html.A(html.Href("/dashboard"), html.Class("btn btn-secondary"), gomponents.Text("Dashboard")),
			html.Form(
				html.Method("post"),
				html.Action("/logout"),
				html.Class("inline-form"),
				html.Button(html.Type("submit"), html.Class("btn btn-ghost"), gomponents.Text("Sign out")),
			),
		)
	} else {
		authControls = html.Div(
			html.Class("auth-controls"),
			html.A(html.Href("/login"), html.Class("btn btn-ghost"), gomponents.Text("Sign in")),
			html.A(html.Href("/signup"), html.Class("btn btn-primary"), gomponents.Text("Get started")),
		)
	}

	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | testapp")),
			html.Link(html.Rel("stylesheet"), html.Href("/static/app.css")),
		),
		html.Body(
			html.Header(
				html.Class("topbar"),
				html.A(html.Href("/"), html.Class("brand"), gomponents.Text("testapp")),
				html.Nav(html.Class("nav"), gomponents.Group(nav)),
				authControls,
			),
			html.Main(html.Class("layout"), gomponents.Group(body)),
			html.Footer(
				html.Class("footer"),
				html.P(gomponents.Text("testapp — authentication for modern teams.")),
				html.Nav(
					html.A(html.Href("/terms"), gomponents.Text("Terms")),
					html.A(html.Href("/privacy"), gomponents.Text("Privacy")),
				),
			),
		),
	)
}

func errorPage(title, message string) gomponents.Node {
	return appPage(title, "", nil,
		html.H1(html.Class("page-title"), gomponents.Text(title)),
		html.P(gomponents.Text(message)),
		html.P(html.A(html.Href("/"), gomponents.Text("Back to home"))),
	)
}

// loadingPage renders while session recovery is still in flight so the guard
// never flashes the wrong state.
func loadingPage() gomponents.Node {
	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.Meta(gomponents.Attr("http-equiv", "refresh"), html.Content("1")),
			html.TitleEl(gomponents.Text("Loading | testapp")),
			html.Link(html.Rel("stylesheet"), html.Href("/static/app.css")),
		),
		html.Body(
			html.Main(
				html.Class("layout loading"),
				html.Div(html.Class("spinner")),
				html.P(html.Class("muted"), gomponents.Text("Loading your session...")),
			),
		),
	)
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("January 2, 2006")
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("Jan 2, 2006 15:04 MST")
}

// initial returns the avatar fallback letter.
func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	runes := []rune(name)
	return strings.ToUpper(string(runes[0]))
}
