package web

import (
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"testapp/internal/identity"
)

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{"Enterprise Security", "Bank-grade encryption with SOC 2 Type II compliance and advanced threat protection."},
	{"Lightning Fast", "Sub-100ms authentication with global edge network and intelligent caching."},
	{"Zero Trust Architecture", "Multi-factor authentication, biometric support, and continuous verification."},
	{"Team Management", "Role-based access control, SSO integration, and centralized user administration."},
	{"Developer First", "RESTful APIs, SDKs for all major languages, and comprehensive documentation."},
	{"99.99% Uptime", "Redundant infrastructure, automatic failover, and 24/7 monitoring."},
}

type stat struct {
	Value string
	Label string
}

var stats = []stat{
	{"10M+", "Active Users"},
	{"99.99%", "Uptime SLA"},
	{"<100ms", "Auth Speed"},
	{"150+", "Countries"},
}

func (h *Handler) currentUser() *identity.Profile {
	if user, ok := h.Session.User(); ok {
		return &user
	}
	return nil
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser()

	featureCards := make([]gomponents.Node, 0, len(features))
	for _, f := range features {
		featureCards = append(featureCards, html.Div(
			html.Class("card"),
			html.H3(gomponents.Text(f.Title)),
			html.P(gomponents.Text(f.Description)),
		))
	}
	statCards := make([]gomponents.Node, 0, len(stats))
	for _, s := range stats {
		statCards = append(statCards, html.Div(
			html.Class("stat"),
			html.Strong(gomponents.Text(s.Value)),
			html.Span(html.Class("muted"), gomponents.Text(s.Label)),
		))
	}

	renderHTML(w, http.StatusOK, appPage("Enterprise Authentication", "home", user,
		html.Section(
			html.Class("hero"),
			html.H1(gomponents.Text("Enterprise Authentication, Built for Developers")),
			html.P(html.Class("lead"), gomponents.Text(
				"Secure, scalable authentication infrastructure with enterprise-grade security, "+
					"lightning-fast performance, and developer-friendly APIs.")),
			html.Div(
				html.Class("cta-row"),
				html.A(html.Href("/signup"), html.Class("btn btn-primary"), gomponents.Text("Get Started")),
				html.A(html.Href("/pricing"), html.Class("btn btn-secondary"), gomponents.Text("View Pricing")),
			),
		),
		html.Section(html.Class("stats"), gomponents.Group(statCards)),
		html.Section(
			html.Class("features"),
			html.H2(gomponents.Text("Enterprise-Grade Features")),
			html.P(html.Class("muted"), gomponents.Text("Everything you need to build secure, scalable authentication for modern applications")),
			html.Div(html.Class("grid"), gomponents.Group(featureCards)),
		),
		html.Section(
			html.Class("cta card"),
			html.H2(gomponents.Text("Ready to Get Started?")),
			html.P(gomponents.Text("Join thousands of developers building secure applications with testapp. Start your free trial today, no credit card required.")),
			html.Div(
				html.Class("cta-row"),
				html.A(html.Href("/signup"), html.Class("btn btn-primary"), gomponents.Text("Start Free Trial")),
				html.A(html.Href("/contact"), html.Class("btn btn-secondary"), gomponents.Text("Contact Sales")),
			),
		),
	))
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	values := []feature{
		{"Security First", "We prioritize security in every decision, implementing industry-leading practices and compliance standards."},
		{"Developer Experience", "Built by developers, for developers. We obsess over API design and documentation quality."},
		{"Performance", "Lightning-fast authentication with global edge network and intelligent caching strategies."},
		{"Global Scale", "Serving millions of users across 150+ countries with 99.99% uptime SLA."},
	}
	valueCards := make([]gomponents.Node, 0, len(values))
	for _, v := range values {
		valueCards = append(valueCards, html.Div(
			html.Class("card"),
			html.H3(gomponents.Text(v.Title)),
			html.P(gomponents.Text(v.Description)),
		))
	}

	renderHTML(w, http.StatusOK, appPage("About", "about", h.currentUser(),
		html.H1(html.Class("page-title"), gomponents.Text("About testapp")),
		html.P(html.Class("lead"), gomponents.Text(
			"We're building the future of authentication infrastructure for modern applications. "+
				"Our mission is to make secure authentication accessible to every developer.")),
		html.Section(
			html.Class("card"),
			html.H2(gomponents.Text("Our Story")),
			html.P(gomponents.Text("testapp was founded in 2020 by a team of security engineers and developers who were frustrated with the complexity of implementing authentication in modern applications.")),
			html.P(gomponents.Text("We believed that secure authentication should be simple, scalable, and accessible to every developer, from solo founders to enterprise teams.")),
			html.P(gomponents.Text("Today, testapp powers authentication for over 10 million users across 150+ countries, helping developers focus on building great products instead of wrestling with auth infrastructure.")),
		),
		html.Section(
			html.H2(gomponents.Text("Our Values")),
			html.Div(html.Class("grid"), gomponents.Group(valueCards)),
		),
	))
}

type plan struct {
	Name        string
	Price       string
	Period      string
	Description string
	Features    []string
	CTA         string
	CTAHref     string
	Popular     bool
}

var plans = []plan{
	{
		Name: "Starter", Price: "$0", Period: "forever",
		Description: "Perfect for side projects and MVPs",
		Features: []string{
			"Up to 1,000 monthly active users",
			"Email & password authentication",
			"Social login (Google, GitHub)",
			"Basic security features",
			"Community support",
			"API access",
		},
		CTA: "Get Started", CTAHref: "/signup",
	},
	{
		Name: "Professional", Price: "$49", Period: "per month",
		Description: "For growing startups and teams",
		Features: []string{
			"Up to 10,000 monthly active users",
			"Everything in Starter",
			"Multi-factor authentication",
			"Advanced security rules",
			"Priority email support",
			"Custom branding",
			"Audit logs",
			"Team collaboration",
		},
		CTA: "Start Free Trial", CTAHref: "/signup", Popular: true,
	},
	{
		Name: "Enterprise", Price: "Custom", Period: "contact sales",
		Description: "For large-scale applications",
		Features: []string{
			"Unlimited monthly active users",
			"Everything in Professional",
			"SSO & SAML integration",
			"Dedicated support engineer",
			"SLA guarantee (99.99%)",
			"Custom integrations",
			"Advanced compliance",
			"On-premise deployment option",
		},
		CTA: "Contact Sales", CTAHref: "/contact",
	},
}

func (h *Handler) Pricing(w http.ResponseWriter, r *http.Request) {
	planCards := make([]gomponents.Node, 0, len(plans))
	for _, p := range plans {
		items := make([]gomponents.Node, 0, len(p.Features))
		for _, f := range p.Features {
			items = append(items, html.Li(gomponents.Text(f)))
		}
		className := "card plan"
		if p.Popular {
			className = "card plan popular"
		}
		planCards = append(planCards, html.Div(
			html.Class(className),
			gomponents.If(p.Popular, html.Span(html.Class("badge"), gomponents.Text("Most Popular"))),
			html.H3(gomponents.Text(p.Name)),
			html.P(html.Class("muted"), gomponents.Text(p.Description)),
			html.P(html.Class("price"), html.Strong(gomponents.Text(p.Price)), html.Span(html.Class("muted"), gomponents.Text(" "+p.Period))),
			html.Ul(gomponents.Group(items)),
			html.A(html.Href(p.CTAHref), html.Class("btn btn-primary"), gomponents.Text(p.CTA)),
		))
	}

	renderHTML(w, http.StatusOK, appPage("Pricing", "pricing", h.currentUser(),
		html.H1(html.Class("page-title"), gomponents.Text("Simple, Transparent Pricing")),
		html.P(html.Class("lead"), gomponents.Text("Choose the plan that fits your needs. All plans include a 14-day free trial. No credit card required.")),
		html.Div(html.Class("grid plans"), gomponents.Group(planCards)),
	))
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, contactPage(h.currentUser(), contactForm{}, ""))
}

type contactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (h *Handler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, contactPage(h.currentUser(), contactForm{}, "The form could not be read. Please try again."))
		return
	}
	form := contactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	if form.Name == "" || form.Email == "" || form.Subject == "" || form.Message == "" {
		renderHTML(w, http.StatusBadRequest, contactPage(h.currentUser(), form, "All fields are required."))
		return
	}

	// There is no delivery backend; the inquiry is logged for operators.
	h.Logger.InfoContext(r.Context(), "contact inquiry received",
		"name", form.Name, "email", form.Email, "subject", form.Subject)

	renderHTML(w, http.StatusOK, appPage("Contact", "contact", h.currentUser(),
		html.H1(html.Class("page-title"), gomponents.Text("Thanks for reaching out!")),
		html.P(gomponents.Text("We received your message and our team typically responds within 24 hours.")),
		html.P(html.A(html.Href("/"), gomponents.Text("Back to home"))),
	))
}

func contactPage(user *identity.Profile, form contactForm, errMsg string) gomponents.Node {
	body := []gomponents.Node{
		html.H1(html.Class("page-title"), gomponents.Text("Get in Touch")),
		html.P(html.Class("lead"), gomponents.Text("Have questions about testapp? Our team is here to help. Reach out through any of the channels below or fill out the contact form.")),
	}
	if errMsg != "" {
		body = append(body, html.P(html.Class("error"), gomponents.Text(errMsg)))
	}
	body = append(body,
		html.Div(
			html.Class("card"),
			html.H2(gomponents.Text("Send us a message")),
			html.Form(
				html.Method("post"),
				html.Action("/contact"),
				html.Class("stacked-form"),
				html.Label(html.For("name"), gomponents.Text("Name")),
				html.Input(html.ID("name"), html.Type("text"), html.Name("name"), html.Value(form.Name), html.Placeholder("John Doe"), html.Required()),
				html.Label(html.For("email"), gomponents.Text("Email")),
				html.Input(html.ID("email"), html.Type("email"), html.Name("email"), html.Value(form.Email), html.Placeholder("you@example.com"), html.Required()),
				html.Label(html.For("subject"), gomponents.Text("Subject")),
				html.Input(html.ID("subject"), html.Type("text"), html.Name("subject"), html.Value(form.Subject), html.Placeholder("How can we help?"), html.Required()),
				html.Label(html.For("message"), gomponents.Text("Message")),
				html.Textarea(html.ID("message"), html.Name("message"), html.Rows("6"), html.Placeholder("Tell us more about your inquiry..."), html.Required(), gomponents.Text(form.Message)),
				html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("Send Message")),
			),
		),
		html.Div(
			html.Class("card"),
			html.H2(gomponents.Text("Other ways to reach us")),
			html.Ul(
				html.Li(gomponents.Text("Email: support@testapp.com (we typically respond within 24 hours)")),
				html.Li(gomponents.Text("Live chat: Monday-Friday, 9am-5pm EST")),
				html.Li(gomponents.Text("Phone: +1 (555) 123-4567 for urgent enterprise inquiries")),
				html.Li(gomponents.Text("Office: San Francisco, CA")),
			),
		),
	)
	return appPage("Contact", "contact", user, body...)
}

func (h *Handler) Terms(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, appPage("Terms of Service", "", h.currentUser(),
		html.H1(html.Class("page-title"), gomponents.Text("Terms of Service")),
		html.Section(
			html.Class("card prose"),
			html.H2(gomponents.Text("1. Acceptance of Terms")),
			html.P(gomponents.Text("By accessing or using testapp, you agree to be bound by these Terms of Service and all applicable laws and regulations.")),
			html.H2(gomponents.Text("2. Use of Service")),
			html.P(gomponents.Text("You may use testapp only for lawful purposes. You are responsible for maintaining the confidentiality of your account credentials and for all activity under your account.")),
			html.H2(gomponents.Text("3. Service Availability")),
			html.P(gomponents.Text("We target a 99.99% uptime SLA on eligible plans. Scheduled maintenance windows are announced in advance.")),
			html.H2(gomponents.Text("4. Termination")),
			html.P(gomponents.Text("We may suspend or terminate accounts that violate these terms. You may close your account at any time from the dashboard.")),
		),
	))
}

func (h *Handler) Privacy(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, appPage("Privacy Policy", "", h.currentUser(),
		html.H1(html.Class("page-title"), gomponents.Text("Privacy Policy")),
		html.Section(
			html.Class("card prose"),
			html.H2(gomponents.Text("1. Data We Collect")),
			html.P(gomponents.Text("We collect account information you provide (name, email) and operational metadata needed to run the service (IP addresses, device information, audit events).")),
			html.H2(gomponents.Text("2. How We Use Data")),
			html.P(gomponents.Text("Data is used to operate and secure the service. We never sell personal data.")),
			html.H2(gomponents.Text("3. Data Retention")),
			html.P(gomponents.Text("Audit records are retained for security purposes. You can request an export or deletion of your personal data at any time.")),
			html.H2(gomponents.Text("4. Contact")),
			html.P(gomponents.Text("Questions about this policy? Email privacy@testapp.com.")),
		),
	))
}
