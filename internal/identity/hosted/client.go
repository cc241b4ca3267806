// Package hosted adapts the external identity platform's REST API to the
// identity.Provider contract. The platform owns credentials, sessions, and the
// audit log; this client only carries requests to it.
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"testapp/internal/identity"
	"testapp/internal/platform/metrics"
	"testapp/pkg/autherrors"
	"testapp/pkg/sentinel"
)

// Config holds connection settings. Paths are overridable for tests.
type Config struct {
	BaseURL string
	AnonKey string

	// TokenFile persists the issued access token between runs so sessions
	// survive restarts. Empty disables persistence.
	TokenFile string

	// AuthPath and RestPath prefix the auth and data endpoints respectively.
	AuthPath string
	RestPath string

	HTTPClient *http.Client
}

// Client implements identity.Provider against the hosted platform.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics

	// pollDelay seeds the provisioning backoff. Shortened in tests.
	pollDelay time.Duration

	mu          sync.Mutex
	accessToken string
	userID      string

	events chan identity.AuthEvent
	closed sync.Once
}

// New builds a Client. The access token, if previously persisted, is loaded
// lazily by CurrentSession.
func New(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	if cfg.AuthPath == "" {
		cfg.AuthPath = "/auth/v1"
	}
	if cfg.RestPath == "" {
		cfg.RestPath = "/rest/v1"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		cfg:       cfg,
		http:      httpClient,
		logger:    logger,
		metrics:   m,
		pollDelay: 200 * time.Millisecond,
		events:    make(chan identity.AuthEvent),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

type apiError struct {
	Message     string `json:"message"`
	Msg         string `json:"msg"`
	ErrorField  string `json:"error"`
	Description string `json:"error_description"`
}

func (e apiError) text() string {
	for _, s := range []string{e.Message, e.Msg, e.Description, e.ErrorField} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SignIn exchanges credentials for an access token, persists it, and returns
// the profile.
func (c *Client) SignIn(ctx context.Context, email, password string) (identity.Profile, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("sign_in", time.Since(start)) }()

	body := map[string]string{"email": email, "password": password}
	var token tokenResponse
	status, err := c.doJSON(ctx, http.MethodPost, c.cfg.AuthPath+"/token?grant_type=password", body, &token)
	if err != nil {
		return identity.Profile{}, err
	}
	if status != http.StatusOK {
		return identity.Profile{}, autherrors.New(autherrors.CodeUnauthorized, "Invalid email or password")
	}

	c.setToken(token.AccessToken, token.User.ID)
	c.persistToken()

	return c.GetProfile(ctx, token.User.ID)
}

// SignUp creates the account, then polls for the provisioned profile. Profile
// rows are created by an asynchronous trigger on the platform side, so the
// first fetch can race the trigger; polling with backoff replaces guessing a
// fixed wait.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (identity.Profile, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("sign_up", time.Since(start)) }()

	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name, "role": string(identity.RoleUser)},
	}
	var token tokenResponse
	status, err := c.doJSON(ctx, http.MethodPost, c.cfg.AuthPath+"/signup", body, &token)
	if err != nil {
		return identity.Profile{}, err
	}
	switch {
	case status == http.StatusOK:
		// created
	case status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return identity.Profile{}, autherrors.New(autherrors.CodeConflict, "User with this email already exists")
	case status == http.StatusBadRequest:
		return identity.Profile{}, autherrors.New(autherrors.CodeInvalidInput, "Could not create the account with the details provided")
	default:
		return identity.Profile{}, autherrors.New(autherrors.CodeUnavailable, "Account creation is temporarily unavailable")
	}

	c.setToken(token.AccessToken, token.User.ID)
	c.persistToken()

	return c.waitForProfile(ctx, token.User.ID)
}

// waitForProfile polls until the provisioning trigger has materialized the
// profile row, with exponential backoff capped at a small budget.
func (c *Client) waitForProfile(ctx context.Context, userID string) (identity.Profile, error) {
	delay := c.pollDelay
	var lastErr error
	for attempt := 0; attempt < 6; attempt++ {
		profile, err := c.GetProfile(ctx, userID)
		if err == nil {
			return profile, nil
		}
		lastErr = err
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return identity.Profile{}, ctx.Err()
		case <-timer.C:
		}
		if delay < 2*time.Second {
			delay *= 2
		}
	}
	return identity.Profile{}, autherrors.Wrap(lastErr, autherrors.CodeUnavailable,
		"Your account was created but is still being provisioned. Please try signing in.")
}

// SignOut invalidates the platform session and forgets the token. Having no
// token to invalidate is not an error.
func (c *Client) SignOut(ctx context.Context) error {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("sign_out", time.Since(start)) }()

	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()
	if token == "" {
		return nil
	}

	status, err := c.doJSON(ctx, http.MethodPost, c.cfg.AuthPath+"/logout", nil, nil)

	// Local state clears regardless of the backend outcome.
	c.setToken("", "")
	c.persistToken()

	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return autherrors.New(autherrors.CodeUnavailable, "Sign out did not complete on the server")
	}
	return nil
}

// CurrentSession recovers a session from the persisted access token. An
// expired, malformed, or missing token reads as "no session".
func (c *Client) CurrentSession(ctx context.Context) (*identity.Session, error) {
	c.mu.Lock()
	token, userID := c.accessToken, c.userID
	c.mu.Unlock()

	if token == "" {
		token, userID = c.loadPersistedToken()
		if token == "" {
			return nil, nil
		}
		c.setToken(token, userID)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		c.logger.Warn("persisted access token is malformed, discarding", "error", err)
		c.setToken("", "")
		c.persistToken()
		return nil, nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !time.Now().Before(exp.Time) {
		c.setToken("", "")
		c.persistToken()
		return nil, nil
	}
	if userID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			userID = sub
			c.setToken(token, userID)
		}
	}

	return &identity.Session{UserID: userID, Token: token, ExpiresAt: exp.Time}, nil
}

// GetProfile fetches one profile row.
func (c *Client) GetProfile(ctx context.Context, userID string) (identity.Profile, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("get_profile", time.Since(start)) }()

	var profile identity.Profile
	path := c.cfg.RestPath + "/profiles?id=eq." + url.QueryEscape(userID) + "&select=*"
	status, err := c.doJSONSingle(ctx, http.MethodGet, path, nil, &profile)
	if err != nil {
		return identity.Profile{}, err
	}
	if status == http.StatusNotFound || status == http.StatusNotAcceptable || profile.ID == "" {
		return identity.Profile{}, sentinel.ErrNotFound
	}
	if status != http.StatusOK {
		return identity.Profile{}, autherrors.New(autherrors.CodeUnavailable, "Could not load your profile")
	}
	return profile, nil
}

// UpdateProfile applies a partial update and returns the canonical row.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update identity.ProfileUpdate) (identity.Profile, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("update_profile", time.Since(start)) }()

	body := map[string]string{}
	if update.Name != nil {
		body["name"] = *update.Name
	}
	if update.AvatarURL != nil {
		body["avatar_url"] = *update.AvatarURL
	}

	var profile identity.Profile
	path := c.cfg.RestPath + "/profiles?id=eq." + url.QueryEscape(userID)
	status, err := c.doJSONSingle(ctx, http.MethodPatch, path, body, &profile)
	if err != nil {
		return identity.Profile{}, err
	}
	if status != http.StatusOK {
		return identity.Profile{}, autherrors.New(autherrors.CodeUnavailable, "Could not update your profile")
	}
	return profile, nil
}

// ListSessions returns the user's sessions ordered newest-active first. The
// ordering is requested from the platform, not re-sorted locally.
func (c *Client) ListSessions(ctx context.Context, userID string) ([]identity.Session, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("list_sessions", time.Since(start)) }()

	var sessions []identity.Session
	path := c.cfg.RestPath + "/sessions?user_id=eq." + url.QueryEscape(userID) + "&select=*&order=last_active_at.desc"
	status, err := c.doJSON(ctx, http.MethodGet, path, nil, &sessions)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, autherrors.New(autherrors.CodeUnavailable, "Could not load your sessions")
	}
	return sessions, nil
}

// RevokeSession deletes one session row.
func (c *Client) RevokeSession(ctx context.Context, sessionID string) (bool, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("revoke_session", time.Since(start)) }()

	path := c.cfg.RestPath + "/sessions?id=eq." + url.QueryEscape(sessionID)
	status, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusNoContent || status == http.StatusOK, nil
}

// AppendAuditEvent inserts one audit row. Callers treat this as best-effort.
func (c *Client) AppendAuditEvent(ctx context.Context, event identity.AuditEvent) error {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("append_audit", time.Since(start)) }()

	status, err := c.doJSON(ctx, http.MethodPost, c.cfg.RestPath+"/audit_logs", event, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return fmt.Errorf("audit append rejected with status %d", status)
	}
	return nil
}

// ListAuditEvents returns the user's recent audit rows, newest first.
func (c *Client) ListAuditEvents(ctx context.Context, userID string, limit int) ([]identity.AuditEvent, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProviderRequest("list_audit", time.Since(start)) }()

	if limit <= 0 {
		limit = 20
	}
	var events []identity.AuditEvent
	path := fmt.Sprintf("%s/audit_logs?user_id=eq.%s&select=*&order=created_at.desc&limit=%d",
		c.cfg.RestPath, url.QueryEscape(userID), limit)
	status, err := c.doJSON(ctx, http.MethodGet, path, nil, &events)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, autherrors.New(autherrors.CodeUnavailable, "Could not load your recent activity")
	}
	return events, nil
}

// Events exposes the auth-event stream. The REST transport has no push
// channel, so events only flow when the platform gains one; consumers still
// get a well-defined stream with teardown semantics.
func (c *Client) Events() <-chan identity.AuthEvent {
	return c.events
}

// Close shuts the event stream down.
func (c *Client) Close() error {
	c.closed.Do(func() { close(c.events) })
	return nil
}

func (c *Client) setToken(token, userID string) {
	c.mu.Lock()
	c.accessToken = token
	c.userID = userID
	c.mu.Unlock()
}

// doJSON performs a request with the platform headers applied and decodes the
// response body into out when provided. Transport failures map to
// CodeUnavailable so the UI shows a friendly message.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) (int, error) {
	return c.do(ctx, method, path, in, out, false)
}

// doJSONSingle requests a single object representation from list endpoints.
func (c *Client) doJSONSingle(ctx context.Context, method, path string, in, out any) (int, error) {
	return c.do(ctx, method, path, in, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, single bool) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.cfg.AnonKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
	if method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()
	if token == "" {
		token = c.cfg.AnonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, autherrors.Wrap(err, autherrors.CodeUnavailable, "The authentication service is unreachable. Please try again.")
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return resp.StatusCode, autherrors.Wrap(err, autherrors.CodeUnavailable, "The authentication service returned an unexpected response.")
		}
		return resp.StatusCode, nil
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if msg := apiErr.text(); msg != "" {
			c.logger.Debug("provider error response", "status", resp.StatusCode, "message", msg)
		}
	}
	return resp.StatusCode, nil
}

var _ identity.Provider = (*Client)(nil)
