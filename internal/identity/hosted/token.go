package hosted

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Access tokens are persisted client-side so a restart can recover the
// session. The file is untrusted input on read: anything malformed is
// discarded silently and treated as "no session".

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

func (c *Client) tokenPath() string {
	if c.cfg.TokenFile != "" {
		return c.cfg.TokenFile
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "testapp", "token.json")
	}
	return filepath.Join(os.TempDir(), "testapp-token.json")
}

func (c *Client) persistToken() {
	path := c.tokenPath()

	c.mu.Lock()
	payload := tokenPayload{AccessToken: c.accessToken, UserID: c.userID}
	c.mu.Unlock()

	if payload.AccessToken == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove persisted token", "error", err)
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		c.logger.Warn("failed to create token directory", "error", err)
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		c.logger.Warn("failed to persist access token", "error", err)
	}
}

func (c *Client) loadPersistedToken() (token, userID string) {
	data, err := os.ReadFile(c.tokenPath())
	if err != nil {
		return "", ""
	}
	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", ""
	}
	return payload.AccessToken, payload.UserID
}
