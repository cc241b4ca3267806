package mock

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Marker persists the "logged in" reference for mock mode: a small JSON file
// holding the user ID. The file is client-local state and is treated as
// untrusted on read: malformed content means "no session", never an error.
type Marker struct {
	path string
}

type markerPayload struct {
	UserID string `json:"userId"`
}

// NewMarker returns a Marker at path. An empty path picks a per-user default
// under the OS cache directory.
func NewMarker(path string) *Marker {
	if path == "" {
		if cache, err := os.UserCacheDir(); err == nil {
			path = filepath.Join(cache, "testapp", "session.json")
		} else {
			path = filepath.Join(os.TempDir(), "testapp-session.json")
		}
	}
	return &Marker{path: path}
}

// Save writes the marker, creating parent directories as needed.
func (m *Marker) Save(userID string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(markerPayload{UserID: userID})
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o600)
}

// Load reads the marker. Returns false for a missing file, unreadable file,
// malformed JSON, or empty user ID.
func (m *Marker) Load() (string, bool) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return "", false
	}
	var payload markerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false
	}
	if payload.UserID == "" {
		return "", false
	}
	return payload.UserID, true
}

// Clear removes the marker. A missing file is not an error.
func (m *Marker) Clear() error {
	err := os.Remove(m.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
