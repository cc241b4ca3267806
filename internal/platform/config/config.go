package config

import (
	"os"
	"strconv"
	"time"
)

// Backend selects which identity backend the server talks to.
type Backend string

const (
	BackendMock   Backend = "mock"
	BackendHosted Backend = "hosted"
)

// Config holds all server configuration. Read once from the environment at
// startup and treated as immutable afterwards.
type Config struct {
	Addr       string
	Production bool

	// Identity backend selection. UseMock forces mock mode; mock is also the
	// fallback when hosted credentials are missing.
	UseMock         bool
	ProviderURL     string
	ProviderAnonKey string

	// Client-local persistence paths. Empty means a per-user default.
	SessionFile string
	TokenFile   string

	// MockLatency emulates network latency in the mock store. Zero in tests.
	MockLatency time.Duration

	ShutdownTimeout time.Duration
}

// Load builds a Config from environment variables so main stays lean.
func Load() *Config {
	return &Config{
		Addr:            getEnvString("TESTAPP_ADDR", ":8080"),
		Production:      os.Getenv("TESTAPP_ENV") == "production",
		UseMock:         getEnvBool("TESTAPP_USE_MOCK", false),
		ProviderURL:     os.Getenv("TESTAPP_PROVIDER_URL"),
		ProviderAnonKey: os.Getenv("TESTAPP_PROVIDER_ANON_KEY"),
		SessionFile:     os.Getenv("TESTAPP_SESSION_FILE"),
		TokenFile:       os.Getenv("TESTAPP_TOKEN_FILE"),
		MockLatency:     getEnvDuration("TESTAPP_MOCK_LATENCY", 750*time.Millisecond),
		ShutdownTimeout: getEnvDuration("TESTAPP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// ResolveBackend picks the active backend. Missing hosted credentials degrade
// to mock mode; callers log the fallback rather than failing hard.
func (c *Config) ResolveBackend() (Backend, bool) {
	if c.UseMock {
		return BackendMock, false
	}
	if c.ProviderURL == "" || c.ProviderAnonKey == "" {
		return BackendMock, true
	}
	return BackendHosted, false
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
