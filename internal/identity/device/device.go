// Package device turns raw User-Agent strings into short display names for the
// active-sessions list on the dashboard.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a human-readable "Browser on Platform" label.
func ParseUserAgent(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	platform := ua.Platform()
	if ua.Mobile() && ua.Model() != "" {
		platform = ua.Model()
	}
	if osInfo := ua.OSInfo(); osInfo.Name != "" {
		platform = osInfo.Name
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if platform == "" {
		platform = "Unknown Platform"
	}
	return fmt.Sprintf("%s on %s", browser, platform)
}
