// Package export writes finished contact lists to downstream sinks. Sink
// failures are reported to the caller and never disturb the in-memory results.
package export

import (
	"github.com/hyperifyio/goprospect/internal/pattern"
	"github.com/hyperifyio/goprospect/internal/scan"
)

// Header is the fixed column order shared by every sink.
var Header = []string{
	"display_name",
	"url",
	"instagram_url",
	"tiktok_url",
	"youtube_url",
	"x_url",
	"facebook_url",
	"email",
}

// Row renders one contact in Header order. Missing values become empty
// strings.
func Row(c scan.Contact) []string {
	return []string{
		c.DisplayName,
		c.URL,
		c.Profiles[pattern.Instagram],
		c.Profiles[pattern.TikTok],
		c.Profiles[pattern.YouTube],
		c.Profiles[pattern.X],
		c.Profiles[pattern.Facebook],
		c.Email,
	}
}

// Rows renders all contacts without a header row.
func Rows(contacts []scan.Contact) [][]string {
	out := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, Row(c))
	}
	return out
}
