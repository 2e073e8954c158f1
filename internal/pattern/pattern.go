package pattern

import (
	"regexp"
	"strings"
)

// Platform identifies one of the supported social networks.
type Platform string

const (
	Instagram Platform = "instagram"
	TikTok    Platform = "tiktok"
	YouTube   Platform = "youtube"
	X         Platform = "x"
	Facebook  Platform = "facebook"
)

// Platforms lists all supported platforms in classification order. Anchor
// classification attributes a link to the first platform whose domain matches,
// so the order here is load-bearing.
var Platforms = []Platform{Instagram, TikTok, YouTube, X, Facebook}

// emailRe matches local@domain.tld with an ASCII local part and a TLD of at
// least two letters.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// profileRes holds per-platform pattern lists, protocol-qualified form first
// and bare-domain form second. The first pattern that matches wins and later
// patterns for the same platform are skipped.
var profileRes = map[Platform][]*regexp.Regexp{
	Instagram: {
		regexp.MustCompile(`https?://(?:www\.)?instagram\.com/[a-zA-Z0-9_.]+/?`),
		regexp.MustCompile(`instagram\.com/[a-zA-Z0-9_.]+/?`),
	},
	TikTok: {
		regexp.MustCompile(`https?://(?:www\.)?tiktok\.com/@[a-zA-Z0-9_.]+/?`),
		regexp.MustCompile(`tiktok\.com/@[a-zA-Z0-9_.]+/?`),
	},
	YouTube: {
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/(?:channel|user|c)/[a-zA-Z0-9_-]+/?`),
		regexp.MustCompile(`https?://(?:www\.)?youtube\.com/@[a-zA-Z0-9_-]+/?`),
		regexp.MustCompile(`youtube\.com/(?:channel|user|c)/[a-zA-Z0-9_-]+/?`),
		regexp.MustCompile(`youtube\.com/@[a-zA-Z0-9_-]+/?`),
	},
	X: {
		regexp.MustCompile(`https?://(?:www\.)?(?:twitter|x)\.com/[a-zA-Z0-9_]+/?`),
		regexp.MustCompile(`(?:twitter|x)\.com/[a-zA-Z0-9_]+/?`),
	},
	Facebook: {
		regexp.MustCompile(`https?://(?:www\.)?facebook\.com/[a-zA-Z0-9.]+/?`),
		regexp.MustCompile(`facebook\.com/[a-zA-Z0-9.]+/?`),
	},
}

// domains maps each platform to the host substrings used when classifying
// anchor hrefs.
var domains = map[Platform][]string{
	Instagram: {"instagram.com"},
	TikTok:    {"tiktok.com"},
	YouTube:   {"youtube.com", "youtu.be"},
	X:         {"twitter.com", "x.com"},
	Facebook:  {"facebook.com"},
}

// Emails returns the distinct email addresses found in text, in first-seen
// order. The ordered scan makes the caller's pick-the-first rule deterministic
// rather than depending on map or set iteration order.
func Emails(text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, m := range emailRe.FindAllString(text, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// ProfileURLs scans text for profile URLs on each supported platform and
// returns at most one URL per platform. Patterns are tried in order; the first
// match wins. Matches without a scheme get an https:// prefix.
func ProfileURLs(text string) map[Platform]string {
	out := make(map[Platform]string)
	if text == "" {
		return out
	}
	for _, p := range Platforms {
		for _, re := range profileRes[p] {
			m := re.FindString(text)
			if m == "" {
				continue
			}
			out[p] = EnsureScheme(m)
			break
		}
	}
	return out
}

// ClassifyHref attributes a link target to the first platform whose domain
// appears in it. The second return is false when no platform matches.
func ClassifyHref(href string) (Platform, bool) {
	for _, p := range Platforms {
		for _, d := range domains[p] {
			if strings.Contains(href, d) {
				return p, true
			}
		}
	}
	return "", false
}

// EnsureScheme prefixes bare-domain URLs with https://.
func EnsureScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
