package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/goprospect/internal/pattern"
)

// Signals holds the contact information discovered on one page. Empty fields
// mean "none found".
type Signals struct {
	Email    string
	Profiles map[pattern.Platform]string
}

// FromHTML turns one page's raw markup into contact signals.
//
// Emails are collected from visible text first and from the raw markup as a
// fallback, which recovers addresses hidden in mailto attributes, comments, or
// inline scripts. Profile URLs come from a regex pass over the raw markup,
// then from the page's anchor hrefs; an anchor-derived URL overwrites the
// regex-derived one for the same platform because a declared link is more
// trustworthy than an incidental text match.
//
// Markup that fails to parse degrades to whatever the raw-markup regex passes
// can recover; this function never returns an error.
func FromHTML(raw string) Signals {
	sig := Signals{Profiles: pattern.ProfileURLs(raw)}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil || doc == nil {
		if emails := pattern.Emails(raw); len(emails) > 0 {
			sig.Email = emails[0]
		}
		return sig
	}

	doc.Find("script, style").Remove()
	text := doc.Text()

	// Visible text wins; raw markup is the fallback. The first match during
	// the pattern scan over the chosen source is the deterministic pick.
	if emails := pattern.Emails(text); len(emails) > 0 {
		sig.Email = emails[0]
	} else if emails := pattern.Emails(raw); len(emails) > 0 {
		sig.Email = emails[0]
	}

	for p, href := range anchorProfiles(doc) {
		sig.Profiles[p] = href
	}
	return sig
}

// anchorProfiles scans every anchor's href and classifies it by platform
// domain. Each anchor is attributed to exactly one platform, checked in the
// fixed order instagram, tiktok, youtube, x, facebook. Later anchors for the
// same platform replace earlier ones, matching the original link-scan
// behavior.
func anchorProfiles(doc *goquery.Document) map[pattern.Platform]string {
	out := make(map[pattern.Platform]string)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if p, matched := pattern.ClassifyHref(href); matched {
			out[p] = href
		}
	})
	return out
}

// displayNameSeparators are tried in order against a shrinking prefix of the
// title; the net effect is the trimmed left-most segment before the first
// occurrence of any separator.
var displayNameSeparators = []string{"|", "-", ":", "：", "／", "/", "｜"}

// DeriveDisplayName estimates a company or person name from a page title.
func DeriveDisplayName(title string) string {
	name := title
	for _, sep := range displayNameSeparators {
		if strings.Contains(name, sep) {
			name = strings.TrimSpace(strings.SplitN(name, sep, 2)[0])
		}
	}
	return strings.TrimSpace(name)
}
