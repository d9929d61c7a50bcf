// ABOUTME: Locates content image URLs in the original, pre-cleaning HTML
// ABOUTME: Narrows to the main content region via an ordered selector list

package extract

import (
	"net/url"
	"strings"

	"kindle-press-api/core/images"
	"kindle-press-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
)

// srcExtractor resolves one candidate attribute into an image URL.
// Evaluated in priority order; the first attribute yielding a non-empty
// value wins.
type srcExtractor struct {
	attr    string
	extract func(string) string
}

var srcExtractors = []srcExtractor{
	{"src", strings.TrimSpace},
	{"data-src", strings.TrimSpace},
	{"srcset", firstSrcsetURL},
	{"data-srcset", firstSrcsetURL},
}

// firstSrcsetURL returns the URL token of the first srcset entry.
func firstSrcsetURL(srcset string) string {
	entry := srcset
	if idx := strings.Index(srcset, ","); idx >= 0 {
		entry = srcset[:idx]
	}
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Locator scans original documents for content-region image URLs.
type Locator struct {
	selectors []string
	logger    interfaces.Logger
}

// NewLocator creates a locator using the given ordered content selector
// list.
func NewLocator(selectors []string, logger interfaces.Logger) *Locator {
	return &Locator{
		selectors: selectors,
		logger:    logger,
	}
}

// LocateImages returns the de-duplicated, absolute image URLs found in the
// document's main content region, in document order. Duplicate source URLs
// keep their first-seen position, so each unique image is downloaded at
// most once per document.
func (l *Locator) LocateImages(originalHTML, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(originalHTML))
	if err != nil {
		l.logger.Warn("Failed to parse original document", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	region := l.contentRegion(doc)

	var base *url.URL
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			base = parsed
		}
	}

	seen := make(map[string]struct{})
	var result []string

	region.Find("img").Each(func(_ int, img *goquery.Selection) {
		candidate := extractCandidate(img)
		if candidate == "" {
			return
		}

		absolute := resolveURL(candidate, base)
		if absolute == "" {
			return
		}

		if !images.IsWorthDownloading(absolute) {
			return
		}

		if _, dup := seen[absolute]; dup {
			return
		}
		seen[absolute] = struct{}{}
		result = append(result, absolute)
	})

	l.logger.Debug("Located content images", map[string]interface{}{
		"count": len(result),
	})
	return result
}

// contentRegion returns the first matching content selector's subtree,
// falling back to body and then the whole document.
func (l *Locator) contentRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range l.selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			l.logger.Debug("Found content region", map[string]interface{}{
				"selector": selector,
			})
			return sel.First()
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}

// extractCandidate probes the element's attributes in priority order and
// returns the first non-empty extracted URL.
func extractCandidate(img *goquery.Selection) string {
	for _, e := range srcExtractors {
		if value, exists := img.Attr(e.attr); exists {
			if extracted := e.extract(value); extracted != "" {
				return extracted
			}
		}
	}
	return ""
}

// resolveURL makes a candidate absolute against the base URL following
// RFC 3986 resolution rules. Already-absolute candidates pass through;
// relative candidates with no base are dropped.
func resolveURL(candidate string, base *url.URL) string {
	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	if base == nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
