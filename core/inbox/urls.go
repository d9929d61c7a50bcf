// ABOUTME: Harvests candidate article URLs from free-form text such as email bodies
// ABOUTME: Filters out social, tracking and unsubscribe links before processing

package inbox

import (
	"regexp"
	"strings"
)

// urlPattern matches http(s) URLs embedded in plain text. Trailing
// punctuation commonly glued onto links in prose is trimmed afterwards.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// skipHostSubstrings marks hosts whose links are never articles:
// social platforms, trackers and list-management endpoints.
var skipHostSubstrings = []string{
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"pinterest.com",
	"doubleclick.net",
	"googleadservices.com",
	"google-analytics.com",
	"list-manage.com",
	"mailchimp.com",
	"sendgrid.net",
	"unsubscribe",
}

// skipPathSubstrings marks link paths that manage the mailing
// relationship rather than point at content.
var skipPathSubstrings = []string{
	"unsubscribe",
	"email-preferences",
	"manage-subscription",
	"privacy-policy",
	"terms-of-service",
}

// ExtractURLs pulls article-candidate URLs out of free-form text, in
// order of first appearance, with duplicates and non-article links
// removed.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var urls []string
	for _, match := range matches {
		url := strings.TrimRight(match, ".,;:!?)]}>")
		if url == "" || seen[url] {
			continue
		}
		if !isArticleCandidate(url) {
			continue
		}
		seen[url] = true
		urls = append(urls, url)
	}
	return urls
}

// isArticleCandidate reports whether a URL plausibly points at readable
// content rather than a social, tracking or list-management endpoint.
func isArticleCandidate(url string) bool {
	lower := strings.ToLower(url)
	for _, substr := range skipHostSubstrings {
		if strings.Contains(lower, substr) {
			return false
		}
	}
	for _, substr := range skipPathSubstrings {
		if strings.Contains(lower, substr) {
			return false
		}
	}
	return true
}
