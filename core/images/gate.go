// ABOUTME: URL-based pre-filter deciding whether an image is worth fetching
// ABOUTME: Rejects icons, logos, trackers and other decorative images by substring

package images

import "strings"

// denySubstrings marks image URLs that are almost always decorative chrome
// or tracking beacons rather than article content.
var denySubstrings = []string{
	"icon", "logo", "avatar", "favicon", "social", "share",
	"button", "sprite", "badge", "pixel", "tracking",
}

// IsWorthDownloading reports whether an image URL looks like article
// content. Pure string classification: no network access, no errors.
func IsWorthDownloading(url string) bool {
	lower := strings.ToLower(url)
	for _, pattern := range denySubstrings {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}
