// ABOUTME: Request DTOs for article processing and delivery endpoints
// ABOUTME: Carries validation for incoming JSON payloads

package requests

import (
	"strings"

	"kindle-press-api/core/errors"
)

// ProcessArticleRequest asks for one document to be processed. Either a
// URL to fetch or raw HTML (with an optional base URL) must be given.
type ProcessArticleRequest struct {
	URL     string `json:"url,omitempty"`
	HTML    string `json:"html,omitempty"`
	BaseURL string `json:"baseUrl,omitempty"`
}

// Validate checks the request for consistency.
func (r *ProcessArticleRequest) Validate() error {
	if r.URL == "" && r.HTML == "" {
		return &errors.ValidationError{Field: "url", Message: "either url or html must be provided"}
	}
	if r.URL != "" && r.HTML != "" {
		return &errors.ValidationError{Field: "url", Message: "url and html are mutually exclusive"}
	}
	if r.URL != "" && !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
		return &errors.ValidationError{Field: "url", Message: "url must be http or https"}
	}
	return nil
}

// SendRequest asks for a batch of articles to be delivered to a Kindle
// address. URLs may be listed directly or harvested from free-form text
// (e.g. a forwarded newsletter body).
type SendRequest struct {
	URLs        []string `json:"urls,omitempty"`
	Text        string   `json:"text,omitempty"`
	KindleEmail string   `json:"kindleEmail"`
}

// Validate checks the request for consistency.
func (r *SendRequest) Validate() error {
	if r.KindleEmail == "" {
		return &errors.ValidationError{Field: "kindleEmail", Message: "kindleEmail is required"}
	}
	if !strings.Contains(r.KindleEmail, "@") {
		return &errors.ValidationError{Field: "kindleEmail", Message: "kindleEmail must be an email address"}
	}
	if len(r.URLs) == 0 && r.Text == "" {
		return &errors.ValidationError{Field: "urls", Message: "either urls or text must be provided"}
	}
	return nil
}
