// ABOUTME: Wrapper around the go-readability boilerplate-removal algorithm
// ABOUTME: Produces a title and a chrome-stripped HTML fragment from raw input

package extract

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// fallbackTitle is used when the readability pass finds no title.
const fallbackTitle = "Untitled Article"

// ReadableDocument is the readability algorithm's view of an article: a
// title and a cleaned HTML fragment. The cleaning typically strips most or
// all img elements; the reconciler restores them afterwards.
type ReadableDocument struct {
	Title   string
	Content string
}

// Readable runs the readability algorithm over raw HTML. The base URL is
// used to absolutize links inside the cleaned fragment; it may be empty
// for content without a known origin (e.g. a pasted email body).
func Readable(rawHTML, baseURL string) (*ReadableDocument, error) {
	pageURL := &url.URL{}
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			pageURL = parsed
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = fallbackTitle
	}

	return &ReadableDocument{
		Title:   title,
		Content: article.Content,
	}, nil
}
