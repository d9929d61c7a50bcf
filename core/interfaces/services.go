// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"kindle-press-api/core/domain"
)

// ArticleService converts a URL or raw HTML into a processed article with
// downloaded image assets.
type ArticleService interface {
	ProcessURL(ctx context.Context, url string) (*domain.Article, error)
	ProcessHTML(ctx context.Context, rawHTML, baseURL string) (*domain.Article, error)
}

// Packager turns a processed article into a distributable e-book file and
// returns the path it was written to. Every src="images/<filename>"
// reference in the article body must resolve to an embedded asset.
type Packager interface {
	Package(article *domain.Article) (string, error)
}

// KindleSender delivers a packaged e-book file to a Kindle email address.
type KindleSender interface {
	Send(ctx context.Context, to string, bookPath string) error
}
