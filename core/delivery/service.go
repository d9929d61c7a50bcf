// ABOUTME: Delivery service that turns article URLs into e-books on a Kindle
// ABOUTME: Processes, packages and emails each URL independently

package delivery

import (
	"context"

	"kindle-press-api/core/interfaces"
)

// Result records the outcome of delivering one URL. A failed URL never
// blocks delivery of the others in the same batch.
type Result struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	BookPath string `json:"bookPath,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Succeeded reports whether the URL made it all the way to the Kindle.
func (r Result) Succeeded() bool {
	return r.Error == ""
}

// Service drives the process-package-send chain for batches of URLs.
type Service struct {
	articles interfaces.ArticleService
	packager interfaces.Packager
	sender   interfaces.KindleSender
	logger   interfaces.Logger
}

// NewService creates a new delivery service
func NewService(articles interfaces.ArticleService, packager interfaces.Packager, sender interfaces.KindleSender, logger interfaces.Logger) *Service {
	return &Service{
		articles: articles,
		packager: packager,
		sender:   sender,
		logger:   logger,
	}
}

// SendURLs processes each URL into an e-book and emails it to the given
// Kindle address. Results come back in input order, one per URL.
func (s *Service) SendURLs(ctx context.Context, urls []string, kindleEmail string) []Result {
	results := make([]Result, 0, len(urls))
	for _, url := range urls {
		results = append(results, s.sendOne(ctx, url, kindleEmail))
	}
	return results
}

func (s *Service) sendOne(ctx context.Context, url, kindleEmail string) Result {
	result := Result{URL: url}

	article, err := s.articles.ProcessURL(ctx, url)
	if err != nil {
		s.logger.Error("Failed to process article", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		result.Error = err.Error()
		return result
	}
	result.Title = article.Title

	bookPath, err := s.packager.Package(article)
	if err != nil {
		s.logger.Error("Failed to package article", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		result.Error = err.Error()
		return result
	}
	result.BookPath = bookPath

	if err := s.sender.Send(ctx, kindleEmail, bookPath); err != nil {
		s.logger.Error("Failed to send e-book", map[string]interface{}{
			"url":   url,
			"to":    kindleEmail,
			"error": err.Error(),
		})
		result.Error = err.Error()
		return result
	}

	s.logger.Info("Delivered article", map[string]interface{}{
		"url":   url,
		"title": article.Title,
		"to":    kindleEmail,
	})
	return result
}
