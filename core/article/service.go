// ABOUTME: Service layer implementation for the article processing pipeline
// ABOUTME: Sequences locate, extract, download and reconcile for one document

package article

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"kindle-press-api/core/domain"
	coreerrors "kindle-press-api/core/errors"
	"kindle-press-api/core/extract"
	"kindle-press-api/core/images"
	"kindle-press-api/core/interfaces"
	"kindle-press-api/core/reconcile"
)

// maxDocumentBytes caps how much of a top-level page is read.
const maxDocumentBytes = 10 << 20

// Config holds the pipeline's tunables.
type Config struct {
	// ContentSelectors is the ordered priority list for locating the
	// main content region in original documents.
	ContentSelectors []string

	// Images constrains image normalization.
	Images images.FetcherConfig

	// Concurrency bounds the parallel image download workers.
	Concurrency int

	// CacheTTL is how long processed articles are cached. Zero disables
	// expiry.
	CacheTTL time.Duration
}

// Service runs the content-extraction pipeline.
type Service struct {
	deps       interfaces.Dependencies
	fetcher    *images.Fetcher
	locator    *extract.Locator
	reconciler *reconcile.Reconciler
	config     Config
}

// NewService creates a new article service
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Service{
		deps:       deps,
		fetcher:    images.NewFetcher(deps.HTTPClient, deps.Logger, cfg.Images),
		locator:    extract.NewLocator(cfg.ContentSelectors, deps.Logger),
		reconciler: reconcile.NewReconciler(deps.Logger),
		config:     cfg,
	}
}

// ProcessURL fetches a page and runs the pipeline over it. A transport
// failure or non-2xx status on the top-level fetch is fatal for the run
// and surfaces as a DocumentFetchError; individual image failures never
// are.
func (s *Service) ProcessURL(ctx context.Context, url string) (*domain.Article, error) {
	if cached := s.cachedArticle(ctx, url); cached != nil {
		s.deps.Logger.Info("Article cache hit", map[string]interface{}{"url": url})
		return cached, nil
	}

	s.deps.Logger.Info("Fetching article", map[string]interface{}{"url": url})

	resp, err := s.deps.HTTPClient.Get(ctx, url)
	if err != nil {
		return nil, &coreerrors.DocumentFetchError{URL: url, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &coreerrors.DocumentFetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	rawHTML, err := io.ReadAll(io.LimitReader(resp.Body(), maxDocumentBytes))
	if err != nil {
		return nil, &coreerrors.DocumentFetchError{URL: url, Err: err}
	}

	article, err := s.ProcessHTML(ctx, string(rawHTML), url)
	if err != nil {
		return nil, err
	}

	s.cacheArticle(ctx, url, article)
	return article, nil
}

// ProcessHTML runs the pipeline over raw HTML that is already in hand
// (e.g. an email body). baseURL anchors relative link resolution and may
// be empty.
func (s *Service) ProcessHTML(ctx context.Context, rawHTML, baseURL string) (*domain.Article, error) {
	imageURLs := s.locator.LocateImages(rawHTML, baseURL)

	readable, err := extract.Readable(rawHTML, baseURL)
	if err != nil {
		return nil, &coreerrors.ExtractionError{URL: baseURL, Err: err}
	}

	assets := s.downloadImages(ctx, imageURLs, baseURL)

	finalHTML, err := s.reconciler.Reconcile(readable.Content, assets)
	if err != nil {
		return nil, coreerrors.WrapError(err, "failed to reconcile images")
	}

	s.deps.Logger.Info("Article processed", map[string]interface{}{
		"url":    baseURL,
		"title":  readable.Title,
		"images": len(assets),
	})

	return &domain.Article{
		Title:     readable.Title,
		Content:   finalHTML,
		Images:    assets,
		SourceURL: baseURL,
	}, nil
}

// downloadImages fetches located image URLs on a bounded worker pool.
// Results keep discovery order, never completion order, and each asset's
// filename index is reserved from its discovery position before any fetch
// starts: a failed download leaves a gap rather than shifting later names.
func (s *Service) downloadImages(ctx context.Context, urls []string, referrer string) []domain.ImageAsset {
	if len(urls) == 0 {
		return nil
	}

	results := make([][]byte, len(urls))
	sem := make(chan struct{}, s.config.Concurrency)
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if data, ok := s.fetcher.Fetch(ctx, url, referrer); ok {
				results[i] = data
			}
		}(i, url)
	}
	wg.Wait()

	assets := make([]domain.ImageAsset, 0, len(urls))
	for i, data := range results {
		if data == nil {
			continue
		}
		assets = append(assets, domain.ImageAsset{
			Filename:  fmt.Sprintf("image_%d.jpg", i),
			Data:      data,
			SourceURL: urls[i],
		})
	}
	return assets
}

// cachedArticle returns a previously processed article for the URL, if any.
func (s *Service) cachedArticle(ctx context.Context, url string) *domain.Article {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, articleCacheKey(url))
	if err != nil || data == nil {
		return nil
	}
	var article domain.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil
	}
	return &article
}

// cacheArticle stores a processed article keyed by URL hash.
func (s *Service) cacheArticle(ctx context.Context, url string, article *domain.Article) {
	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(article)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, articleCacheKey(url), data, s.config.CacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache article", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

func articleCacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "article:" + hex.EncodeToString(sum[:])
}
