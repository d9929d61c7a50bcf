// Package core contains the business logic for the Kindle Press API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Article, ImageAsset)
// - article: The processing pipeline that turns a page into a clean article
// - extract: Content-region image location and readability extraction
// - images: Image gating, fetching and normalization
// - reconcile: Merging downloaded images back into the cleaned document
// - inbox: URL harvesting from free-form text such as email bodies
// - delivery: Process-package-send chains for Kindle delivery
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "kindle-press-api/core/article"
//	    "kindle-press-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	articleService := article.NewService(deps, article.Config{
//	    ContentSelectors: config.DefaultContentSelectors(),
//	})
//
//	// Process a page
//	result, err := articleService.ProcessURL(ctx, "https://example.com/post")
package core
