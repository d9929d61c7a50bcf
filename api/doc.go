// Package api provides the HTTP API layer for the Kindle Press application.
// It wires net/http handlers behind a middleware chain for CORS, request
// logging and per-IP rate limiting.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Handler assembly and middleware chain
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
// POST /process converts one document into a clean article:
//
//	{"url": "https://example.com/post"}
//	{"html": "<html>...</html>", "baseUrl": "https://example.com/post"}
//
// POST /send processes a batch of URLs and emails the resulting e-books
// to a Kindle address. URLs may be listed directly or harvested from
// free-form text:
//
//	{"urls": ["https://example.com/post"], "kindleEmail": "me@kindle.com"}
//	{"text": "forwarded newsletter body", "kindleEmail": "me@kindle.com"}
//
// GET /health reports liveness.
//
// # Error Handling
//
// Domain errors are mapped to HTTP status codes: validation failures
// become 400, upstream fetch failures become 502, and extraction
// failures become 422. Every error response carries a JSON body:
//
//	{"error": "document fetch failed", "message": "..."}
package api
