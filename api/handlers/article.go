// ABOUTME: HTTP handlers for article processing and Kindle delivery
// ABOUTME: Decodes requests, drives the core services and writes JSON responses

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"kindle-press-api/api/dto/requests"
	"kindle-press-api/api/dto/responses"
	"kindle-press-api/core/delivery"
	"kindle-press-api/core/domain"
	"kindle-press-api/core/inbox"
	"kindle-press-api/core/interfaces"
)

// maxRequestBytes bounds incoming JSON bodies; raw HTML payloads can be
// large but a full page rarely passes a few megabytes.
const maxRequestBytes = 10 << 20

// DeliveryService sends batches of URLs to a Kindle address.
type DeliveryService interface {
	SendURLs(ctx context.Context, urls []string, kindleEmail string) []delivery.Result
}

// ArticleHandler handles article processing requests
type ArticleHandler struct {
	articles interfaces.ArticleService
	delivery DeliveryService
	logger   interfaces.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articles interfaces.ArticleService, delivery DeliveryService, logger interfaces.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		delivery: delivery,
		logger:   logger,
	}
}

// RegisterRoutes registers article routes on the mux.
func (h *ArticleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /process", h.Process)
	mux.HandleFunc("POST /send", h.Send)
}

// Process converts one document into a clean article with images.
func (h *ArticleHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req requests.ProcessArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	var article *domain.Article
	var err error
	if req.URL != "" {
		article, err = h.articles.ProcessURL(r.Context(), req.URL)
	} else {
		article, err = h.articles.ProcessHTML(r.Context(), req.HTML, req.BaseURL)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, responses.NewArticleResponse(article))
}

// Send processes a batch of URLs and emails the resulting e-books to a
// Kindle address. URLs may also be harvested from free-form text.
func (h *ArticleHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req requests.SendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	urls := req.URLs
	if req.Text != "" {
		urls = append(urls, inbox.ExtractURLs(req.Text)...)
	}
	if len(urls) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, responses.ErrorResponse{
			Error:   "no article links",
			Message: "the provided text contained no usable article links",
		})
		return
	}

	results := h.delivery.SendURLs(r.Context(), urls, req.KindleEmail)
	writeJSON(w, http.StatusOK, responses.NewSendResponse(results))
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, responses.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
