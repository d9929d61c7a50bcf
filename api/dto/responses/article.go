// ABOUTME: Response DTOs for article processing and delivery endpoints
// ABOUTME: Maps domain objects to JSON, keeping binary image data out of responses

package responses

import (
	"kindle-press-api/core/delivery"
	"kindle-press-api/core/domain"
)

// ArticleResponse is the JSON shape of a processed article. Image bytes
// stay server-side; only their metadata is reported.
type ArticleResponse struct {
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	SourceURL string          `json:"sourceUrl,omitempty"`
	Images    []ImageMetadata `json:"images"`
}

// ImageMetadata describes one downloaded image asset.
type ImageMetadata struct {
	Filename  string `json:"filename"`
	SourceURL string `json:"sourceUrl"`
	SizeBytes int    `json:"sizeBytes"`
}

// NewArticleResponse maps a domain article to its response form.
func NewArticleResponse(article *domain.Article) ArticleResponse {
	images := make([]ImageMetadata, 0, len(article.Images))
	for _, asset := range article.Images {
		images = append(images, ImageMetadata{
			Filename:  asset.Filename,
			SourceURL: asset.SourceURL,
			SizeBytes: len(asset.Data),
		})
	}
	return ArticleResponse{
		Title:     article.Title,
		Content:   article.Content,
		SourceURL: article.SourceURL,
		Images:    images,
	}
}

// SendResponse reports per-URL delivery outcomes for a batch.
type SendResponse struct {
	Results []delivery.Result `json:"results"`
	Sent    int               `json:"sent"`
	Failed  int               `json:"failed"`
}

// NewSendResponse tallies delivery results into a response.
func NewSendResponse(results []delivery.Result) SendResponse {
	resp := SendResponse{Results: results}
	for _, r := range results {
		if r.Succeeded() {
			resp.Sent++
		} else {
			resp.Failed++
		}
	}
	return resp
}

// ErrorResponse is the JSON shape of any error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
