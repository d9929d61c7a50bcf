// ABOUTME: Domain models for extracted articles and their image assets
// ABOUTME: Defines the pipeline output handed to the packaging layer

package domain

// Article represents a fully processed article ready for packaging.
// It is immutable after construction; the caller owns it until the
// e-book container is built.
type Article struct {
	Title     string       `json:"title"`
	Content   string       `json:"content"` // final HTML body
	Images    []ImageAsset `json:"images"`
	SourceURL string       `json:"sourceUrl"`
}

// ImageAsset is a downloaded, normalized image. Filename is unique within
// one article and assigned from the discovery-order index before any
// download starts. SourceURL is the absolute URL the image was fetched
// from; the reconciler uses it to map cleaned-document references back to
// the correct asset.
type ImageAsset struct {
	Filename  string `json:"filename"`
	Data      []byte `json:"data"`
	SourceURL string `json:"sourceUrl"`
}
