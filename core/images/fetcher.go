// ABOUTME: Downloads candidate images and normalizes them for e-reader display
// ABOUTME: Flattens transparency onto white, downsizes to device maxima, re-encodes JPEG

package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"kindle-press-api/core/interfaces"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// maxResponseBytes caps how much image data is read from one response.
const maxResponseBytes = 20 << 20

// minDimension is the smallest acceptable post-resize dimension; anything
// under it is treated as a tracking pixel.
const minDimension = 10

// FetcherConfig holds image normalization constraints.
type FetcherConfig struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Fetcher retrieves candidate images over HTTP and normalizes them into
// Kindle-displayable JPEG bytes.
type Fetcher struct {
	client interfaces.HTTPClient
	logger interfaces.Logger
	config FetcherConfig
}

// NewFetcher creates a new image fetcher
func NewFetcher(client interfaces.HTTPClient, logger interfaces.Logger, config FetcherConfig) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger,
		config: config,
	}
}

// Fetch downloads and normalizes one image. The second return value is
// false whenever the image should be skipped: gated URL, transport failure
// after retries, non-2xx status, non-image content type, undecodable
// bytes, or a too-small result. These are expected failure modes, not
// errors; the pipeline continues without the image.
func (f *Fetcher) Fetch(ctx context.Context, url, referrer string) ([]byte, bool) {
	// Gate check is authoritative at extraction time; this second guard
	// keeps a directly-invoked fetch from pulling chrome images.
	if !IsWorthDownloading(url) {
		return nil, false
	}

	var headers map[string]string
	if referrer != "" {
		headers = map[string]string{"Referer": referrer}
	}

	resp, err := f.client.GetWithHeaders(ctx, url, headers)
	if err != nil {
		f.logger.Warn("Image download failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, false
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		f.logger.Debug("Image request returned non-2xx status", map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode(),
		})
		return nil, false
	}

	contentType := strings.ToLower(resp.Header("Content-Type"))
	if !strings.HasPrefix(contentType, "image/") {
		f.logger.Debug("Skipping non-image content", map[string]interface{}{
			"url":          url,
			"content_type": contentType,
		})
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body(), maxResponseBytes))
	if err != nil {
		f.logger.Warn("Failed to read image body", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, false
	}

	encoded, ok := f.normalize(data)
	if !ok {
		f.logger.Debug("Image rejected during normalization", map[string]interface{}{
			"url": url,
		})
		return nil, false
	}

	f.logger.Debug("Image processed", map[string]interface{}{
		"url":   url,
		"bytes": len(encoded),
	})
	return encoded, true
}

// normalize decodes raw image bytes, flattens them onto a white RGB
// canvas, downsizes to the configured device maxima and re-encodes as
// JPEG. Returns false for undecodable or tracking-pixel-sized images.
func (f *Fetcher) normalize(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	// Kindle displays do not composite alpha, so transparent and
	// palette-indexed images are flattened onto white. Opaque images pass
	// through the same draw unchanged.
	flattened := flattenToRGB(img)

	resized := f.downscale(flattened)

	bounds := resized.Bounds()
	if bounds.Dx() < minDimension || bounds.Dy() < minDimension {
		return nil, false
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: f.config.Quality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// flattenToRGB composites src onto a white background.
func flattenToRGB(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// downscale shrinks the image to fit within the configured maxima,
// preserving aspect ratio. Images already within bounds are never
// upscaled.
func (f *Fetcher) downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= f.config.MaxWidth && h <= f.config.MaxHeight {
		return img
	}

	ratioW := float64(f.config.MaxWidth) / float64(w)
	ratioH := float64(f.config.MaxHeight) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}

	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	return resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
}
