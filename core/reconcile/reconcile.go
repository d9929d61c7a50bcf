// ABOUTME: Re-unifies downloaded images with the readability-cleaned document
// ABOUTME: Rewrites surviving img tags or synthesizes placements at a stride

package reconcile

import (
	"fmt"
	"strings"

	"kindle-press-api/core/domain"
	"kindle-press-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
)

// minTextBlockLength is the rendered-text threshold for a block element to
// qualify as a synthesis-mode insertion point.
const minTextBlockLength = 50

// defaultAltText is assigned to images without usable alt text.
const defaultAltText = "Article image"

// lazyAttrs are stripped from rewritten img elements so the offline
// document never references a remote variant.
var lazyAttrs = []string{"data-src", "data-srcset", "srcset", "loading"}

// Reconciler maps downloaded image assets onto placements within the
// cleaned document. Pure with respect to its inputs: the same cleaned HTML
// and asset list always produce the same output.
type Reconciler struct {
	logger interfaces.Logger
}

// NewReconciler creates a new reconciler
func NewReconciler(logger interfaces.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile returns the final article body. When the cleaned document
// still contains img elements, they are rewritten in place against the
// asset list; when the readability pass stripped them all, placements are
// synthesized by distributing assets across sufficiently long text blocks.
func (r *Reconciler) Reconcile(cleanedHTML string, assets []domain.ImageAsset) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanedHTML))
	if err != nil {
		return "", err
	}

	if doc.Find("img").Length() > 0 {
		rewritten, removed := r.rewriteExisting(doc, assets)
		r.logger.Debug("Rewrote image references", map[string]interface{}{
			"rewritten": rewritten,
			"removed":   removed,
		})
	} else if len(assets) > 0 {
		inserted := r.synthesize(doc, assets)
		r.logger.Debug("Synthesized image placements", map[string]interface{}{
			"inserted": inserted,
			"assets":   len(assets),
		})
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return cleanedHTML, nil
	}
	return body.Html()
}

// rewriteExisting points surviving img elements at the local asset copies
// and removes elements with no downloaded counterpart.
func (r *Reconciler) rewriteExisting(doc *goquery.Document, assets []domain.ImageAsset) (rewritten, removed int) {
	bySource := make(map[string]domain.ImageAsset, len(assets))
	for _, asset := range assets {
		bySource[asset.SourceURL] = asset
	}

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, exists := img.Attr("src")
		if !exists || strings.TrimSpace(src) == "" {
			src, _ = img.Attr("data-src")
		}
		src = strings.TrimSpace(src)

		asset, ok := bySource[src]
		if !ok {
			// No local copy: drop the element rather than leave a
			// dangling remote reference in the offline document.
			img.Remove()
			removed++
			return
		}

		img.SetAttr("src", "images/"+asset.Filename)
		if alt, hasAlt := img.Attr("alt"); !hasAlt || strings.TrimSpace(alt) == "" {
			img.SetAttr("alt", defaultAltText)
		}
		for _, attr := range lazyAttrs {
			img.RemoveAttr(attr)
		}
		rewritten++
	})

	return rewritten, removed
}

// synthesize distributes assets across eligible text blocks at a computed
// stride, consuming assets in download order. Trailing assets with no
// remaining insertion point stay in the bundle unreferenced.
func (r *Reconciler) synthesize(doc *goquery.Document, assets []domain.ImageAsset) int {
	candidates := doc.Find("p, h2, h3, h4, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return len(strings.TrimSpace(s.Text())) > minTextBlockLength
	})

	if candidates.Length() == 0 {
		return 0
	}

	stride := candidates.Length() / len(assets)
	if stride < 1 {
		stride = 1
	}

	inserted := 0
	candidates.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if inserted >= len(assets) {
			return false
		}
		if i%stride != 0 {
			return true
		}
		asset := assets[inserted]
		s.AfterHtml(fmt.Sprintf(
			`<figure><img src="images/%s" alt="%s"/></figure>`,
			asset.Filename, defaultAltText,
		))
		inserted++
		return true
	})

	return inserted
}
