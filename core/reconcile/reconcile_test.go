package reconcile

import (
	"fmt"
	"strings"
	"testing"

	"kindle-press-api/core/domain"
)

// nopLogger implements interfaces.Logger
type nopLogger struct{}

func (l *nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *nopLogger) Info(msg string, fields map[string]interface{})  {}
func (l *nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *nopLogger) Error(msg string, fields map[string]interface{}) {}

func newTestReconciler() *Reconciler {
	return NewReconciler(&nopLogger{})
}

func asset(index int, sourceURL string) domain.ImageAsset {
	return domain.ImageAsset{
		Filename:  fmt.Sprintf("image_%d.jpg", index),
		Data:      []byte{0xff, 0xd8},
		SourceURL: sourceURL,
	}
}

func TestReconcile_RewriteMode_MatchingImage(t *testing.T) {
	html := `<p>Intro text</p><img src="http://a/x.jpg" data-src="http://a/x.jpg" srcset="http://a/x-2.jpg 2x" loading="lazy"><p>More text</p>`
	assets := []domain.ImageAsset{asset(0, "http://a/x.jpg")}

	out, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if !strings.Contains(out, `src="images/image_0.jpg"`) {
		t.Errorf("output missing local src rewrite: %s", out)
	}
	for _, attr := range []string{"data-src", "data-srcset", "srcset", "loading"} {
		if strings.Contains(out, attr) {
			t.Errorf("output still contains %s attribute: %s", attr, out)
		}
	}
	if !strings.Contains(out, `alt="Article image"`) {
		t.Errorf("output missing normalized alt text: %s", out)
	}
}

func TestReconcile_RewriteMode_KeepsExistingAlt(t *testing.T) {
	html := `<img src="http://a/x.jpg" alt="A mountain at dusk">`
	assets := []domain.ImageAsset{asset(0, "http://a/x.jpg")}

	out, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if !strings.Contains(out, `alt="A mountain at dusk"`) {
		t.Errorf("existing alt text was replaced: %s", out)
	}
}

func TestReconcile_RewriteMode_UnmatchedImageRemoved(t *testing.T) {
	html := `<p>Text</p><img src="http://a/gone.jpg"><img src="http://a/x.jpg">`
	assets := []domain.ImageAsset{asset(0, "http://a/x.jpg")}

	out, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if strings.Contains(out, "gone.jpg") {
		t.Errorf("unmatched img should be removed entirely: %s", out)
	}
	if !strings.Contains(out, `src="images/image_0.jpg"`) {
		t.Errorf("matched img should be rewritten: %s", out)
	}
}

func TestReconcile_RewriteMode_MatchesOnDataSrc(t *testing.T) {
	html := `<img data-src="http://a/lazy.jpg">`
	assets := []domain.ImageAsset{asset(0, "http://a/lazy.jpg")}

	out, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if !strings.Contains(out, `src="images/image_0.jpg"`) {
		t.Errorf("data-src match should be rewritten: %s", out)
	}
	if strings.Contains(out, "data-src") {
		t.Errorf("data-src attribute should be stripped: %s", out)
	}
}

func TestReconcile_RewriteMode_NoAssetsRemovesAllImages(t *testing.T) {
	html := `<p>Text</p><img src="http://a/x.jpg">`

	out, err := newTestReconciler().Reconcile(html, nil)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if strings.Contains(out, "<img") {
		t.Errorf("all unreferenced imgs should be removed: %s", out)
	}
	if !strings.Contains(out, "Text") {
		t.Errorf("surrounding content should survive: %s", out)
	}
}

func longBlock(n int) string {
	return fmt.Sprintf("<p>Paragraph %d with enough characters of running text to count as an eligible insertion point.</p>", n)
}

func TestReconcile_SynthesisMode_StridePlacement(t *testing.T) {
	// 10 eligible blocks, 2 images: stride 5, insertions after blocks 0 and 5.
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString(longBlock(i))
	}
	assets := []domain.ImageAsset{
		asset(0, "http://a/0.jpg"),
		asset(1, "http://a/1.jpg"),
	}

	out, err := newTestReconciler().Reconcile(sb.String(), assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if got := strings.Count(out, "<figure>"); got != 2 {
		t.Fatalf("inserted %d figures, want 2: %s", got, out)
	}

	// image_0 goes after block 0, image_1 after block 5, in asset order.
	p0 := strings.Index(out, "Paragraph 0")
	i0 := strings.Index(out, "images/image_0.jpg")
	p1 := strings.Index(out, "Paragraph 1 ")
	if !(p0 < i0 && i0 < p1) {
		t.Errorf("image_0 not placed directly after block 0: %s", out)
	}

	p5 := strings.Index(out, "Paragraph 5")
	i1 := strings.Index(out, "images/image_1.jpg")
	p6 := strings.Index(out, "Paragraph 6")
	if !(p5 < i1 && i1 < p6) {
		t.Errorf("image_1 not placed directly after block 5: %s", out)
	}
}

func TestReconcile_SynthesisMode_MoreImagesThanBlocks(t *testing.T) {
	html := longBlock(0) + longBlock(1)
	assets := []domain.ImageAsset{
		asset(0, "http://a/0.jpg"),
		asset(1, "http://a/1.jpg"),
		asset(2, "http://a/2.jpg"),
	}

	out, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	// Stride clamps to 1; only as many images as insertion points fit.
	if got := strings.Count(out, "<figure>"); got != 2 {
		t.Errorf("inserted %d figures, want 2: %s", got, out)
	}
	if strings.Contains(out, "images/image_2.jpg") {
		t.Errorf("trailing image should stay unreferenced: %s", out)
	}
}

func TestReconcile_SynthesisMode_ShortBlocksIneligible(t *testing.T) {
	html := `<p>Too short.</p><h2>Hi</h2>` + longBlock(0)
	assets := []domain.ImageAsset{asset(0, "http://a/0.jpg")}

	out, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if got := strings.Count(out, "<figure>"); got != 1 {
		t.Fatalf("inserted %d figures, want 1: %s", got, out)
	}
	// The single figure must follow the long block, not the short ones.
	idx := strings.Index(out, "images/image_0.jpg")
	long := strings.Index(out, "Paragraph 0")
	if idx < long {
		t.Errorf("image inserted after an ineligible block: %s", out)
	}
}

func TestReconcile_NoImagesNoImgTags_ContentUntouched(t *testing.T) {
	html := longBlock(0) + longBlock(1)

	out, err := newTestReconciler().Reconcile(html, nil)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if strings.Contains(out, "<img") || strings.Contains(out, "<figure>") {
		t.Errorf("nothing should be inserted without assets: %s", out)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	html := `<p>Intro</p><img src="http://a/x.jpg"><img src="http://a/y.jpg">` + longBlock(0)
	assets := []domain.ImageAsset{asset(0, "http://a/x.jpg")}

	first, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	second, err := newTestReconciler().Reconcile(html, assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if first != second {
		t.Errorf("reconcile is not deterministic:\n%s\nvs\n%s", first, second)
	}
}

func TestReconcile_RoundTrip_NoDanglingReferences(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 6; i++ {
		sb.WriteString(longBlock(i))
	}
	assets := []domain.ImageAsset{
		asset(0, "http://a/0.jpg"),
		asset(1, "http://a/1.jpg"),
		asset(2, "http://a/2.jpg"),
	}

	out, err := newTestReconciler().Reconcile(sb.String(), assets)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	known := make(map[string]bool)
	for _, a := range assets {
		known["images/"+a.Filename] = true
	}

	rest := out
	for {
		idx := strings.Index(rest, `src="`)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(`src="`):]
		end := strings.Index(rest, `"`)
		if end < 0 {
			t.Fatalf("unterminated src attribute in %s", out)
		}
		ref := rest[:end]
		if !known[ref] {
			t.Errorf("dangling reference %q in output", ref)
		}
	}
}
