package extract

import (
	"strings"
	"testing"
)

const articleHTML = `<html>
<head><title>The Quiet Art of Repairing Old Bicycles</title></head>
<body>
	<nav><a href="/">Home</a> <a href="/about">About</a></nav>
	<article>
		<h1>The Quiet Art of Repairing Old Bicycles</h1>
		<p>There is a particular satisfaction in bringing a neglected bicycle back
		to life. The frame may be scratched and the chain rusted solid, but the
		underlying machine is almost always salvageable with patience and a small
		set of tools.</p>
		<p>Start with the wheels. A wheel that spins true is the foundation of
		everything else, and learning to read the wobble of a rim against a brake
		pad teaches you more about tension and balance than any manual will.</p>
		<p>Next comes the drivetrain. Degrease everything, inspect the teeth of
		each chainring, and replace the chain if it has stretched beyond the
		wear limit. Most shifting problems people live with for years disappear
		after an hour of careful cleaning and adjustment.</p>
		<p>Finally, cables and bearings. Fresh cables cost almost nothing and
		transform the feel of the controls, while repacked bearings let the
		bicycle roll the way its builders intended decades ago.</p>
	</article>
	<footer>Copyright 2024</footer>
</body>
</html>`

func TestReadable_ExtractsTitleAndContent(t *testing.T) {
	doc, err := Readable(articleHTML, "https://example.com/bicycles")
	if err != nil {
		t.Fatalf("Readable returned error: %v", err)
	}

	if doc.Title != "The Quiet Art of Repairing Old Bicycles" {
		t.Errorf("Title = %q", doc.Title)
	}
	if !strings.Contains(doc.Content, "drivetrain") {
		t.Error("cleaned content should retain body text")
	}
	if strings.Contains(doc.Content, "Copyright 2024") {
		t.Error("cleaned content should drop the footer")
	}
}

func TestReadable_EmptyBaseURL(t *testing.T) {
	doc, err := Readable(articleHTML, "")
	if err != nil {
		t.Fatalf("Readable returned error: %v", err)
	}
	if doc.Content == "" {
		t.Error("content should not be empty")
	}
}

func TestReadable_FallbackTitle(t *testing.T) {
	html := `<html><body><article>` +
		strings.Repeat("<p>Plenty of body text in this paragraph to satisfy the extraction threshold of the algorithm.</p>", 8) +
		`</article></body></html>`

	doc, err := Readable(html, "https://example.com/")
	if err != nil {
		t.Fatalf("Readable returned error: %v", err)
	}
	if doc.Title != fallbackTitle {
		t.Errorf("Title = %q, want %q", doc.Title, fallbackTitle)
	}
}
