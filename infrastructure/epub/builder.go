// ABOUTME: Packages processed articles into EPUB files for Kindle delivery
// ABOUTME: Embeds downloaded image assets and rewrites body references to them

package epub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	goepub "github.com/go-shiori/go-epub"

	"kindle-press-api/core/domain"
	"kindle-press-api/core/interfaces"
)

// maxTitleChars bounds how much of the article title goes into the
// output filename.
const maxTitleChars = 30

const articleCSS = `body {
	font-family: serif;
	line-height: 1.5;
	margin: 1em;
}
h1 {
	font-size: 1.4em;
	margin-bottom: 0.3em;
}
.source-url {
	font-size: 0.8em;
	color: #555;
	margin-bottom: 1em;
}
figure {
	margin: 1em 0;
	text-align: center;
}
img {
	max-width: 100%;
}`

// Builder implements the Packager interface using go-epub
type Builder struct {
	outputDir string
	logger    interfaces.Logger
}

// NewBuilder creates a builder that writes EPUB files under outputDir.
func NewBuilder(outputDir string, logger interfaces.Logger) *Builder {
	return &Builder{
		outputDir: outputDir,
		logger:    logger,
	}
}

// Package writes the article as an EPUB file and returns the path it was
// written to. Image assets are embedded and every src="images/<filename>"
// reference in the body is rewritten to the embedded copy.
func (b *Builder) Package(article *domain.Article) (string, error) {
	book, err := goepub.NewEpub(article.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create e-book: %w", err)
	}
	book.SetLang("en")
	book.SetAuthor("Kindle Press")
	if article.SourceURL != "" {
		book.SetIdentifier(article.SourceURL)
	}

	// go-epub resolves asset sources from the filesystem, so assets are
	// staged in a temp dir first.
	staging, err := os.MkdirTemp("", "kindle-press-epub-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	cssPath := filepath.Join(staging, "article.css")
	if err := os.WriteFile(cssPath, []byte(articleCSS), 0o644); err != nil {
		return "", fmt.Errorf("failed to stage stylesheet: %w", err)
	}
	internalCSS, err := book.AddCSS(cssPath, "article.css")
	if err != nil {
		return "", fmt.Errorf("failed to embed stylesheet: %w", err)
	}

	body := article.Content
	for _, asset := range article.Images {
		assetPath := filepath.Join(staging, asset.Filename)
		if err := os.WriteFile(assetPath, asset.Data, 0o644); err != nil {
			return "", fmt.Errorf("failed to stage image %s: %w", asset.Filename, err)
		}
		internalPath, err := book.AddImage(assetPath, asset.Filename)
		if err != nil {
			return "", fmt.Errorf("failed to embed image %s: %w", asset.Filename, err)
		}
		body = strings.ReplaceAll(body, `src="images/`+asset.Filename+`"`, `src="`+internalPath+`"`)
	}

	section := b.sectionHTML(article, body)
	if _, err := book.AddSection(section, article.Title, "article.xhtml", internalCSS); err != nil {
		return "", fmt.Errorf("failed to add article section: %w", err)
	}

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	outputPath := filepath.Join(b.outputDir, b.outputFilename(article.Title))
	if err := book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write e-book: %w", err)
	}

	b.logger.Info("Packaged article", map[string]interface{}{
		"title":  article.Title,
		"path":   outputPath,
		"images": len(article.Images),
	})
	return outputPath, nil
}

// sectionHTML builds the single content section: title, source citation,
// then the reconciled article body.
func (b *Builder) sectionHTML(article *domain.Article, body string) string {
	var sb strings.Builder
	sb.WriteString("<h1>")
	sb.WriteString(escapeText(article.Title))
	sb.WriteString("</h1>\n")
	if article.SourceURL != "" {
		sb.WriteString(`<div class="source-url">Source: `)
		sb.WriteString(escapeText(article.SourceURL))
		sb.WriteString("</div>\n<hr/>\n")
	}
	sb.WriteString(body)
	return sb.String()
}

// outputFilename derives a filesystem-safe name from the article title
// plus a timestamp so repeated runs never collide.
func (b *Builder) outputFilename(title string) string {
	safe := make([]rune, 0, maxTitleChars)
	for _, r := range title {
		if len(safe) >= maxTitleChars {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			safe = append(safe, r)
		case r == ' ':
			safe = append(safe, '_')
		}
	}
	if len(safe) == 0 {
		safe = []rune("article")
	}
	return fmt.Sprintf("%s_%d.epub", string(safe), time.Now().Unix())
}

func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}
