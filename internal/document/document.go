package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Devon-White/grader/internal/config"
)

// Fetcher retrieves a remote document body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolve loads and parses the document named by src. A remote source is
// fetched exactly once; a local source is read from disk. Fetch errors are
// returned unwrapped so callers can match them.
func Resolve(ctx context.Context, src config.Source, f Fetcher) (*goquery.Document, error) {
	switch src.Kind {
	case config.SourceRemoteURL:
		body, err := f.Fetch(ctx, src.Location)
		if err != nil {
			return nil, err
		}
		return ParseBytes(body)
	case config.SourceLocalFile:
		body, err := os.ReadFile(src.Location)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", src.Location, err)
		}
		return ParseBytes(body)
	default:
		return nil, fmt.Errorf("unknown source kind %v", src.Kind)
	}
}

// ParseBytes parses raw HTML. Input with no tags or text, only whitespace,
// comments or a doctype, yields a document with no nodes, so no selector
// matches it. Anything else gets the implied html/head/body skeleton.
func ParseBytes(data []byte) (*goquery.Document, error) {
	if !hasContent(data) {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode}), nil
	}
	return Parse(bytes.NewReader(data))
}

// hasContent reports whether data holds a tag or non-whitespace text.
func hasContent(data []byte) bool {
	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			return true
		case html.TextToken:
			if len(bytes.TrimSpace(z.Text())) > 0 {
				return true
			}
		}
	}
}

// Parse parses HTML from r.
func Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Title returns the page title, falling back to the first h1.
func Title(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	return title
}
