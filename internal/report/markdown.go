package report

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/Devon-White/grader/internal/checker"
)

var multiBlankLines = regexp.MustCompile(`\n{3,}`)

// WriteMarkdown renders the result as a markdown table, one row per
// selector, headed by the document title and source.
func WriteMarkdown(w io.Writer, title, source string, r *checker.Result) error {
	md, err := ConvertHTML(resultHTML(title, source, r))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md+"\n")
	return err
}

// ConvertHTML converts an HTML fragment to markdown with table support.
func ConvertHTML(fragment string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	md, err := conv.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("html-to-markdown conversion: %w", err)
	}

	return CleanMarkdown(md), nil
}

// CleanMarkdown normalizes whitespace in markdown output.
func CleanMarkdown(md string) string {
	// Collapse 3+ blank lines to 2
	md = multiBlankLines.ReplaceAllString(md, "\n\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.Join(lines, "\n")

	return strings.TrimSpace(md)
}

// escapePipes keeps selectors such as [lang|=en] inside one table cell.
// The table plugin does not escape "|" within code spans.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func resultHTML(title, source string, r *checker.Result) string {
	if title == "" {
		title = source
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>Checks: %s</h1>\n", html.EscapeString(title))
	fmt.Fprintf(&sb, "<p>Source: %s</p>\n", html.EscapeString(source))
	fmt.Fprintf(&sb, "<p>%d of %d selectors present.</p>\n", r.Passed(), r.Len())

	if r.Len() == 0 {
		return sb.String()
	}

	sb.WriteString("<table>\n<thead><tr><th>Selector</th><th>Present</th></tr></thead>\n<tbody>\n")
	for _, sel := range r.Keys() {
		present, _ := r.Get(sel)
		mark := "no"
		if present {
			mark = "yes"
		}
		fmt.Fprintf(&sb, "<tr><td><code>%s</code></td><td>%s</td></tr>\n", html.EscapeString(escapePipes(sel)), mark)
	}
	sb.WriteString("</tbody>\n</table>\n")
	return sb.String()
}
