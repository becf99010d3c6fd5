package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Devon-White/grader/internal/checker"
	"github.com/Devon-White/grader/internal/config"
)

// WriteJSON writes the result as a JSON object indented with four spaces,
// followed by a newline.
func WriteJSON(w io.Writer, r *checker.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Write renders the result in the given format.
func Write(w io.Writer, format, title, source string, r *checker.Result) error {
	switch format {
	case config.FormatJSON, "":
		return WriteJSON(w, r)
	case config.FormatMarkdown:
		return WriteMarkdown(w, title, source, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteFile renders the result to path, creating parent directories.
func WriteFile(path, format, title, source string, r *checker.Result) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, title, source, r); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
