package checker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	// ErrConfigParse wraps a checks file that is not a JSON array of strings.
	ErrConfigParse = errors.New("invalid checks file")
	// ErrSelectorSyntax wraps a selector the query engine cannot compile.
	ErrSelectorSyntax = errors.New("invalid selector")
)

// LoadChecksFile reads a JSON array of selector strings from path.
func LoadChecksFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening checks file %s: %w", path, err)
	}
	defer f.Close()

	checks, err := LoadChecks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return checks, nil
}

// LoadChecks decodes a JSON array of selector strings. Order and duplicates
// are preserved as written.
func LoadChecks(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)

	var checks *[]string
	if err := dec.Decode(&checks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	if checks == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of strings, got null", ErrConfigParse)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON array", ErrConfigParse)
	}
	return *checks, nil
}

// Compile parses a CSS selector. Unlike goquery.Find, which treats a bad
// selector as matching nothing, the syntax error is returned.
func Compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSelectorSyntax, selector, err)
	}
	return sel, nil
}

// Check evaluates every selector against doc in lexicographic order and
// records whether it matches at least one node. The caller's slice is not
// modified.
func Check(doc *goquery.Document, selectors []string) (*Result, error) {
	sorted := make([]string, len(selectors))
	copy(sorted, selectors)
	sort.Strings(sorted)

	result := NewResult()
	for _, s := range sorted {
		sel, err := Compile(s)
		if err != nil {
			return nil, err
		}
		result.Set(s, doc.FindMatcher(sel).Length() > 0)
	}
	return result, nil
}

// CheckFile loads the checks file at path and evaluates it against doc.
func CheckFile(doc *goquery.Document, path string) (*Result, error) {
	checks, err := LoadChecksFile(path)
	if err != nil {
		return nil, err
	}
	return Check(doc, checks)
}
