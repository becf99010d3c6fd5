package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// CLI defaults and report formats.
const (
	DefaultChecksFile = "checks.json"
	DefaultHTMLFile   = "index.html"
	DefaultUserAgent  = "grader/1.0"
	DefaultTimeout    = 30 * time.Second

	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrMissingFile is matched by every *MissingFileError.
var ErrMissingFile = errors.New("file does not exist")

// MissingFileError reports a required local file that does not exist.
type MissingFileError struct {
	Path string
}

// Error returns the diagnostic printed before exiting.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s does not exist. Exiting.", e.Path)
}

// Is matches ErrMissingFile.
func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

// Config holds all CLI options for a grader run.
type Config struct {
	ChecksFile string
	HTMLFile   string
	URL        string // takes precedence over HTMLFile when set
	Format     string // json or markdown
	Output     string // report path; empty = stdout
	UserAgent  string
	Timeout    time.Duration // 0 = no client timeout
	Verbose    bool
}

// Default returns a Config populated with the CLI defaults.
func Default() Config {
	return Config{
		ChecksFile: DefaultChecksFile,
		HTMLFile:   DefaultHTMLFile,
		Format:     FormatJSON,
		UserAgent:  DefaultUserAgent,
		Timeout:    DefaultTimeout,
	}
}

// Source resolves where the document comes from. A URL always wins.
func (c *Config) Source() Source {
	if c.URL != "" {
		return RemoteURL(c.URL)
	}
	return LocalFile(c.HTMLFile)
}

// Validate checks option values and that the required local files exist.
// The HTML file is only checked when it is the selected source: with a URL
// the local file is never read, so an explicit --file is not validated.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatJSON, FormatMarkdown)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	if err := AssertFileExists(c.ChecksFile); err != nil {
		return err
	}
	if src := c.Source(); src.Kind == SourceLocalFile {
		if err := AssertFileExists(src.Location); err != nil {
			return err
		}
	}
	return nil
}

// AssertFileExists returns a *MissingFileError if path cannot be stat'ed.
func AssertFileExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &MissingFileError{Path: path}
	}
	return nil
}
