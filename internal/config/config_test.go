package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSource_URLTakesPrecedence(t *testing.T) {
	cfg := Default()
	cfg.HTMLFile = "custom.html"
	cfg.URL = "http://example.com"

	src := cfg.Source()
	assert.Equal(t, SourceRemoteURL, src.Kind)
	assert.Equal(t, "http://example.com", src.Location)
}

func TestSource_LocalFileByDefault(t *testing.T) {
	cfg := Default()

	src := cfg.Source()
	assert.Equal(t, SourceLocalFile, src.Kind)
	assert.Equal(t, DefaultHTMLFile, src.Location)
	assert.Equal(t, "file:index.html", src.String())
}

func TestAssertFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, dir, "index.html", "<p>hi</p>")

	assert.NoError(t, AssertFileExists(existing))

	missing := filepath.Join(dir, "missing.html")
	err := AssertFileExists(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingFile))
	assert.Equal(t, missing+" does not exist. Exiting.", err.Error())

	var mfe *MissingFileError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, missing, mfe.Path)
}

func TestValidate_OK(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.ChecksFile = writeFile(t, dir, "checks.json", `["h1"]`)
	cfg.HTMLFile = writeFile(t, dir, "index.html", "<h1>Hi</h1>")

	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingChecksFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.ChecksFile = filepath.Join(dir, "nope.json")
	cfg.HTMLFile = writeFile(t, dir, "index.html", "<h1>Hi</h1>")

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestValidate_MissingHTMLFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.ChecksFile = writeFile(t, dir, "checks.json", `[]`)
	cfg.HTMLFile = filepath.Join(dir, "missing.html")

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, err.Error(), "missing.html")
}

func TestValidate_ChecksFileCheckedFirst(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.ChecksFile = filepath.Join(dir, "nope.json")
	cfg.HTMLFile = filepath.Join(dir, "missing.html")

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestValidate_URLSkipsHTMLFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.ChecksFile = writeFile(t, dir, "checks.json", `[]`)
	cfg.HTMLFile = filepath.Join(dir, "missing.html")
	cfg.URL = "http://example.com"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_BadOptions(t *testing.T) {
	dir := t.TempDir()
	checks := writeFile(t, dir, "checks.json", `[]`)

	cfg := Default()
	cfg.ChecksFile = checks
	cfg.URL = "http://example.com"
	cfg.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
	assert.False(t, errors.Is(err, ErrMissingFile))

	cfg.Format = FormatMarkdown
	cfg.Timeout = -1
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
