// Package fs writes consolidated documentation to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/repodoc"
)

// Ensure Downloader implements repodoc.Downloader at compile time.
var _ repodoc.Downloader = (*Downloader)(nil)

// Downloader saves documents into a directory with atomic replace
// semantics. Content is written to a temporary file next to the target,
// then renamed over it.
type Downloader struct {
	dir string
}

// NewDownloader creates a Downloader that writes into dir.
// The directory is created on first download if missing.
func NewDownloader(dir string) *Downloader {
	return &Downloader{dir: dir}
}

// Path returns the full path filename is written to.
func (d *Downloader) Path(filename string) string {
	return filepath.Join(d.dir, filename)
}

// Download writes content to filename inside the downloader's directory.
// Returns EINVALID if filename is empty or contains a path separator.
func (d *Downloader) Download(ctx context.Context, content, filename string) error {
	if err := validateFileName(filename); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, "."+filename+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, d.Path(filename)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

func validateFileName(filename string) error {
	switch {
	case strings.TrimSpace(filename) == "":
		return repodoc.Errorf(repodoc.EINVALID, "file name required")
	case strings.ContainsAny(filename, `/\`), filename == ".", filename == "..":
		return repodoc.Errorf(repodoc.EINVALID, "invalid file name %q", filename)
	}
	return nil
}
