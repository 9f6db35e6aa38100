package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fwojciec/repodoc"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if err := c.run(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *FetchCmd) run(deps *Dependencies) error {
	source := repodoc.DetectSource(c.URL)
	if c.Source != "" && c.Source != "auto" {
		var err error
		if source, err = repodoc.ParseSource(c.Source); err != nil {
			return err
		}
	}
	if c.Folder != "" && source != repodoc.SourceGitHub {
		return repodoc.Errorf(repodoc.EINVALID, "--folder is only supported for GitHub repositories")
	}

	fmt.Fprintf(deps.Stderr, "Fetching %s documentation from %s\n", source, c.URL)
	progress := newProgressPrinter(deps.Stderr)

	var files []*repodoc.FileContent
	var err error
	if c.Folder != "" {
		files, err = deps.Folders.GetFiles(deps.Ctx, c.URL, c.Folder, progress)
	} else {
		files, err = deps.Registry.GetAllFiles(deps.Ctx, source, c.URL, progress)
	}
	if err != nil {
		return err
	}

	content, err := deps.Registry.ConsolidateFiles(source, files)
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		if name, err = deps.Registry.FileName(source, c.URL, deps.Now()); err != nil {
			return err
		}
	}

	if err := deps.Registry.DownloadFile(deps.Ctx, content, name); err != nil {
		return err
	}

	export := &repodoc.Export{
		Source:      source,
		SourceURL:   c.URL,
		FileName:    name,
		ContentHash: ComputeHash(content),
		Files:       countWithContent(files),
		Bytes:       len(content),
	}

	if deps.Tokens != nil {
		tokens, err := deps.Tokens.CountTokens(deps.Ctx, content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: token count failed: %s\n", repodoc.ErrorMessage(err))
		} else {
			export.Tokens = tokens
		}
	}

	// The document is already on disk; a history failure is not fatal.
	if err := deps.Exports.CreateExport(deps.Ctx, export); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: could not record export: %s\n", repodoc.ErrorMessage(err))
	}

	printSummary(deps.Stdout, filepath.Join(deps.OutputDir, name), export)
	return nil
}

func countWithContent(files []*repodoc.FileContent) int {
	var n int
	for _, f := range files {
		if f != nil && f.Content != "" {
			n++
		}
	}
	return n
}

func printSummary(w io.Writer, path string, e *repodoc.Export) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("Saved"), path)
	fmt.Fprintf(w, "  %d files, %s", e.Files, FormatBytes(e.Bytes))
	if e.Tokens > 0 {
		fmt.Fprintf(w, ", %s", FormatTokens(e.Tokens))
	}
	fmt.Fprintf(w, " (hash %s)\n", e.ContentHash)
}

// newProgressPrinter renders progress events as one line per step or file.
func newProgressPrinter(w io.Writer) repodoc.ProgressFunc {
	var percent float64
	faint := color.New(color.Faint)
	return func(e repodoc.ProgressEvent) {
		switch e.Kind {
		case repodoc.ProgressPercent:
			percent = e.Percent
		case repodoc.ProgressCurrentFile:
			fmt.Fprintf(w, "%s %s\n", faint.Sprintf("[%3.0f%%]", percent), e.Name)
		case repodoc.ProgressFileComplete:
			fmt.Fprintf(w, "  %s %s\n", color.GreenString("✓"), e.Path)
		case repodoc.ProgressFileError:
			fmt.Fprintf(w, "  %s %s: %s\n", color.RedString("✗"), e.Path, e.Reason)
		}
	}
}
