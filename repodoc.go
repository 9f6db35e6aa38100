// Package repodoc consolidates documentation into a single Markdown file.
// It fetches documentation files from a GitHub repository, or from an
// arbitrary website through a crawling service, and merges them into one
// document suitable for feeding to an LLM.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., github/, firecrawl/, sqlite/).
package repodoc
