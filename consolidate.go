package repodoc

import (
	"strconv"
	"strings"
	"time"
)

// Separator closes the header and every file section of a consolidated
// document.
const Separator = "---\n\n"

// ConsolidateOptions controls the labels of a consolidated document.
type ConsolidateOptions struct {
	// Title is the level-1 heading, e.g. "Documentação Consolidada".
	Title string

	// LocatorLabel prefixes each file's path or URL line.
	LocatorLabel string

	// CountLabel names the counted items in the summary line.
	CountLabel string

	// GeneratedAt is printed as the generation timestamp.
	GeneratedAt time.Time
}

// ConsolidateFiles merges files into one Markdown document in input order:
// a header with timestamp and file count, then one numbered section per file
// holding its locator and raw content, each closed by Separator.
// Callers must supply files in the desired final order.
func ConsolidateFiles(files []*FileContent, opts ConsolidateOptions) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(opts.Title)
	b.WriteString("\n\n")
	b.WriteString("Gerado em: ")
	b.WriteString(opts.GeneratedAt.Format("02/01/2006, 15:04:05"))
	b.WriteString("\n")
	b.WriteString("Total de ")
	b.WriteString(opts.CountLabel)
	b.WriteString(": ")
	b.WriteString(strconv.Itoa(len(files)))
	b.WriteString("\n\n")
	b.WriteString(Separator)

	for i, f := range files {
		b.WriteString("## ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(f.Name)
		b.WriteString("\n\n**")
		b.WriteString(opts.LocatorLabel)
		b.WriteString(":** ")
		b.WriteString(f.Path)
		b.WriteString("\n\n")
		b.WriteString(f.Content)
		b.WriteString("\n\n")
		b.WriteString(Separator)
	}

	return b.String()
}
