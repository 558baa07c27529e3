// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/bonial-oss/cve-triage/internal/types"
)

const maxDescriptionWords = 12

// TableConfig controls sorting and styling of the table output.
type TableConfig struct {
	SortBy     string // "priority", "epss", "cvss", "cve", "" (preserve order)
	IsTerminal bool   // true when output goes to a terminal (enables ANSI styling)
}

// IsOutputToTerminal returns true if the writer is stdout connected to a
// character device (TTY).
func IsOutputToTerminal(output io.Writer) bool {
	return output == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// resultRef holds a reference to a row for table rendering.
type resultRef struct {
	row   *types.ResultRow
	index int // original index for stable sort
}

// WriteTable renders the enrichment rows as a table with a summary
// header line.
func WriteTable(w io.Writer, rows []types.ResultRow, cfg TableConfig) error {
	writeHeader(w, rows, cfg.IsTerminal)

	refs := make([]resultRef, len(rows))
	for i := range rows {
		refs[i] = resultRef{row: &rows[i], index: i}
	}
	sortRows(refs, cfg.SortBy)

	tw := newTableWriter(w, cfg.IsTerminal)
	tw.SetHeaders("CVE", "CVSS", "EPSS", "Exploited", "Priority", "Asset", "Description")
	for _, ref := range refs {
		tw.AddRow(rowCells(ref.row, cfg)...)
	}
	tw.Render()

	return nil
}

// writeHeader writes the title and summary line above the table.
func writeHeader(w io.Writer, rows []types.ResultRow, isTerminal bool) {
	const title = "Enriched Vulnerabilities"
	if isTerminal {
		_ = tml.Fprintf(w, "<underline><bold>%s</bold></underline>\n", title)
	} else {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(title)))
	}
	fmt.Fprintln(w, summary(rows))
	fmt.Fprintln(w)
}

// summary returns a line like:
// Total: 5 (exploited in wild: 2)
func summary(rows []types.ResultRow) string {
	var exploited int
	for _, row := range rows {
		if row.ExploitedInWild == "Yes" {
			exploited++
		}
	}
	return fmt.Sprintf("Total: %d (exploited in wild: %d)", len(rows), exploited)
}

// newTableWriter creates a table writer with borders, auto-merge, and
// row separators. When isTerminal is true, header and line styles use
// ANSI formatting.
func newTableWriter(w io.Writer, isTerminal bool) *aqtable.Table {
	tw := aqtable.New(w)
	if isTerminal {
		tw.SetHeaderStyle(aqtable.StyleBold)
		tw.SetLineStyle(aqtable.StyleDim)
	}
	tw.SetBorders(true)
	tw.SetAutoMerge(true)
	tw.SetRowLines(true)
	return tw
}

// rowCells returns the cell values for a single row.
func rowCells(row *types.ResultRow, cfg TableConfig) []string {
	exploited := row.ExploitedInWild
	priority := strconv.FormatFloat(row.PriorityScore, 'f', 3, 64)
	if cfg.IsTerminal {
		exploited = colorizeExploited(exploited)
		priority = colorizePriority(priority, row.PriorityScore)
	}
	return []string{
		row.CVEID,
		row.CVSSBase,
		row.EPSS,
		exploited,
		priority,
		row.DetectedOnAsset,
		truncateWords(row.DescriptionShort, maxDescriptionWords),
	}
}

var (
	exploitedColor = color.New(color.FgRed).SprintFunc()
	urgentColor    = color.New(color.FgRed).SprintFunc()
	highColor      = color.New(color.FgHiRed).SprintFunc()
	mediumColor    = color.New(color.FgYellow).SprintFunc()
	lowColor       = color.New(color.FgBlue).SprintFunc()
)

func colorizeExploited(v string) string {
	if v == "Yes" {
		return exploitedColor(v)
	}
	return v
}

func colorizePriority(text string, score float64) string {
	switch {
	case score >= 0.9:
		return urgentColor(text)
	case score >= 0.7:
		return highColor(text)
	case score >= 0.4:
		return mediumColor(text)
	default:
		return lowColor(text)
	}
}

// sortRows sorts the rows based on the given sort key.
func sortRows(refs []resultRef, sortBy string) {
	switch sortBy {
	case "priority":
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].row.PriorityScore > refs[j].row.PriorityScore
		})
	case "epss":
		sort.SliceStable(refs, func(i, j int) bool {
			return scoreValue(refs[i].row.EPSS) > scoreValue(refs[j].row.EPSS)
		})
	case "cvss":
		sort.SliceStable(refs, func(i, j int) bool {
			return scoreValue(refs[i].row.CVSSBase) > scoreValue(refs[j].row.CVSSBase)
		})
	case "cve":
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].row.CVEID < refs[j].row.CVEID
		})
	default:
		// preserve original order
	}
}

// scoreValue parses a rendered score cell, treating empty (unknown) as 0.
func scoreValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// truncateWords truncates s to at most n words, appending "..." when
// anything was cut.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}
