package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/temirov/bundlekit/internal/console"
)

const (
	reportIndentConstant           = "   "
	reportColumnGutterConstant     = "   "
	reportLineSeparatorConstant    = "\n"
	reportSectionSeparatorConstant = "\n\n"
	reportSpaceConstant            = " "
	compressedSizeTemplateConstant = "(%s gzipped)"
	sizeLabelTemplateConstant      = "%s %s"
	oversizedWarningConstant       = "The bundle size is significantly larger than recommended.\n" +
		"Consider reducing it with code splitting: https://goo.gl/9VhYWB\n" +
		"You can also analyze the project dependencies: https://goo.gl/sDmR4n"
)

// IsOversized reports whether a script asset's raw size exceeds the budget. Stylesheets never are.
func IsOversized(descriptor Descriptor, budget int64) bool {
	return filepath.Ext(descriptor.Name) == scriptExtensionConstant && descriptor.Size > budget
}

// ReportRow is one rendered line of the asset report.
type ReportRow struct {
	Descriptor Descriptor
	Oversized  bool
	PathColumn string
	SizeColumn string
	displayKey string
	pathWidth  int
}

// Report is the classified, ordered asset listing.
type Report struct {
	Rows      []ReportRow
	Oversized bool
	palette   console.Palette
}

// Formatter sorts, classifies, and renders asset descriptors.
type Formatter struct {
	palette       console.Palette
	pathSeparator string
}

// NewFormatter constructs a Formatter that separates folder and name with the host path separator.
func NewFormatter(palette console.Palette) Formatter {
	return Formatter{palette: palette, pathSeparator: string(os.PathSeparator)}
}

// Format orders descriptors by file name (stable), flags oversized scripts, and builds report rows.
// Descriptors sharing a folder and name occupy a single row, at the position of the first
// occurrence, holding the last occurrence. Oversized is set when any descriptor exceeds the budget.
func (formatter Formatter) Format(descriptors []Descriptor, budget int64) Report {
	sortedDescriptors := append([]Descriptor{}, descriptors...)
	sort.SliceStable(sortedDescriptors, func(leftIndex int, rightIndex int) bool {
		return sortedDescriptors[leftIndex].Name < sortedDescriptors[rightIndex].Name
	})

	report := Report{Rows: make([]ReportRow, 0, len(sortedDescriptors)), palette: formatter.palette}
	rowIndexByKey := make(map[string]int, len(sortedDescriptors))
	for _, descriptor := range sortedDescriptors {
		row := formatter.buildRow(descriptor, budget)
		if IsOversized(descriptor, budget) {
			report.Oversized = true
		}
		if existingIndex, duplicate := rowIndexByKey[row.displayKey]; duplicate {
			report.Rows[existingIndex] = row
			continue
		}
		rowIndexByKey[row.displayKey] = len(report.Rows)
		report.Rows = append(report.Rows, row)
	}

	return report
}

func (formatter Formatter) buildRow(descriptor Descriptor, budget int64) ReportRow {
	folderPrefix := descriptor.Folder + formatter.pathSeparator
	plainPath := folderPrefix + descriptor.Name

	sizeLabel := fmt.Sprintf(
		sizeLabelTemplateConstant,
		FormatSize(descriptor.Size),
		formatter.palette.Dim(fmt.Sprintf(compressedSizeTemplateConstant, FormatSize(descriptor.SizeCompressed))),
	)
	oversized := IsOversized(descriptor, budget)
	if oversized {
		sizeLabel = formatter.palette.Paint(console.ColorYellow, sizeLabel)
	}

	return ReportRow{
		Descriptor: descriptor,
		Oversized:  oversized,
		PathColumn: formatter.palette.Dim(folderPrefix) + formatter.palette.Paint(console.ColorCyan, descriptor.Name),
		SizeColumn: sizeLabel,
		displayKey: plainPath,
		pathWidth:  displayWidth(plainPath),
	}
}

// displayWidth counts terminal columns: wide and fullwidth runes take two, combining marks none.
func displayWidth(text string) int {
	columns := 0
	for _, character := range text {
		switch {
		case unicode.Is(unicode.Mn, character):
		case isWideRune(character):
			columns += 2
		default:
			columns++
		}
	}
	return columns
}

func isWideRune(character rune) bool {
	switch width.LookupRune(character).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// Render returns the indented two-column listing followed, when any script is oversized,
// by a blank line and the bundle size warning. An empty report renders as an empty string.
func (report Report) Render() string {
	if len(report.Rows) == 0 {
		return ""
	}

	pathColumnWidth := 0
	for _, row := range report.Rows {
		if row.pathWidth > pathColumnWidth {
			pathColumnWidth = row.pathWidth
		}
	}

	lines := make([]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		padding := strings.Repeat(reportSpaceConstant, pathColumnWidth-row.pathWidth)
		lines = append(lines, reportIndentConstant+row.PathColumn+padding+reportColumnGutterConstant+row.SizeColumn)
	}

	rendered := strings.Join(lines, reportLineSeparatorConstant)
	if report.Oversized {
		rendered += reportSectionSeparatorConstant + report.palette.Paint(console.ColorYellow, oversizedWarningConstant)
	}
	return rendered
}
