package console

import (
	"strings"
	"unicode/utf8"
)

const (
	layoutLineSeparatorConstant  = "\n"
	listLineContinuationConstant = "   "
	listLineBulletConstant       = "\n • "
	boxHorizontalPaddingConstant = 3
	boxTopLeftCornerConstant     = "┌"
	boxTopRightCornerConstant    = "┐"
	boxBottomLeftCornerConstant  = "└"
	boxBottomRightCornerConstant = "┘"
	boxHorizontalEdgeConstant    = "─"
	boxVerticalEdgeConstant      = "│"
	layoutSpaceConstant          = " "
)

// Indent prefixes every line of text; the first line uses firstLinePrefix.
func Indent(text string, prefix string, firstLinePrefix string) string {
	lines := strings.Split(text, layoutLineSeparatorConstant)
	for lineIndex := range lines {
		if lineIndex == 0 {
			lines[lineIndex] = firstLinePrefix + lines[lineIndex]
			continue
		}
		lines[lineIndex] = prefix + lines[lineIndex]
	}
	return strings.Join(lines, layoutLineSeparatorConstant)
}

// ListLine renders text as a bullet entry preceded by a line break. Continuation lines align under the text.
func ListLine(text string, bulletStyle func(string) string) string {
	if bulletStyle == nil {
		bulletStyle = func(bullet string) string { return bullet }
	}
	return Indent(text, listLineContinuationConstant, bulletStyle(listLineBulletConstant))
}

// YellowBox frames message in a single-line yellow border with one line of vertical padding and centered lines.
func YellowBox(palette Palette, message string) string {
	lines := strings.Split(message, layoutLineSeparatorConstant)
	contentWidth := 0
	for _, line := range lines {
		if lineWidth := utf8.RuneCountInString(line); lineWidth > contentWidth {
			contentWidth = lineWidth
		}
	}

	innerWidth := contentWidth + 2*boxHorizontalPaddingConstant
	horizontalEdge := strings.Repeat(boxHorizontalEdgeConstant, innerWidth)
	verticalEdge := palette.Paint(ColorYellow, boxVerticalEdgeConstant)
	paddingRow := verticalEdge + strings.Repeat(layoutSpaceConstant, innerWidth) + verticalEdge
	sidePadding := strings.Repeat(layoutSpaceConstant, boxHorizontalPaddingConstant)

	rows := make([]string, 0, len(lines)+4)
	rows = append(rows, palette.Paint(ColorYellow, boxTopLeftCornerConstant+horizontalEdge+boxTopRightCornerConstant))
	rows = append(rows, paddingRow)
	for _, line := range lines {
		remaining := contentWidth - utf8.RuneCountInString(line)
		leftFill := remaining / 2
		rightFill := remaining - leftFill
		centered := strings.Repeat(layoutSpaceConstant, leftFill) + line + strings.Repeat(layoutSpaceConstant, rightFill)
		rows = append(rows, verticalEdge+sidePadding+centered+sidePadding+verticalEdge)
	}
	rows = append(rows, paddingRow)
	rows = append(rows, palette.Paint(ColorYellow, boxBottomLeftCornerConstant+horizontalEdge+boxBottomRightCornerConstant))

	return strings.Join(rows, layoutLineSeparatorConstant)
}
