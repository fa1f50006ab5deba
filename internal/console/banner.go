package console

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"unicode"

	figure "github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

const (
	bannerProductSuffixConstant           = " accurapp"
	bannerNarrowTerminalWidthConstant     = 125
	bannerPipeCharacterConstant           = "|"
	bannerPipeReplacementConstant         = "l"
	bannerLeadingLineConstant             = "\n"
	bannerRowSeparatorConstant            = "\n"
	bannerDefaultFontNameConstant         = "cosmic"
	bannerBundledFontDirectoryConstant    = "fonts"
	bannerFontExtensionConstant           = ".flf"
	bannerFontSignatureConstant           = "flf2a"
	bannerFontOpenErrorTemplateConstant   = "unable to open banner font %s: %w"
	bannerFontErrorTemplateConstant       = "%w %s"
	bannerFontGlyphsErrorTemplateConstant = "%w %s: missing glyph data (%v)"
	unknownBannerFontMessageConstant      = "unknown banner font"
	invalidBannerFontMessageConstant      = "invalid banner font"
)

var (
	// ErrUnknownBannerFont indicates a font name that is not bundled.
	ErrUnknownBannerFont = errors.New(unknownBannerFontMessageConstant)
	// ErrInvalidBannerFont indicates font data without a usable FIGlet header or glyphs.
	ErrInvalidBannerFont = errors.New(invalidBannerFontMessageConstant)
)

var bannerPrimaryGlyphs = map[rune]struct{}{
	'$': {},
}

var bannerSecondaryGlyphs = map[rune]struct{}{
	'_':  {},
	'|':  {},
	'\\': {},
	'/':  {},
}

// BannerColors selects the primary and secondary colors of banner glyphs.
type BannerColors struct {
	Primary   ColorName
	Secondary ColorName
}

// DefaultBannerColors returns the blue/red banner scheme.
func DefaultBannerColors() BannerColors {
	return BannerColors{Primary: ColorBlue, Secondary: ColorRed}
}

// TerminalWidthProvider reports the width of the attached terminal in columns.
type TerminalWidthProvider interface {
	TerminalWidth() (int, bool)
}

// FileTerminalWidthProvider reads the column count of a terminal file descriptor.
type FileTerminalWidthProvider struct {
	file *os.File
}

// NewStandardOutputWidthProvider measures the terminal attached to standard output.
func NewStandardOutputWidthProvider() FileTerminalWidthProvider {
	return FileTerminalWidthProvider{file: os.Stdout}
}

// TerminalWidth returns false when the file is not a terminal or its size is unavailable.
func (provider FileTerminalWidthProvider) TerminalWidth() (int, bool) {
	if provider.file == nil {
		return 0, false
	}
	fileDescriptor := int(provider.file.Fd())
	if !term.IsTerminal(fileDescriptor) {
		return 0, false
	}
	width, _, sizeError := term.GetSize(fileDescriptor)
	if sizeError != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// BannerFont chooses the FIGlet font: a file path takes precedence over a bundled font name.
type BannerFont struct {
	Name     string
	FilePath string
}

// BannerRenderer draws large colored text for CLI startup output.
type BannerRenderer struct {
	palette       Palette
	widthProvider TerminalWidthProvider
	font          BannerFont
}

// NewBannerRenderer constructs a renderer. A nil width provider disables truncation.
func NewBannerRenderer(palette Palette, widthProvider TerminalWidthProvider, font BannerFont) *BannerRenderer {
	if len(strings.TrimSpace(font.Name)) == 0 {
		font.Name = bannerDefaultFontNameConstant
	}
	return &BannerRenderer{palette: palette, widthProvider: widthProvider, font: font}
}

// Render returns the colored banner preceded by a blank line.
func (renderer *BannerRenderer) Render(text string, colors BannerColors) (string, error) {
	bannerText := strings.ReplaceAll(renderer.fitToTerminal(text), bannerPipeCharacterConstant, bannerPipeReplacementConstant)

	rows, renderError := renderer.renderRows(bannerText)
	if renderError != nil {
		return "", renderError
	}

	artwork := strings.Join(rows, bannerRowSeparatorConstant)
	return bannerLeadingLineConstant + renderer.colorize(artwork, colors), nil
}

// fitToTerminal drops the product suffix on terminals narrower than the full banner.
func (renderer *BannerRenderer) fitToTerminal(text string) string {
	suffixIndex := strings.LastIndex(text, bannerProductSuffixConstant)
	if suffixIndex < 0 || renderer.widthProvider == nil {
		return text
	}
	width, known := renderer.widthProvider.TerminalWidth()
	if !known || width >= bannerNarrowTerminalWidthConstant {
		return text
	}
	return text[:suffixIndex] + text[suffixIndex+len(bannerProductSuffixConstant):]
}

func (renderer *BannerRenderer) renderRows(text string) (rows []string, renderError error) {
	fontSource, fontContents, loadError := renderer.loadFont()
	if loadError != nil {
		return nil, loadError
	}
	if !hasFontHeader(fontContents) {
		return nil, fmt.Errorf(bannerFontErrorTemplateConstant, ErrInvalidBannerFont, fontSource)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			rows = nil
			renderError = fmt.Errorf(bannerFontGlyphsErrorTemplateConstant, ErrInvalidBannerFont, fontSource, recovered)
		}
	}()
	return figure.NewFigureWithFont(text, bytes.NewReader(fontContents), false).Slicify(), nil
}

// loadFont returns the font source label and its raw FIGlet data.
func (renderer *BannerRenderer) loadFont() (string, []byte, error) {
	if len(renderer.font.FilePath) > 0 {
		fontContents, readError := os.ReadFile(renderer.font.FilePath)
		if readError != nil {
			return renderer.font.FilePath, nil, fmt.Errorf(bannerFontOpenErrorTemplateConstant, renderer.font.FilePath, readError)
		}
		return renderer.font.FilePath, fontContents, nil
	}

	fontContents, assetError := figure.Asset(path.Join(bannerBundledFontDirectoryConstant, renderer.font.Name+bannerFontExtensionConstant))
	if assetError != nil {
		return renderer.font.Name, nil, fmt.Errorf(bannerFontErrorTemplateConstant, ErrUnknownBannerFont, renderer.font.Name)
	}
	return renderer.font.Name, fontContents, nil
}

// hasFontHeader reports whether the first line is a flf2a header with a positive glyph height.
func hasFontHeader(fontContents []byte) bool {
	headerLine, _, _ := bytes.Cut(fontContents, []byte("\n"))
	headerFields := strings.Fields(string(headerLine))
	if len(headerFields) < 2 || !strings.HasPrefix(headerFields[0], bannerFontSignatureConstant) {
		return false
	}
	height, parseError := strconv.Atoi(headerFields[1])
	return parseError == nil && height > 0
}

func (renderer *BannerRenderer) colorize(artwork string, colors BannerColors) string {
	var builder strings.Builder
	for _, character := range artwork {
		if unicode.IsSpace(character) {
			builder.WriteRune(character)
			continue
		}
		builder.WriteString(renderer.palette.Paint(glyphColor(character, colors), string(character)))
	}
	return builder.String()
}

func glyphColor(character rune, colors BannerColors) ColorName {
	if _, primary := bannerPrimaryGlyphs[character]; primary {
		return colors.Primary
	}
	if _, secondary := bannerSecondaryGlyphs[character]; secondary {
		return colors.Secondary
	}
	return ColorWhite
}
