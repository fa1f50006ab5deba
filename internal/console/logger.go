package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/temirov/bundlekit/internal/utils"
)

const (
	okGlyphConstant            = ":::"
	warnGlyphConstant          = "!!!"
	errGlyphConstant           = "!!!"
	infoGlyphConstant          = "---"
	logLineTemplateConstant    = "%s %s\n"
	valueJoinSeparatorConstant = " "
	blankLineConstant          = "\n"
	rawLineTemplateConstant    = "%s\n"
)

// Streams holds the writers that receive console output.
type Streams struct {
	Output io.Writer
	Error  io.Writer
}

// StandardStreams returns flushing wrappers around the process standard output and error.
func StandardStreams() Streams {
	return Streams{
		Output: utils.NewFlushingWriter(os.Stdout),
		Error:  utils.NewFlushingWriter(os.Stderr),
	}
}

// Logger writes glyph-prefixed, colored lines. Every call writes immediately.
type Logger struct {
	streams Streams
	palette Palette
}

// NewLogger constructs a Logger. Nil writers are replaced with io.Discard.
func NewLogger(streams Streams, palette Palette) *Logger {
	if streams.Output == nil {
		streams.Output = io.Discard
	}
	if streams.Error == nil {
		streams.Error = io.Discard
	}
	return &Logger{streams: streams, palette: palette}
}

// Palette exposes the styling used by the logger.
func (logger *Logger) Palette() Palette {
	return logger.palette
}

// Ok reports a successful step on standard output.
func (logger *Logger) Ok(message string, values ...any) {
	logger.write(logger.streams.Output, okGlyphConstant, ColorYellow, message, values)
}

// Warn reports a recoverable problem on standard error.
func (logger *Logger) Warn(message string, values ...any) {
	logger.write(logger.streams.Error, warnGlyphConstant, ColorYellow, message, values)
}

// Err reports a failure on standard error.
func (logger *Logger) Err(message string, values ...any) {
	logger.write(logger.streams.Error, errGlyphConstant, ColorRed, message, values)
}

// Info reports progress on standard output.
func (logger *Logger) Info(message string, values ...any) {
	logger.write(logger.streams.Output, infoGlyphConstant, ColorBlue, message, values)
}

// Blank writes an empty line to standard output.
func (logger *Logger) Blank() {
	_, _ = io.WriteString(logger.streams.Output, blankLineConstant)
}

// Print writes pre-rendered text followed by a newline to standard output.
func (logger *Logger) Print(text string) {
	_, _ = fmt.Fprintf(logger.streams.Output, rawLineTemplateConstant, text)
}

func (logger *Logger) write(writer io.Writer, glyph string, colorName ColorName, message string, values []any) {
	joinedMessage := JoinValues(message, values)
	_, _ = fmt.Fprintf(writer, logLineTemplateConstant, glyph, logger.palette.Paint(colorName, joinedMessage))
}

// JoinValues renders the message followed by each value, separated by single spaces.
func JoinValues(message string, values []any) string {
	if len(values) == 0 {
		return message
	}
	parts := make([]string, 0, len(values)+1)
	parts = append(parts, message)
	for _, value := range values {
		parts = append(parts, fmt.Sprint(value))
	}
	return strings.Join(parts, valueJoinSeparatorConstant)
}
