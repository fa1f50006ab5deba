// Package console renders user-facing terminal output for bundlekit.
//
// It provides the glyph-prefixed Logger used for ok/warn/err/info lines,
// a Palette wrapping ANSI styles, the BannerRenderer used at startup, and
// small layout helpers (Indent, ListLine, YellowBox).
package console
