// Package assets analyzes build output after a bundler run.
//
// Collector turns bundler statistics into Descriptors (folder, name, raw size,
// gzip size), skipping assets that were never written to disk. Formatter sorts
// and classifies descriptors against a size budget and renders the aligned,
// colored report printed at the end of a build. Statistics adapters decode
// webpack stats JSON and esbuild metafiles into the narrow Statistics interface.
package assets
