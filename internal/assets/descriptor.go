package assets

// DefaultBudget is the raw size above which a script asset is reported as oversized.
const DefaultBudget int64 = 1024 * 1024

// Descriptor describes one emitted script or stylesheet.
type Descriptor struct {
	Folder         string
	Name           string
	Size           int64
	SizeCompressed int64
}

// AssetRecord is the part of a bundler asset entry used by the collector.
type AssetRecord struct {
	Name string
}

// Compilation exposes the assets produced by one bundler run.
type Compilation interface {
	Assets() []AssetRecord
}

// Statistics exposes every compilation contained in a bundler statistics snapshot.
type Statistics interface {
	Compilations() []Compilation
}

// CompilationAssets is an in-memory Compilation.
type CompilationAssets []AssetRecord

// Assets returns the records of the compilation.
func (compilationAssets CompilationAssets) Assets() []AssetRecord {
	return compilationAssets
}

// CompilationSet is an in-memory Statistics value holding one or more compilations.
type CompilationSet []Compilation

// Compilations returns the contained compilations.
func (compilationSet CompilationSet) Compilations() []Compilation {
	return compilationSet
}
