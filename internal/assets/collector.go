package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	scriptExtensionConstant             = ".js"
	stylesheetExtensionConstant         = ".css"
	assetStatErrorTemplateConstant      = "unable to inspect asset %s: %w"
	assetReadErrorTemplateConstant      = "unable to read asset %s: %w"
	assetCompressErrorTemplateConstant  = "unable to compress asset %s: %w"
	assetSkippedLogMessageConstant      = "asset listed in statistics was not emitted"
	assetCollectedLogMessageConstant    = "asset collected"
	logFieldAssetPathConstant           = "asset_path"
	logFieldAssetSizeConstant           = "size"
	logFieldAssetCompressedSizeConstant = "size_compressed"
)

// FileSystem provides the file access needed to measure assets.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// OSFileSystem reads from the operating system file system.
type OSFileSystem struct{}

// Stat implements FileSystem.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Collector builds asset descriptors from bundler statistics and the files on disk.
type Collector struct {
	fileSystem FileSystem
	compressor Compressor
	logger     *zap.Logger
}

// NewCollector constructs a Collector. Nil collaborators fall back to the OS file system,
// gzip compression, and a no-op logger.
func NewCollector(fileSystem FileSystem, compressor Compressor, logger *zap.Logger) *Collector {
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	if compressor == nil {
		compressor = NewGzipCompressor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{fileSystem: fileSystem, compressor: compressor, logger: logger}
}

// Collect returns one descriptor per emitted script or stylesheet across all compilations,
// in statistics order. Assets missing from outputDirectory are skipped; other file errors are returned.
func (collector *Collector) Collect(statistics Statistics, outputDirectory string) ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0)
	if statistics == nil {
		return descriptors, nil
	}

	for _, compilation := range statistics.Compilations() {
		if compilation == nil {
			continue
		}
		for _, assetRecord := range compilation.Assets() {
			if !IsReportedAsset(assetRecord.Name) {
				continue
			}
			descriptor, emitted, describeError := collector.describe(assetRecord, outputDirectory)
			if describeError != nil {
				return nil, describeError
			}
			if !emitted {
				continue
			}
			descriptors = append(descriptors, descriptor)
		}
	}

	return descriptors, nil
}

// IsReportedAsset reports whether an asset name ends in .js or .css.
func IsReportedAsset(assetName string) bool {
	return strings.HasSuffix(assetName, scriptExtensionConstant) || strings.HasSuffix(assetName, stylesheetExtensionConstant)
}

func (collector *Collector) describe(assetRecord AssetRecord, outputDirectory string) (Descriptor, bool, error) {
	relativePath := filepath.FromSlash(assetRecord.Name)
	assetPath := filepath.Join(outputDirectory, relativePath)

	fileInfo, statError := collector.fileSystem.Stat(assetPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			collector.logger.Debug(assetSkippedLogMessageConstant, zap.String(logFieldAssetPathConstant, assetPath))
			return Descriptor{}, false, nil
		}
		return Descriptor{}, false, fmt.Errorf(assetStatErrorTemplateConstant, assetPath, statError)
	}

	fileContents, readError := collector.fileSystem.ReadFile(assetPath)
	if readError != nil {
		return Descriptor{}, false, fmt.Errorf(assetReadErrorTemplateConstant, assetPath, readError)
	}

	compressedSize, compressError := collector.compressor.CompressedSize(fileContents)
	if compressError != nil {
		return Descriptor{}, false, fmt.Errorf(assetCompressErrorTemplateConstant, assetPath, compressError)
	}

	descriptor := Descriptor{
		Folder:         filepath.Join(filepath.Base(outputDirectory), filepath.Dir(relativePath)),
		Name:           filepath.Base(relativePath),
		Size:           fileInfo.Size(),
		SizeCompressed: compressedSize,
	}

	collector.logger.Debug(
		assetCollectedLogMessageConstant,
		zap.String(logFieldAssetPathConstant, assetPath),
		zap.Int64(logFieldAssetSizeConstant, descriptor.Size),
		zap.Int64(logFieldAssetCompressedSizeConstant, descriptor.SizeCompressed),
	)

	return descriptor, true, nil
}
