package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	statsFormatWebpackConstant             = "webpack"
	statsFormatEsbuildConstant             = "esbuild"
	unsupportedStatsFormatTemplateConstant = "unsupported statistics format: %s"
	statsReadErrorTemplateConstant         = "unable to read statistics %s: %w"
	statsDecodeErrorTemplateConstant       = "unable to decode %s statistics %s: %w"
	statsPathRequiredMessageConstant       = "statistics file path must be provided"
	metafileCurrentDirectoryConstant       = "."
	metafilePathSeparatorConstant          = "/"
)

// ErrStatisticsPathRequired indicates that no statistics file was configured.
var ErrStatisticsPathRequired = errors.New(statsPathRequiredMessageConstant)

// StatsFormat identifies the bundler that produced a statistics file.
type StatsFormat string

// Supported statistics formats.
const (
	StatsFormatWebpack StatsFormat = StatsFormat(statsFormatWebpackConstant)
	StatsFormatEsbuild StatsFormat = StatsFormat(statsFormatEsbuildConstant)
)

// ParseStatsFormat validates a statistics format name. Blank input selects webpack.
func ParseStatsFormat(rawFormat string) (StatsFormat, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(rawFormat))
	switch normalizedFormat {
	case "", statsFormatWebpackConstant:
		return StatsFormatWebpack, nil
	case statsFormatEsbuildConstant:
		return StatsFormatEsbuild, nil
	default:
		return "", fmt.Errorf(unsupportedStatsFormatTemplateConstant, rawFormat)
	}
}

// WebpackStatistics is the subset of `webpack --json` output read by the collector.
// A multi-compiler run is expressed either as `children` without top-level assets or as `stats`.
type WebpackStatistics struct {
	AssetEntries []webpackAsset       `json:"assets"`
	Children     []*WebpackStatistics `json:"children"`
	Stats        []*WebpackStatistics `json:"stats"`
}

type webpackAsset struct {
	Name string `json:"name"`
}

// Assets implements Compilation.
func (statistics *WebpackStatistics) Assets() []AssetRecord {
	records := make([]AssetRecord, 0, len(statistics.AssetEntries))
	for _, assetEntry := range statistics.AssetEntries {
		records = append(records, AssetRecord{Name: assetEntry.Name})
	}
	return records
}

// Compilations implements Statistics.
func (statistics *WebpackStatistics) Compilations() []Compilation {
	nested := statistics.Stats
	if len(nested) == 0 && len(statistics.AssetEntries) == 0 {
		nested = statistics.Children
	}
	if len(nested) == 0 {
		return []Compilation{statistics}
	}

	compilations := make([]Compilation, 0, len(nested))
	for _, nestedStatistics := range nested {
		if nestedStatistics == nil {
			continue
		}
		compilations = append(compilations, nestedStatistics)
	}
	return compilations
}

// EsbuildMetafile is the subset of an esbuild metafile read by the collector.
type EsbuildMetafile struct {
	Outputs map[string]esbuildOutput `json:"outputs"`

	outputRoot string
}

type esbuildOutput struct {
	Bytes      int64  `json:"bytes"`
	EntryPoint string `json:"entryPoint,omitempty"`
}

// WithOutputRoot returns a copy whose asset names are relative to outputRoot, matching
// how the collector joins them with the output directory.
func (metafile EsbuildMetafile) WithOutputRoot(outputRoot string) EsbuildMetafile {
	metafile.outputRoot = path.Clean(filepath.ToSlash(outputRoot))
	return metafile
}

// Assets implements Compilation; outputs are listed in path order.
func (metafile EsbuildMetafile) Assets() []AssetRecord {
	outputPaths := make([]string, 0, len(metafile.Outputs))
	for outputPath := range metafile.Outputs {
		outputPaths = append(outputPaths, outputPath)
	}
	sort.Strings(outputPaths)

	records := make([]AssetRecord, 0, len(outputPaths))
	for _, outputPath := range outputPaths {
		records = append(records, AssetRecord{Name: metafile.relativeName(outputPath)})
	}
	return records
}

// Compilations implements Statistics; a metafile describes a single build.
func (metafile EsbuildMetafile) Compilations() []Compilation {
	return []Compilation{metafile}
}

func (metafile EsbuildMetafile) relativeName(outputPath string) string {
	cleanedPath := path.Clean(filepath.ToSlash(outputPath))
	if len(metafile.outputRoot) == 0 || metafile.outputRoot == metafileCurrentDirectoryConstant {
		return cleanedPath
	}
	rootPrefix := metafile.outputRoot + metafilePathSeparatorConstant
	if strings.HasPrefix(cleanedPath, rootPrefix) {
		return strings.TrimPrefix(cleanedPath, rootPrefix)
	}
	return cleanedPath
}

// StatisticsLoader reads bundler statistics files.
type StatisticsLoader struct {
	readFile func(name string) ([]byte, error)
}

// NewStatisticsLoader constructs a loader reading from the operating system.
func NewStatisticsLoader() StatisticsLoader {
	return StatisticsLoader{readFile: os.ReadFile}
}

// Load decodes the statistics file at statisticsPath. For esbuild metafiles, outputRoot is the
// directory, relative to the metafile's working directory, that the build wrote into.
func (loader StatisticsLoader) Load(statisticsPath string, format StatsFormat, outputRoot string) (Statistics, error) {
	trimmedPath := strings.TrimSpace(statisticsPath)
	if len(trimmedPath) == 0 {
		return nil, ErrStatisticsPathRequired
	}

	readFile := loader.readFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	contents, readError := readFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(statsReadErrorTemplateConstant, trimmedPath, readError)
	}

	switch format {
	case StatsFormatWebpack:
		webpackStatistics := &WebpackStatistics{}
		if decodeError := sonic.Unmarshal(contents, webpackStatistics); decodeError != nil {
			return nil, fmt.Errorf(statsDecodeErrorTemplateConstant, format, trimmedPath, decodeError)
		}
		return webpackStatistics, nil
	case StatsFormatEsbuild:
		metafile := EsbuildMetafile{}
		if decodeError := sonic.Unmarshal(contents, &metafile); decodeError != nil {
			return nil, fmt.Errorf(statsDecodeErrorTemplateConstant, format, trimmedPath, decodeError)
		}
		return metafile.WithOutputRoot(outputRoot), nil
	default:
		return nil, fmt.Errorf(unsupportedStatsFormatTemplateConstant, format)
	}
}
