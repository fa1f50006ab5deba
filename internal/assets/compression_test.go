package assets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/bundlekit/internal/assets"
)

// gzipFramingBytes is the size of the gzip header and trailer.
const gzipFramingBytes = 18

func TestGzipCompressorIsDeterministic(testInstance *testing.T) {
	content := []byte(strings.Repeat("function render(){return document.createElement('div')}\n", 200))
	compressor := assets.NewGzipCompressor()

	firstSize, firstError := compressor.CompressedSize(content)
	require.NoError(testInstance, firstError)
	secondSize, secondError := compressor.CompressedSize(content)
	require.NoError(testInstance, secondError)

	require.Equal(testInstance, firstSize, secondSize)
	require.Greater(testInstance, firstSize, int64(0))
	require.Less(testInstance, firstSize, int64(len(content)))
}

func TestGzipCompressorCountsFramingBytes(testInstance *testing.T) {
	emptySize, emptyError := assets.NewGzipCompressor().CompressedSize(nil)
	require.NoError(testInstance, emptyError)
	require.GreaterOrEqual(testInstance, emptySize, int64(gzipFramingBytes))

	stylesheetSize, stylesheetError := assets.NewGzipCompressor().CompressedSize([]byte("body{margin:0}"))
	require.NoError(testInstance, stylesheetError)
	require.Greater(testInstance, stylesheetSize, emptySize)
}
