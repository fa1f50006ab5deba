package assets

import (
	"fmt"

	"github.com/klauspost/compress/gzip"
)

const (
	gzipWriterErrorTemplateConstant = "unable to create gzip writer: %w"
	gzipWriteErrorTemplateConstant  = "unable to compress asset: %w"
	gzipCloseErrorTemplateConstant  = "unable to finish compressed stream: %w"
)

// Compressor computes the compressed size of file contents.
type Compressor interface {
	CompressedSize(content []byte) (int64, error)
}

// GzipCompressor measures gzip output at maximum compression. The header carries
// no name or timestamp, so identical input always yields the same size.
type GzipCompressor struct {
	level int
}

// NewGzipCompressor constructs a compressor using gzip.BestCompression.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{level: gzip.BestCompression}
}

// CompressedSize returns the number of bytes gzip produces for content.
func (compressor GzipCompressor) CompressedSize(content []byte) (int64, error) {
	counter := &byteCounter{}
	gzipWriter, writerError := gzip.NewWriterLevel(counter, compressor.level)
	if writerError != nil {
		return 0, fmt.Errorf(gzipWriterErrorTemplateConstant, writerError)
	}
	if _, writeError := gzipWriter.Write(content); writeError != nil {
		return 0, fmt.Errorf(gzipWriteErrorTemplateConstant, writeError)
	}
	if closeError := gzipWriter.Close(); closeError != nil {
		return 0, fmt.Errorf(gzipCloseErrorTemplateConstant, closeError)
	}
	return counter.count, nil
}

type byteCounter struct {
	count int64
}

func (counter *byteCounter) Write(data []byte) (int, error) {
	counter.count += int64(len(data))
	return len(data), nil
}
