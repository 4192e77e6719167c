// Package enrich discovers metadata dimensions from host agent side-channel files.
//
// Enrichers run once, when a serializer is created. They never fail: any I/O problem
// is logged and results in no additional dimensions.
package enrich

import (
	"bufio"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/metricline/dimensions"
)

// Enricher appends raw, unnormalized dimensions to dims and returns the result.
type Enricher interface {
	Enrich(dims []dimensions.Dimension) []dimensions.Dimension
}

// EnricherFunc adapts a function to the Enricher interface.
type EnricherFunc func(dims []dimensions.Dimension) []dimensions.Dimension

func (f EnricherFunc) Enrich(dims []dimensions.Dimension) []dimensions.Dimension {
	return f(dims)
}

// FileReader reads metadata files. It exists so tests can replace the file system.
type FileReader interface {
	// ReadText returns the whole content of the file at path.
	ReadText(path string) (string, error)
	// ReadLines returns the lines of the file at path without line terminators.
	ReadLines(path string) ([]string, error)
}

// OSFileReader reads files from the local file system.
type OSFileReader struct{}

var _ FileReader = OSFileReader{}

func (OSFileReader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (OSFileReader) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

type chain []Enricher

func (c chain) Enrich(dims []dimensions.Dimension) []dimensions.Dimension {
	for _, e := range c {
		if e != nil {
			dims = e.Enrich(dims)
		}
	}

	return dims
}

// Chain returns an Enricher that runs enrichers in order. Nil enrichers are skipped.
func Chain(enrichers ...Enricher) Enricher {
	return chain(enrichers)
}

// logReadError logs a failed metadata read. A missing file is the normal case on hosts
// without an agent and is only logged at debug level.
func logReadError(logger *zap.Logger, path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("metadata file not found", zap.String("path", path))
		return
	}

	logger.Warn("could not read metadata file", zap.String("path", path), zap.Error(err))
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
