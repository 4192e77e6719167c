package enrich

import (
	"strings"

	"go.uber.org/zap"

	"github.com/arloliu/metricline/dimensions"
)

// OneAgentIndirectionFileName is the well-known file whose content is the path of the
// OneAgent process metadata file.
const OneAgentIndirectionFileName = "dt_metadata_e617c525669e072eebe3d0f08212e8f2.properties"

// OneAgentEnricher adds the process metadata published by a locally installed OneAgent.
type OneAgentEnricher struct {
	reader          FileReader
	logger          *zap.Logger
	indirectionPath string
}

var _ Enricher = (*OneAgentEnricher)(nil)

// NewOneAgentEnricher creates an enricher that reads the indirection file from the
// working directory through reader. A nil reader uses the OS file system.
func NewOneAgentEnricher(logger *zap.Logger, reader FileReader) *OneAgentEnricher {
	if reader == nil {
		reader = OSFileReader{}
	}

	return &OneAgentEnricher{
		reader:          reader,
		logger:          orNop(logger),
		indirectionPath: OneAgentIndirectionFileName,
	}
}

// Enrich appends every well-formed "key=value" line of the metadata file to dims.
func (e *OneAgentEnricher) Enrich(dims []dimensions.Dimension) []dimensions.Dimension {
	for _, line := range e.readMetadata() {
		dim, ok := e.parseLine(line)
		if !ok {
			continue
		}
		dims = append(dims, dim)
	}

	return dims
}

func (e *OneAgentEnricher) readMetadata() []string {
	path, err := e.reader.ReadText(e.indirectionPath)
	if err != nil {
		logReadError(e.logger, e.indirectionPath, err)
		return nil
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	lines, err := e.reader.ReadLines(path)
	if err != nil {
		logReadError(e.logger, path, err)
		return nil
	}

	return lines
}

// parseLine accepts lines with exactly one '=' and non-empty key and value.
func (e *OneAgentEnricher) parseLine(line string) (dimensions.Dimension, bool) {
	e.logger.Debug("parsing OneAgent metadata line", zap.String("line", line))

	key, value, found := strings.Cut(line, "=")
	if !found || strings.Contains(value, "=") || key == "" || value == "" {
		e.logger.Warn("failed to parse line from OneAgent metadata file", zap.String("line", line))
		return dimensions.Dimension{}, false
	}

	return dimensions.NewDimension(key, value), true
}
