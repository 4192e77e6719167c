package enrich

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/arloliu/metricline/dimensions"
)

// HostMetadataFileName is the host metadata file written by the host agent into the
// enrichment directory.
const HostMetadataFileName = "dt_host_metadata.properties"

var hostMetadataKeys = []string{"dt.entity.host", "host.name"}

// DefaultEnrichmentDirectory returns the platform enrichment directory:
// /var/lib/dynatrace/enrichment, or %ProgramData%\dynatrace\enrichment on Windows.
func DefaultEnrichmentDirectory() string {
	if runtime.GOOS != "windows" {
		return "/var/lib/dynatrace/enrichment"
	}

	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}

	return filepath.Join(programData, "dynatrace", "enrichment")
}

// HostMetadataEnricher adds the host identity dimensions (dt.entity.host, host.name)
// from the host metadata file.
type HostMetadataEnricher struct {
	reader FileReader
	logger *zap.Logger
	dir    string
}

var _ Enricher = (*HostMetadataEnricher)(nil)

// NewHostMetadataEnricher creates an enricher reading HostMetadataFileName from dir.
// An empty dir means DefaultEnrichmentDirectory; a nil reader uses the OS file system.
func NewHostMetadataEnricher(logger *zap.Logger, reader FileReader, dir string) *HostMetadataEnricher {
	if reader == nil {
		reader = OSFileReader{}
	}
	if dir == "" {
		dir = DefaultEnrichmentDirectory()
	}

	return &HostMetadataEnricher{
		reader: reader,
		logger: orNop(logger),
		dir:    dir,
	}
}

// Enrich appends the recognized host properties to dims. Everything after the first
// '=' is the value, and keys and values are trimmed.
func (e *HostMetadataEnricher) Enrich(dims []dimensions.Dimension) []dimensions.Dimension {
	path := filepath.Join(e.dir, HostMetadataFileName)

	lines, err := e.reader.ReadLines(path)
	if err != nil {
		logReadError(e.logger, path, err)
		return dims
	}

	for _, line := range lines {
		key, value, found := strings.Cut(line, "=")
		if !found {
			e.logger.Warn("skipping host metadata line not in '<key>=<value>' format", zap.String("line", line))
			continue
		}

		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" || !slices.Contains(hostMetadataKeys, key) {
			continue
		}
		dims = append(dims, dimensions.NewDimension(key, value))
	}

	return dims
}
