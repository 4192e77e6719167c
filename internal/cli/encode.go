package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/metricline/config"
	"github.com/arloliu/metricline/format"
	"github.com/arloliu/metricline/payload"
	"github.com/arloliu/metricline/serializer"
)

const maxInputLineSize = 1024 * 1024

type encodeOptions struct {
	configPath  string
	inputPath   string
	outputPath  string
	compression string
}

func newEncodeCommand() *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode JSON lines of metric observations",
		Long: `Read one JSON object per line and write one protocol line per metric.

Input lines that cannot be parsed or serialized are logged to stderr and skipped;
the command exits non-zero if any line failed. With compression enabled, output is
written as one compressed payload per 1000 lines.`,
		Example: `  echo '{"name":"requests","type":"counter","int":true,"value":23}' | metricline encode
  metricline encode --config metricline.yaml --input metrics.jsonl --compression gzip --output body.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEncode(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.inputPath, "input", "i", "-", "input file, - for stdin")
	flags.StringVarP(&opts.outputPath, "output", "o", "-", "output file, - for stdout")
	flags.StringVar(&opts.compression, "compression", "", "payload compression: none, gzip, zstd, s2, lz4 (overrides config)")

	return cmd
}

func runEncode(cmd *cobra.Command, opts *encodeOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("compression") {
		cfg.Compression = opts.compression
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	compression, err := cfg.CompressionType()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	s, err := serializer.New(cfg.SerializerOptions(logger)...)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, opts.inputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	lines, failed, total, err := encodeLines(in, s, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, opts.outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := writeLines(out, lines, compression); err != nil {
		return err
	}

	logger.Debug("encode finished", zap.Int("input", total), zap.Int("written", len(lines)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d input lines failed", failed, total)
	}

	return nil
}

// encodeLines serializes every non-empty input line. Failures are logged and counted.
func encodeLines(r io.Reader, s *serializer.Serializer, logger *zap.Logger) (lines []string, failed, total int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		total++

		line, lerr := encodeLine(raw, s)
		if lerr != nil {
			failed++
			logger.Warn("skipping input line", zap.Int("line", lineNo), zap.Error(lerr))

			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, failed, total, fmt.Errorf("read input: %w", err)
	}

	return lines, failed, total, nil
}

func encodeLine(raw []byte, s *serializer.Serializer) (string, error) {
	rec, err := parseRecord(raw)
	if err != nil {
		return "", err
	}

	m, err := rec.toMetric()
	if err != nil {
		return "", err
	}

	return s.Serialize(m)
}

// writeLines writes newline terminated lines, or one compressed payload per
// payload.LinesLimit lines.
func writeLines(w io.Writer, lines []string, compression format.CompressionType) error {
	if compression == format.CompressionNone {
		bw := bufio.NewWriter(w)
		for _, line := range lines {
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}

		return bw.Flush()
	}

	for start := 0; start < len(lines); start += payload.LinesLimit {
		end := min(start+payload.LinesLimit, len(lines))

		body, err := payload.Encode(lines[start:end], compression)
		if err != nil {
			return err
		}
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

func newLogger(cfg *config.Config, w io.Writer) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), level)

	return zap.New(core), nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
