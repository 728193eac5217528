package exporter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// ErrDirectoryRequired is returned when CSV output is requested on a stream
var ErrDirectoryRequired = errors.New("csv export writes one file per section and needs a directory")

// Options tunes the encoders
type Options struct {
	// Pretty indents JSON output
	Pretty bool
	// BOM prefixes CSV files with a UTF-8 byte order mark
	BOM bool
}

// Exporter renders reports to streams and files
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an exporter
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger.With(slog.String("component", "exporter"))}
}

// Write encodes the report to w. CSV needs a directory; use WriteFile.
func (e *Exporter) Write(w io.Writer, report *domain.Report, format Format, opts Options) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, report, opts.Pretty)
	case FormatXLSX:
		return WriteXLSX(w, Tables(report))
	case FormatCSV:
		return ErrDirectoryRequired
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile writes the report to path and returns the files created. For
// CSV path is a directory receiving one file per section.
func (e *Exporter) WriteFile(path string, report *domain.Report, format Format, opts Options) ([]string, error) {
	if format == FormatCSV {
		files, err := NewCSVWriter(path, e.logger).WriteTables(Tables(report), opts.BOM)
		if err != nil {
			return files, err
		}
		e.logger.Info("Report exported",
			slog.String("format", string(format)),
			slog.String("dir", path),
			slog.Int("files", len(files)))
		return files, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	buf := bufio.NewWriter(file)
	if err := e.Write(buf, report, format, opts); err != nil {
		_ = file.Close()
		return nil, err
	}
	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, err)
	}

	e.logger.Info("Report exported",
		slog.String("format", string(format)),
		slog.String("path", path))
	return []string{path}, nil
}

// WriteJSON encodes the report as a single JSON document followed by a
// newline
func WriteJSON(w io.Writer, report *domain.Report, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
