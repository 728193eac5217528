package files

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultMaxFileBytes caps a single export file
const DefaultMaxFileBytes int64 = 64 << 20

// ExportExtension is the extension of files picked up by FindExports
const ExportExtension = ".json"

// ErrNoExports is returned when a directory holds no export files
var ErrNoExports = errors.New("no export files found")

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds export files and validates them before loading
type Discovery struct {
	maxFileBytes int64
	logger       *slog.Logger
}

// NewDiscovery creates a discovery with the given per-file size cap.
// A cap <= 0 disables the size check.
func NewDiscovery(maxFileBytes int64, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{maxFileBytes: maxFileBytes, logger: logger}
}

// FindExports lists the .json files directly inside dir, sorted by name.
// Hidden files and editor temp files are ignored, and files failing
// ValidateFile are logged and left out.
func (d *Discovery) FindExports(dir string) ([]FileInfo, error) {
	if err := d.ValidateDirectory(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isExportName(name) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := d.ValidateFile(path)
		if err != nil {
			d.logger.Warn("Ignoring export file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			continue
		}
		found = append(found, info)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})

	if len(found) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExports, dir)
	}

	d.logger.Debug("Export directory scanned",
		slog.String("directory", dir),
		slog.Int("files_found", len(found)))
	return found, nil
}

// ValidateDirectory checks that dir exists and is a directory
func (d *Discovery) ValidateDirectory(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// ValidateFile checks that path is a readable regular file within the
// size cap
func (d *Discovery) ValidateFile(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FileInfo{}, fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return FileInfo{}, fmt.Errorf("%s is not a regular file", path)
	}
	if d.maxFileBytes > 0 && info.Size() > d.maxFileBytes {
		return FileInfo{}, fmt.Errorf("file %s is %d bytes, over the %d byte limit", path, info.Size(), d.maxFileBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Paths returns the paths of files in order
func Paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func isExportName(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ExportExtension)
}
