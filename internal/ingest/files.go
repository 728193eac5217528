package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

const defaultReadConcurrency = 4

// FileLoader reads platform export files and merges them into one input
type FileLoader struct {
	logger      *slog.Logger
	concurrency int
}

// NewFileLoader creates a loader reading up to four files at a time
func NewFileLoader(logger *slog.Logger) *FileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{logger: logger, concurrency: defaultReadConcurrency}
}

// LoadResult is the merged input and the files that were skipped
type LoadResult struct {
	Input   domain.Input
	Skipped []string
}

// Load reads every path, decodes it and merges records in path order.
// Unreadable or invalid files are logged and skipped; the only error is
// context cancellation.
func (l *FileLoader) Load(ctx context.Context, paths []string) (LoadResult, error) {
	decoded := make([]domain.Input, len(paths))
	failed := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				failed[i] = fmt.Errorf("failed to read %s: %w", path, err)
				return nil
			}
			in, err := Decode(path, data)
			if err != nil {
				failed[i] = err
				return nil
			}
			decoded[i] = in
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, fmt.Errorf("load cancelled: %w", err)
	}

	result := LoadResult{Input: domain.NewInput()}
	for i, path := range paths {
		if failed[i] != nil {
			l.logger.WarnContext(ctx, "skipping input file",
				slog.String("path", path),
				slog.String("error", failed[i].Error()))
			result.Skipped = append(result.Skipped, path)
			continue
		}
		for platform, records := range decoded[i].Platforms {
			if result.Input.Platforms[platform] == nil {
				result.Input.Platforms[platform] = []domain.RawRecord{}
			}
			result.Input.Add(platform, records...)
		}
		l.logger.DebugContext(ctx, "loaded input file",
			slog.String("path", path),
			slog.Int("records", decoded[i].RecordCount()))
	}
	return result, nil
}
