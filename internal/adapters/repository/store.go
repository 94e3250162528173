// Package repository loads the hitters dataset and keeps it for the life of the process.
package repository

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/pkg/logger"
	"github.com/okian/slugger/pkg/metrics"
)

// Store provides the dataset.
type Store interface {
	// Dataset returns the full dataset, loading it on first use.
	Dataset(ctx context.Context) (model.Dataset, error)
}

// FileStore loads a CSV file once and serves the same Dataset afterwards.
// Concurrent first callers share one load. A failed load is not remembered,
// so the next caller tries again.
type FileStore struct {
	path    string
	metrics []model.Metric
	fsys    fs.FS
	log     logger.Logger

	mu     sync.Mutex
	loaded bool
	data   model.Dataset
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store for the CSV file at path.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	s := &FileStore{
		path:    path,
		metrics: model.Metrics(),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the file the store reads.
func (s *FileStore) Path() string { return s.path }

// Loaded reports whether the dataset is in memory.
func (s *FileStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Dataset implements Store.
func (s *FileStore) Dataset(ctx context.Context) (model.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.data, nil
	}

	start := time.Now()
	res, err := s.load(ctx)
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(err == nil, float64(elapsed.Milliseconds()))
	if err != nil {
		metrics.RecordErrorByComponent("repository", "load")
		s.log.Error(ctx, "dataset load failed", logger.String("path", s.path), logger.Error(err))
		return model.Dataset{}, err
	}

	for _, name := range res.Duplicates {
		s.log.Warn(ctx, "duplicate player row dropped", logger.String("player", name))
	}
	metrics.RecordDatasetDuplicates(len(res.Duplicates))
	metrics.UpdateDatasetPlayers(string(model.PopulationAll), res.Dataset.Len())
	metrics.UpdateDatasetPlayers(string(model.PopulationQualified), res.Dataset.Qualified().Len())

	s.log.Info(ctx, "dataset loaded",
		logger.String("path", s.path),
		logger.Int("players", res.Dataset.Len()),
		logger.Int("qualified", res.Dataset.Qualified().Len()),
		logger.Duration("took", elapsed),
	)

	s.data = res.Dataset
	s.loaded = true
	return s.data, nil
}

func (s *FileStore) load(ctx context.Context) (LoadResult, error) {
	f, err := s.open()
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: %s: %w", ErrOpenDataset, s.path, err)
	}
	defer f.Close()

	res, err := LoadCSV(ctx, f, s.metrics)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return res, nil
}

func (s *FileStore) open() (io.ReadCloser, error) {
	if s.fsys != nil {
		return s.fsys.Open(filepath.ToSlash(s.path))
	}
	return os.Open(s.path)
}

// StaticStore serves a dataset held in memory.
type StaticStore struct {
	data model.Dataset
}

var _ Store = StaticStore{}

// NewStaticStore wraps records in a Store.
func NewStaticStore(records []model.PlayerRecord) StaticStore {
	return StaticStore{data: model.NewDataset(records)}
}

// Dataset implements Store.
func (s StaticStore) Dataset(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	return s.data, nil
}
