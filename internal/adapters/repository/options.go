package repository

import (
	"io/fs"

	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for load reports.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metric columns read from the file.
func WithMetrics(metrics []model.Metric) Option {
	return func(s *FileStore) {
		if len(metrics) > 0 {
			s.metrics = append([]model.Metric(nil), metrics...)
		}
	}
}

// WithFS reads the dataset from fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) Option {
	return func(s *FileStore) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}
