package repository

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/okian/slugger/internal/domain/model"
)

// countingFS counts Open calls.
type countingFS struct {
	fstest.MapFS
	mu    sync.Mutex
	opens int
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.mu.Lock()
	c.opens++
	c.mu.Unlock()
	return c.MapFS.Open(name)
}

func TestNewFileStoreEmptyPath(t *testing.T) {
	if _, err := NewFileStore(""); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("err = %v, want ErrEmptyPath", err)
	}
}

func TestFileStoreLoadsOnce(t *testing.T) {
	fsys := &countingFS{MapFS: fstest.MapFS{"hitters.csv": {Data: []byte(sample)}}}
	s, err := NewFileStore("hitters.csv", WithFS(fsys))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if s.Loaded() {
		t.Fatal("store loaded before first use")
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := s.Dataset(ctx)
			if err != nil {
				t.Errorf("Dataset: %v", err)
				return
			}
			if ds.Len() != 3 {
				t.Errorf("Len = %d, want 3", ds.Len())
			}
		}()
	}
	wg.Wait()

	if fsys.opens != 1 {
		t.Errorf("opens = %d, want 1", fsys.opens)
	}
	if !s.Loaded() {
		t.Error("store not marked loaded")
	}
}

func TestFileStoreFailureNotCached(t *testing.T) {
	fsys := &countingFS{MapFS: fstest.MapFS{}}
	s, _ := NewFileStore("hitters.csv", WithFS(fsys))
	ctx := context.Background()

	if _, err := s.Dataset(ctx); !errors.Is(err, ErrOpenDataset) {
		t.Fatalf("err = %v, want ErrOpenDataset", err)
	}

	fsys.MapFS["hitters.csv"] = &fstest.MapFile{Data: []byte(sample)}
	ds, err := s.Dataset(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("Len = %d, want 3", ds.Len())
	}
	if fsys.opens != 2 {
		t.Errorf("opens = %d, want 2", fsys.opens)
	}
}

func TestFileStoreMalformed(t *testing.T) {
	fsys := fstest.MapFS{"bad.csv": {Data: []byte("Name\nA\n")}}
	s, _ := NewFileStore("bad.csv", WithFS(fsys))
	if _, err := s.Dataset(context.Background()); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestFileStoreMetricsOption(t *testing.T) {
	fsys := fstest.MapFS{"hitters.csv": {Data: []byte(sample)}}
	s, _ := NewFileStore("hitters.csv", WithFS(fsys), WithMetrics([]model.Metric{model.AVG}))
	ds, err := s.Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	art, _ := ds.Lookup("Art Charles")
	if _, ok := art.Stats.Get(model.OPS); ok {
		t.Error("OPS read although not requested")
	}
	if v, _ := art.Stats.Get(model.AVG); v != 0.275 {
		t.Errorf("AVG = %v, want 0.275", v)
	}
}

func TestStaticStore(t *testing.T) {
	s := NewStaticStore([]model.PlayerRecord{{Name: "A"}})
	ds, err := s.Dataset(context.Background())
	if err != nil || ds.Len() != 1 {
		t.Fatalf("Dataset = %v, %v", ds.Len(), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Dataset(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
