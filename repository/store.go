// Package repository loads and saves serialized structural summaries through
// the afs storage abstraction, so summaries produced by external extractors
// can live on any supported URL scheme (file, mem, s3, gs). The engine
// itself performs no I/O; this package is its storage-facing collaborator.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/viant/blastradius/summary"
)

// Store reads and writes structural summaries. Loads are served from a
// bounded cache when one is configured.
type Store struct {
	fs    afs.Service
	cache *Cache
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithCache enables caching of parsed summaries.
func WithCache(cache *Cache) StoreOption {
	return func(s *Store) {
		s.cache = cache
	}
}

// WithService overrides the afs service, e.g. for fault injection in tests.
func WithService(fs afs.Service) StoreOption {
	return func(s *Store) {
		s.fs = fs
	}
}

// NewStore creates a summary store.
func NewStore(options ...StoreOption) *Store {
	store := &Store{fs: afs.New()}
	for _, option := range options {
		option(store)
	}
	return store
}

// Load reads one serialized summary. The format is chosen by extension:
// .yaml/.yml decode as YAML, anything else as JSON.
func (s *Store) Load(ctx context.Context, URL string) (*summary.StructuralSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(URL); ok {
			return cached, nil
		}
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary %v: %w", URL, err)
	}
	result, err := decode(URL, data)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Put(URL, result)
	}
	return result, nil
}

// LoadDir walks a directory tree and loads every .yaml/.yml/.json summary
// under it, in sorted URL order.
func (s *Store) LoadDir(ctx context.Context, baseURL string) ([]*summary.StructuralSummary, error) {
	var URLs []string
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".yaml", ".yml", ".json":
			URLs = append(URLs, url.Join(baseURL, path.Join(parent, info.Name())))
		}
		return true, nil
	}
	if err := s.fs.Walk(ctx, baseURL, storage.OnVisit(visitor)); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", baseURL, err)
	}
	sort.Strings(URLs)
	var result []*summary.StructuralSummary
	for _, URL := range URLs {
		item, err := s.Load(ctx, URL)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// Save serializes a summary to the given URL, format chosen by extension.
func (s *Store) Save(ctx context.Context, URL string, item *summary.StructuralSummary) error {
	var data []byte
	var err error
	if isYAML(URL) {
		data, err = yaml.Marshal(item)
	} else {
		data, err = json.MarshalIndent(item, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode summary %v: %w", URL, err)
	}
	if err = s.fs.Upload(ctx, URL, 0o644, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("failed to save summary %v: %w", URL, err)
	}
	if s.cache != nil {
		s.cache.Put(URL, item)
	}
	return nil
}

func decode(URL string, data []byte) (*summary.StructuralSummary, error) {
	result := &summary.StructuralSummary{}
	if isYAML(URL) {
		if err := yaml.Unmarshal(data, result); err != nil {
			return nil, fmt.Errorf("failed to decode summary %v: %w", URL, err)
		}
		return result, nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("failed to decode summary %v: %w", URL, err)
	}
	return result, nil
}

func isYAML(URL string) bool {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
