package visual

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/corona10/goimagehash"
	"github.com/rs/zerolog/log"
)

// imageExtensions lists the file types accepted as reference screenshots.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Record is one known-brand reference screenshot: its identifier (the file
// base name), its perceptual hash, and the file it came from.
type Record struct {
	ID   string
	Hash *goimagehash.ImageHash
	Path string
}

// Store is a read-only perceptual-fingerprint index. Build it once with
// NewStoreFromDir (or lazily through a Provider); it is never mutated
// afterwards and needs no synchronization.
type Store struct {
	records       []Record
	normalizeSize uint
}

// NewStoreFromDir builds a store from every decodable image in dir. Hidden
// (dot-prefixed) files and files without an image extension are skipped; a
// file that fails to decode or hash is logged and skipped, so one corrupt
// reference image never aborts the build.
func NewStoreFromDir(dir string, normalizeSize uint) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read reference directory %s: %w", dir, err)
	}

	store := &Store{normalizeSize: normalizeSize}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			log.Debug().
				Str("component", "visual").
				Str("file", name).
				Msg("Skipping non-image file in reference directory")
			continue
		}

		path := filepath.Join(dir, name)
		rec, err := loadRecord(path, name, normalizeSize)
		if err != nil {
			log.Warn().
				Str("component", "visual").
				Str("file", name).
				Err(err).
				Msg("Skipping unreadable reference screenshot")
			continue
		}
		store.records = append(store.records, rec)
	}

	log.Info().
		Str("component", "visual").
		Str("dir", dir).
		Int("fingerprints", len(store.records)).
		Msg("Fingerprint store built")
	return store, nil
}

func loadRecord(path, id string, normalizeSize uint) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read: %w", err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return Record{}, err
	}
	hash, err := HashImage(img, normalizeSize)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Hash: hash, Path: path}, nil
}

// Len reports the number of fingerprints in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the store's fingerprint records. The returned slice must
// not be modified.
func (s *Store) Records() []Record {
	return s.records
}

// Provider hands out the lazily built fingerprint store. The build runs at
// most once per Provider regardless of how many goroutines ask first;
// callers observe either "not yet built" (they block) or the completed
// store, never a partial one.
type Provider struct {
	dir           string
	normalizeSize uint

	once  sync.Once
	store *Store
	err   error
}

// NewProvider creates a Provider for the given reference directory. Nothing
// is read until the first Store call.
func NewProvider(dir string, normalizeSize uint) *Provider {
	return &Provider{dir: dir, normalizeSize: normalizeSize}
}

// Store returns the built store, building it on first call.
func (p *Provider) Store() (*Store, error) {
	p.once.Do(func() {
		p.store, p.err = NewStoreFromDir(p.dir, p.normalizeSize)
	})
	return p.store, p.err
}
