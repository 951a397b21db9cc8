package flatfile

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// result is the memoized outcome of the first load of a resource.
type result struct {
	rows  []Row
	found bool
}

// Store loads resources from fsys once and remembers the outcome, including
// absence, for the lifetime of the process. Later changes to the files are
// never observed.
type Store struct {
	fsys  fs.FS
	log   *zap.Logger
	cache sync.Map // name -> result
	group singleflight.Group
}

// NewStore creates a Store over fsys.
func NewStore(fsys fs.FS, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{fsys: fsys, log: log}
}

// Load returns the rows of the named resource and whether it exists.
// Concurrent first loads of the same name share a single read.
// Parse failures are returned and not cached.
func (s *Store) Load(name string) ([]Row, bool, error) {
	if v, ok := s.cache.Load(name); ok {
		res := v.(result)
		return res.rows, res.found, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		if v, ok := s.cache.Load(name); ok {
			return v, nil
		}
		res, err := s.read(name)
		if err != nil {
			return nil, err
		}
		s.cache.Store(name, res)
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(result)
	return res.rows, res.found, nil
}

func (s *Store) read(name string) (result, error) {
	f, err := s.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("resource not found", zap.String("resource", name))
		return result{}, nil
	}
	if err != nil {
		return result{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		return result{}, fmt.Errorf("parse %s: %w", name, err)
	}
	s.log.Debug("resource loaded", zap.String("resource", name), zap.Int("rows", len(rows)))
	return result{rows: rows, found: true}, nil
}
