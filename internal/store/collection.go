package store

import (
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// collection is a flat, ordered list of records of one type stored in a
// single JSON file
type collection[T any] struct {
	fs   afero.Fs
	path string
	id   func(*T) string

	mu sync.Mutex
}

func newCollection[T any](fs afero.Fs, path string, id func(*T) string) *collection[T] {
	return &collection[T]{
		fs:   fs,
		path: path,
		id:   id,
	}
}

// load reads the whole collection. A missing file is an empty collection
// and gets written out immediately. Caller must hold mu
func (c *collection[T]) load() ([]T, error) {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s, %w", c.path, err)
		}

		records := []T{}
		if err := c.save(records); err != nil {
			return nil, err
		}

		return records, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s, %v", ErrCorrupt, c.path, err)
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}

// save overwrites the file with the full collection. Caller must hold mu
func (c *collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s, %w", c.path, err)
	}

	if err := afero.WriteFile(c.fs, c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s, %w", c.path, err)
	}

	return nil
}

func (c *collection[T]) all() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load()
}

// find returns a copy of the first record matching pred
func (c *collection[T]) find(pred func(*T) bool) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if pred(&records[i]) {
			r := records[i]
			return &r, nil
		}
	}

	return nil, ErrNotFound
}

func (c *collection[T]) get(id string) (*T, error) {
	return c.find(func(r *T) bool { return c.id(r) == id })
}

// insert appends rec. check runs against the current records under the lock
// and can veto the insert
func (c *collection[T]) insert(rec T, check func([]T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	if check != nil {
		if err := check(records); err != nil {
			return err
		}
	}

	return c.save(append(records, rec))
}

// modify applies fn to the record with the given id and persists the result.
// Nothing is written when the id doesn't exist or fn returns an error
func (c *collection[T]) modify(id string, fn func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if c.id(&records[i]) != id {
			continue
		}

		if err := fn(&records[i]); err != nil {
			return nil, err
		}

		if err := c.save(records); err != nil {
			return nil, err
		}

		r := records[i]
		return &r, nil
	}

	return nil, ErrNotFound
}

// modifyWhere applies fn to every record matching pred and returns how many
// were touched. The file is only rewritten if at least one matched
func (c *collection[T]) modifyWhere(pred func(*T) bool, fn func(*T)) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range records {
		if pred(&records[i]) {
			fn(&records[i])
			n++
		}
	}

	if n == 0 {
		return 0, nil
	}

	return n, c.save(records)
}

func (c *collection[T]) remove(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(records))
	for i := range records {
		if c.id(&records[i]) != id {
			kept = append(kept, records[i])
		}
	}

	if len(kept) == len(records) {
		return false, nil
	}

	return true, c.save(kept)
}
