// Package store persists users, products and orders as JSON arrays, one file
// per collection. Every operation re-reads the whole file and every mutation
// rewrites it in full.
//
// Each collection is guarded by a mutex so read-modify-write cycles from
// concurrent requests inside this process don't interleave. Nothing protects
// the files from other processes: two instances pointed at the same data
// directory will silently overwrite each other's changes (last writer wins).
package store

import (
	"bitwise74/shop-api/internal/model"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrCorrupt   = errors.New("collection file is corrupt")
)

// inDocker reports whether the process runs inside a container
var inDocker = func() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

type Store struct {
	Users    *Users
	Products *Products
	Orders   *Orders
}

// New opens the store rooted at dir. The directory is created if missing,
// except inside a container where it must be mounted as a volume
func New(fs afero.Fs, dir string) (*Store, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat data directory, %w", err)
	}

	if !exists {
		if inDocker() {
			return nil, fmt.Errorf("data directory %s not mounted, please use docker volumes to mount it", dir)
		}

		if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory, %w", err)
		}
	}

	return &Store{
		Users: &Users{
			c: newCollection(fs, filepath.Join(dir, "users.json"), func(u *model.User) string { return u.ID }),
		},
		Products: &Products{
			c: newCollection(fs, filepath.Join(dir, "products.json"), func(p *model.Product) string { return p.ID }),
		},
		Orders: &Orders{
			c: newCollection(fs, filepath.Join(dir, "orders.json"), func(o *model.Order) string { return o.ID }),
		},
	}, nil
}
