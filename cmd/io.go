// cmd/io.go

package main

import (
	"os"
	"path/filepath"

	"AvePNG/pkg/png"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// loadPng reads and decodes a whole PNG file.
func loadPng(path string) (*png.Png, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	p, err := png.DecodePng(b)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return p, nil
}

// savePng writes the encoded stream to a temp file in the destination
// directory and renames it into place, so a crash never leaves a
// half-written PNG behind.
func savePng(path string, p *png.Png) error {
	tmp := filepath.Join(filepath.Dir(path),
		"."+filepath.Base(path)+"."+uuid.New().String()[:8])
	if err := os.WriteFile(tmp, p.Encode(), 0644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "rename %s to %s", tmp, path)
	}
	return nil
}

// withFileLock runs fn while holding an exclusive sidecar lock, for
// in-place rewrites. Fails fast when another process holds the lock.
func withFileLock(path string, fn func() error) error {
	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return errors.Wrapf(err, "lock %s", path)
	}
	if !ok {
		return errors.Errorf("%s is locked by another process", path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()
	return fn()
}
