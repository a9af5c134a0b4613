package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Disk stores blobs under a base directory on the local filesystem.
type Disk struct {
	base string
}

func NewDisk(base string) *Disk {
	return &Disk{base: base}
}

func (d *Disk) Save(ctx context.Context, dir, name, contentType string, r io.Reader, size int64) (string, error) {
	target := filepath.Join(d.base, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	// Recorded paths always use forward slashes, independent of OS.
	return path.Join(dir, name), nil
}
