package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem keeps one JSON file per collection key under a root directory.
// Writes go through a temp file and rename so a crash mid-write cannot leave
// a truncated collection behind.
type Filesystem struct {
	root string
}

func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./farmdata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) pathFor(key string) (string, error) {
	k := strings.TrimSpace(key)
	if k == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.ContainsAny(k, `/\`) || strings.Contains(k, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.root, k+".json"), nil
}

func (f *Filesystem) Read(key string) ([]byte, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *Filesystem) Write(key string, data []byte) error {
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.root, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (f *Filesystem) Close() error { return nil }
