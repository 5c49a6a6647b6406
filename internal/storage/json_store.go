package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// JSONGateway stores each snapshot key as a JSON file in a directory.
type JSONGateway struct {
	dir string
}

func NewJSONGateway(dir string) *JSONGateway {
	return &JSONGateway{dir: dir}
}

func (g *JSONGateway) file(key string) string {
	return filepath.Join(g.dir, key+".json")
}

func (g *JSONGateway) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(g.file(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

func (g *JSONGateway) Save(key string, data []byte) error {
	if err := os.MkdirAll(g.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Write to a temp file first so a crash mid-write never truncates the
	// previous snapshot.
	tmp := g.file(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, g.file(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (g *JSONGateway) Remove(key string) error {
	if err := os.Remove(g.file(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (g *JSONGateway) Close() error {
	return nil
}
