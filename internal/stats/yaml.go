package stats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAMLFile stores the table as a YAML mapping from difficulty name to
// {games, wins, best_time}.
type YAMLFile struct {
	path string
}

// NewYAMLFile returns a backend for path. A leading ~ is expanded.
func NewYAMLFile(path string) (*YAMLFile, error) {
	p, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &YAMLFile{path: p}, nil
}

// Path returns the resolved file path.
func (f *YAMLFile) Path() string {
	return f.path
}

func (f *YAMLFile) ReadAll() (Table, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats: read %s: %w", f.path, err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("stats: parse %s: %w", f.path, err)
	}
	return t.normalize()
}

// WriteAll writes to a temp file in the same directory and renames it
// over the old one.
func (f *YAMLFile) WriteAll(t Table) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("stats: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("stats: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("stats: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("stats: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("stats: sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stats: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("stats: replace %s: %w", f.path, err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("stats: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
