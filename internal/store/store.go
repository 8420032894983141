// ABOUTME: Named persisted slots: small blobs saved and restored by name
// ABOUTME: Dir keeps one file per slot with atomic replace; Memory backs tests and ephemeral hosts

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// ErrNotFound is returned by Load when a slot has never been saved.
var ErrNotFound = errors.New("slot not found")

// ErrBadName rejects slot names that could escape the backing directory.
var ErrBadName = errors.New("invalid slot name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// Slots is a key/value store for small persisted records.
type Slots interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
}

func checkName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// Dir stores each slot as <dir>/<name>.json.
type Dir struct {
	path string
}

// NewDir returns a directory-backed store. The directory is created lazily on Save.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the backing directory.
func (d *Dir) Path() string { return d.path }

func (d *Dir) file(name string) string {
	return filepath.Join(d.path, name+".json")
}

// Load reads a slot. Missing slots return an error wrapping ErrNotFound.
func (d *Dir) Load(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.file(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", name, err)
	}
	return data, nil
}

// Save replaces a slot atomically.
func (d *Dir) Save(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0o700); err != nil {
		return fmt.Errorf("creating slot directory: %w", err)
	}

	path := d.file(name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing temp slot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp slot: %w", err)
	}
	return nil
}

// Memory is an in-process store.
type Memory struct {
	slots map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Load returns a copy of the slot's data.
func (m *Memory) Load(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, ok := m.slots[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data.
func (m *Memory) Save(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	m.slots[name] = append([]byte(nil), data...)
	return nil
}

// Names lists saved slots in sorted order.
func (m *Memory) Names() []string {
	out := make([]string, 0, len(m.slots))
	for n := range m.slots {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
