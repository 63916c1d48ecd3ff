package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

const (
	JobsFile     = "jobs.json"
	SalariesFile = "salaries.json"
	lockFile     = ".lock"
)

var (
	ErrLocked       = errors.New("output group is locked by another run")
	ErrInvalidGroup = errors.New("invalid group name")
)

// Store persists records as pretty-printed JSON arrays under
// {root}/{group}/{name}.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) GroupDir(group string) string {
	return filepath.Join(s.root, group)
}

// EnsureGroup creates the group directory (and the root) if missing.
func (s *Store) EnsureGroup(group string) error {
	if err := ValidateGroup(group); err != nil {
		return err
	}
	if err := os.MkdirAll(s.GroupDir(group), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Lock takes a non-blocking exclusive lock on the group directory. The
// returned func releases it.
func (s *Store) Lock(group string) (func() error, error) {
	fl := flock.New(filepath.Join(s.GroupDir(group), lockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", group, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", group, ErrLocked)
	}
	return fl.Unlock, nil
}

// Groups lists the group directories under the root, sorted by name.
func (s *Store) Groups() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	groups := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			groups = append(groups, e.Name())
		}
	}
	sort.Strings(groups)
	return groups, nil
}

// Load reads the records previously persisted for group/name. A missing or
// unreadable file yields an empty list: that is the normal first-run state.
func Load[T any](s *Store, group, name string) []T {
	data, err := os.ReadFile(filepath.Join(s.GroupDir(group), name))
	if err != nil {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		return []T{}
	}
	return records
}

// Append writes existing followed by fresh to group/name, replacing the file.
// No deduplication happens between the two lists.
func Append[T any](s *Store, group, name string, existing, fresh []T) error {
	merged := make([]T, 0, len(existing)+len(fresh))
	merged = append(merged, existing...)
	merged = append(merged, fresh...)

	data, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return writeAtomic(filepath.Join(s.GroupDir(group), name), data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ValidateGroup rejects names that would escape the output root.
func ValidateGroup(group string) error {
	if group == "" || group == "." || group == ".." ||
		strings.ContainsAny(group, `/\`) || strings.Contains(group, "..") {
		return fmt.Errorf("%q: %w", group, ErrInvalidGroup)
	}
	return nil
}
