package recent

//go:generate mockgen -source=recent.go -destination=recent_mock.go -package=recent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mocha/internal/app/errors"
	"mocha/internal/config"
)

// File represents a recently opened log file
type File struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	LastOpened int64  `json:"lastOpened"`
	Mtime      int64  `json:"mtime,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Exists     bool   `json:"exists"`
}

// Store defines the interface for the recent files list
type Store interface {
	List() []File
	Add(path string) error
	Remove(path string) error
	Clear() error
}

type store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a recent files store rooted at the user's home directory
func NewStore() Store {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &store{
		path: filepath.Join(home, config.RecentDirName, config.RecentFileName),
	}
}

// List returns the recent files, newest first, with mtime, size and
// existence refreshed from the filesystem
func (s *store) List() []File {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.load()
	for i := range files {
		refresh(&files[i])
	}

	return files
}

// Add records a path as most recently opened, deduplicating by path and
// capping the list
func (s *store) Add(path string) error {
	if path == "" {
		return errors.ErrNoPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := File{
		Path:       path,
		Name:       filepath.Base(path),
		LastOpened: time.Now().UnixMilli(),
	}
	refresh(&entry)

	files := append([]File{entry}, without(s.load(), path)...)

	if len(files) > config.MaxRecentFiles {
		files = files[:config.MaxRecentFiles]
	}

	return s.save(files)
}

// Remove drops a path from the list; a missing list file is a no-op
func (s *store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}

	return s.save(without(s.load(), path))
}

// Clear empties the recent files list
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save([]File{})
}

// load reads the list from disk; unreadable or corrupted data degrades to
// an empty list
func (s *store) load() []File {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var files []File
	if err := json.Unmarshal(data, &files); err != nil {
		return nil
	}

	return files
}

func (s *store) save(files []File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRecentDirCreate, err)
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRecentFileWrite, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRecentFileWrite, err)
	}

	return nil
}

func without(files []File, path string) []File {
	filtered := make([]File, 0, len(files))

	for _, f := range files {
		if f.Path != path {
			filtered = append(filtered, f)
		}
	}

	return filtered
}

func refresh(f *File) {
	info, err := os.Stat(f.Path)
	if err != nil {
		f.Exists = false
		f.Mtime = 0
		f.Size = 0

		return
	}

	f.Exists = true
	f.Size = info.Size()
	f.Mtime = info.ModTime().UnixMilli()
}
