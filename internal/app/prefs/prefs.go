package prefs

//go:generate mockgen -source=prefs.go -destination=prefs_mock.go -package=prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"mocha/internal/app/errors"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// Prefs holds user preferences persisted between runs
type Prefs struct {
	PollIntervalMs int64  `toml:"poll_interval_ms"`
	WrapDefault    bool   `toml:"wrap_default"`
	Theme          string `toml:"theme"`
	ShowTimestamps bool   `toml:"show_timestamps"`
}

// Store defines the interface for preference persistence
type Store interface {
	Load() Prefs
	Save(p Prefs) error
}

type store struct {
	mu   sync.Mutex
	path string
	log  logger.Logger
}

// NewStore creates a preference store under the user's config directory
func NewStore(log logger.Logger) Store {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return &store{
		path: filepath.Join(dir, config.AppDirName, config.PrefsFileName),
		log:  log.WithComponent("PREFS"),
	}
}

// Defaults returns the preference values used when nothing is saved.
// PollIntervalMs zero means the config's poll interval applies.
func Defaults() Prefs {
	return Prefs{
		Theme:          config.DefaultTheme,
		ShowTimestamps: true,
	}
}

// Load reads preferences from disk. A missing or unparsable file degrades
// to defaults.
func (s *store) Load() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return p
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		s.log.Debug().Err(err).Msg("Ignoring unparsable preferences file")

		return Defaults()
	}

	return p
}

// Save writes preferences to disk, creating the directory on demand
func (s *store) Save(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrPrefsDirCreate, err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrPrefsFileWrite, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrPrefsFileWrite, err)
	}

	return nil
}
