package config

import "time"

// app constants
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	AppName        = "mocha"
	ConfigFileName = "mocha.yaml"
	AppDirName     = "mocha"

	Version = "0.5.0"
)

// poll constants
const (
	DefaultPollInterval = time.Second
	MinPollInterval     = 100 * time.Millisecond

	DefaultMaxReadBytes = 2 * 1024 * 1024

	WatchDebounce = 100 * time.Millisecond
)

// ui constants
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	DefaultTheme = ThemeDark
)

// recent files constants
const (
	RecentDirName  = ".mocha"
	RecentFileName = "recent.json"

	MaxRecentFiles = 20
)

// preferences constants
const (
	PrefsFileName = "prefs.toml"
)

// event bus constants
const (
	EventBufferSize = 256
)

// session constants
const (
	ShutdownTimeout = 5 * time.Second
)
