package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidPollInterval = errors.New("invalid poll interval")
	ErrInvalidMaxReadBytes = errors.New("invalid max read size")
	ErrInvalidTheme        = errors.New("invalid theme")

	ErrNoPath        = errors.New("no path provided")
	ErrFileStat      = errors.New("cannot stat file")
	ErrFileOpen      = errors.New("cannot open file")
	ErrFileRead      = errors.New("cannot read file")
	ErrFileSeek      = errors.New("cannot seek in file")
	ErrFileWrite     = errors.New("cannot write file")
	ErrFileTruncated = errors.New("file truncated since last read")

	ErrFileAlreadyOpen = errors.New("file is already open")
	ErrFileNotOpen     = errors.New("file is not open")

	ErrLineNotFound  = errors.New("line not found in file")
	ErrInvalidSearch = errors.New("invalid search parameters")

	ErrRecentDirCreate = errors.New("failed to create recent files directory")
	ErrRecentFileRead  = errors.New("failed to read recent files")
	ErrRecentFileWrite = errors.New("failed to write recent files")
	ErrRecentCorrupted = errors.New("recent files data is corrupted")
	ErrPrefsFileWrite  = errors.New("failed to write preferences")
	ErrPrefsDirCreate  = errors.New("failed to create preferences directory")

	ErrWatcherCreate = errors.New("failed to create file watcher")
	ErrWatcherAdd    = errors.New("failed to watch path")

	ErrNoFilesGiven   = errors.New("no log files given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoMatches      = errors.New("pattern matched no files")
	ErrBadPattern     = errors.New("invalid file pattern")
)

var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)
