package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"mocha/internal/app/errors"
)

// ExpandPaths expands glob patterns in file arguments. Plain paths pass
// through untouched; patterns that match nothing are an error so typos do
// not silently open an empty viewer.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			paths = append(paths, arg)

			continue
		}

		matches, err := expandPattern(arg)
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %q", errors.ErrNoMatches, arg)
		}

		paths = append(paths, matches...)
	}

	return paths, nil
}

// expandPattern matches the base pattern against entries of its directory
func expandPattern(pattern string) ([]string, error) {
	dir := filepath.Dir(pattern)

	matcher, err := glob.Compile(filepath.Base(pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errors.ErrBadPattern, pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var matches []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if matcher.Match(e.Name()) {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(matches)

	return matches, nil
}
