package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandGlobs resolves a mix of literal paths and glob patterns into a
// sorted, deduplicated file list. Literal paths must exist, and a glob
// matching nothing is an error so typos do not silently process zero
// files.
func ExpandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no file patterns provided")
	}

	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, err
			}
			seen[pattern] = struct{}{}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no matches for pattern %q", pattern)
		}
		for _, match := range matches {
			seen[match] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
