package content

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every markdown file.
var DefaultInclude = []string{"**/*.md"}

// DefaultExclude skips drafts folders and underscore-prefixed partials.
var DefaultExclude = []string{"drafts/**", "**/drafts/**", "_*.md"}

// included applies the include then exclude patterns to a path relative to
// the content directory. An empty include list admits everything.
func included(relPath string, include, exclude []string) bool {
	if len(include) > 0 && !matchesAny(relPath, include) {
		return false
	}
	return !matchesAny(relPath, exclude)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support and also tries the bare file name.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
