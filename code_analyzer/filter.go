package code_analyzer

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// defaultExcludes are directory names that are never collected, no matter
// what include patterns say. Matched against every path component.
var defaultExcludes = []string{
	".git",
	".venv",
	"__pycache__",
	"node_modules",
	"dist",
	"build",
	".pytest_cache",
	".ruff_cache",
}

// defaultIncludes are the patterns used when the caller supplies no
// include globs.
var defaultIncludes = []string{
	"**/*.py",
	"**/*.js",
	"**/*.ts",
	"**/*.php",
	"**/*.md",
	"**/*.json",
	"**/*.yaml",
	"**/*.yml",
}

// PathFilter decides whether a relative path qualifies for collection.
// Exclude rules win over include rules. The filter itself does no I/O;
// the caller stats the file and passes the on-disk size to TooLarge.
type PathFilter struct {
	includes     []string
	excludes     []string
	ignoreRules  gitignore.GitIgnore
	maxFileBytes int64
}

// NewPathFilter builds a filter from user-supplied glob sets. Empty
// includes fall back to the default extension set. ignoreRules may be
// nil when the scan root carries no ignore file.
func NewPathFilter(includes []string, excludes []string, ignoreRules gitignore.GitIgnore, maxFileBytes int64) *PathFilter {
	if len(includes) == 0 {
		includes = defaultIncludes
	}
	return &PathFilter{
		includes:     includes,
		excludes:     excludes,
		ignoreRules:  ignoreRules,
		maxFileBytes: maxFileBytes,
	}
}

// Excluded reports whether relPath matches an exclude glob, lies under a
// default-excluded directory, or is ruled out by the ignore file.
func (f *PathFilter) Excluded(relPath string, isDir bool) bool {
	if matchesAny(relPath, f.excludes) {
		return true
	}
	for _, part := range strings.Split(relPath, "/") {
		for _, name := range defaultExcludes {
			if part == name {
				return true
			}
		}
		// User excludes given as bare names (e.g. "vendor") also match
		// path components, the same way the default set does.
		for _, pattern := range f.excludes {
			if part == pattern {
				return true
			}
		}
	}
	if f.ignoreRules != nil {
		if match := f.ignoreRules.Relative(relPath, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

// Included reports whether relPath matches at least one include glob.
func (f *PathFilter) Included(relPath string) bool {
	return matchesAny(relPath, f.includes)
}

// TooLarge reports whether a file's on-disk size exceeds the per-file limit.
func (f *PathFilter) TooLarge(size int64) bool {
	return f.maxFileBytes > 0 && size > f.maxFileBytes
}

// matchesAny matches relPath against each doublestar pattern. A bare
// pattern like "*.log" is retried with "**/" prepended, so it applies
// at any depth, the way shell-style matching treats it.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if !strings.HasPrefix(pattern, "**/") {
			if ok, err := doublestar.Match("**/"+pattern, relPath); err == nil && ok {
				return true
			}
		}
	}
	return false
}
