package code_analyzer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ollamabridge/code_analyzer/models"
	"ollamabridge/utils"
)

// CodeCollector walks a directory tree and gathers qualifying files as
// FileChunks, in a stable lexicographic order, under a total-byte budget.
type CodeCollector struct {
	Root          string
	Filter        *PathFilter
	MaxTotalBytes int64
}

// CollectorOptions configures a collection pass.
type CollectorOptions struct {
	Root          string
	Include       []string
	Exclude       []string
	MaxFileBytes  int64
	MaxTotalBytes int64
}

// NewCodeCollector initializes a collector for the given root. An ignore
// file at the root (if present) contributes additional exclude rules.
func NewCodeCollector(options CollectorOptions) *CodeCollector {
	ignoreRules := utils.LoadIgnoreRules(options.Root)
	return &CodeCollector{
		Root:          options.Root,
		Filter:        NewPathFilter(options.Include, options.Exclude, ignoreRules, options.MaxFileBytes),
		MaxTotalBytes: options.MaxTotalBytes,
	}
}

// CollectFiles walks the tree and returns the collected chunks in walk
// order. A missing root or a walk that matches nothing yields an empty
// slice and a nil error; surfacing "no files matched" is the caller's job.
//
// The file that would push the running total over MaxTotalBytes ends the
// walk: files are included whole or not at all, never truncated.
func (collector *CodeCollector) CollectFiles() ([]models.FileChunk, models.CollectStats, error) {
	var chunks []models.FileChunk
	var stats models.CollectStats

	if _, err := os.Stat(collector.Root); err != nil {
		return chunks, stats, nil
	}

	err := filepath.WalkDir(collector.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}

		relativePath, err := filepath.Rel(collector.Root, path)
		if err != nil || relativePath == "." {
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if d.IsDir() {
			if collector.Filter.Excluded(relativePath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		stats.FilesSeen++

		if collector.Filter.Excluded(relativePath, false) || !collector.Filter.Included(relativePath) {
			stats.SkippedFiltered++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			stats.SkippedFiltered++
			return nil
		}

		if collector.Filter.TooLarge(info.Size()) {
			stats.SkippedTooLarge++
			return nil
		}

		if collector.MaxTotalBytes > 0 && stats.BytesCollected+info.Size() > collector.MaxTotalBytes {
			return fs.SkipAll
		}

		content, err := os.ReadFile(path)
		if err != nil {
			stats.SkippedFiltered++
			return nil
		}

		chunks = append(chunks, models.FileChunk{
			RelativePath: relativePath,
			// Invalid UTF-8 is dropped rather than failing the collection.
			Content: strings.ToValidUTF8(string(content), ""),
			Size:    info.Size(),
		})
		stats.FilesCollected++
		stats.BytesCollected += info.Size()

		return nil
	})

	if err != nil {
		return nil, stats, err
	}

	return chunks, stats, nil
}
