package models

// FileChunk holds one collected file: its project-relative path
// (slash-separated) and its full text content.
type FileChunk struct {
	RelativePath string
	Content      string
	Size         int64
}

// CollectStats reports what a collection pass saw and skipped.
type CollectStats struct {
	FilesSeen       int
	FilesCollected  int
	SkippedTooLarge int
	SkippedFiltered int
	BytesCollected  int64
}
