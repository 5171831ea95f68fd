package utils

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdown writes the analysis Markdown to w with terminal syntax
// highlighting. An empty theme writes the content verbatim, and a
// highlighting failure falls back to plain output, so the result always
// reaches the writer.
func RenderMarkdown(w io.Writer, content string, theme string) error {
	if theme == "" {
		_, err := fmt.Fprintln(w, content)
		return err
	}
	if err := quick.Highlight(w, content, "markdown", "terminal256", theme); err != nil {
		if _, werr := fmt.Fprint(w, content); werr != nil {
			return werr
		}
	}
	// Highlighted output does not always end with a newline.
	_, err := fmt.Fprintln(w)
	return err
}
