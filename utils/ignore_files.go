package utils

import (
	"os"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreFileName is the optional per-project ignore file read from the
// scan root. It uses .gitignore syntax and adds exclude rules on top of
// the built-in defaults and any --exclude flags.
const IgnoreFileName = ".bridgeignore"

// LoadIgnoreRules reads the ignore file at the scan root, returning nil
// when the file is absent or unreadable.
func LoadIgnoreRules(root string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, root, nil)
}
