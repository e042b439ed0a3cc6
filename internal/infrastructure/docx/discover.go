package docx

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

const lockFilePrefix = "~$"

// Discover expands directories into the Word documents below them, in
// lexical order per directory. Explicit file arguments are kept in the
// order given. Word lock files are skipped.
func Discover(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "discover documents", err)
		}
		if !info.IsDir() {
			if isWordDocument(path) {
				out = append(out, path)
			}
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isWordDocument(p) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}

func isWordDocument(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, lockFilePrefix) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".doc", ".docx":
		return true
	}
	return false
}
