// Package loader reads local text files into documents.
package loader

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"recurag/internal/domain"
)

// SupportedExtensions lists the file types loaded into the context.
// Binary assets are skipped.
var SupportedExtensions = map[string]struct{}{
	".md":  {},
	".txt": {},
	".csv": {},
	".py":  {},
}

// Load reads the given paths (globs allowed) into documents. Missing
// files and unsupported extensions are skipped silently, matching the
// behavior of an interactive context that tolerates stale file lists.
func Load(paths []string) ([]domain.Document, error) {
	var documents []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			ext := strings.ToLower(filepath.Ext(m))
			if _, ok := SupportedExtensions[ext]; !ok {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, err
			}
			documents = append(documents, domain.Document{
				ID:      hashString(m),
				Path:    m,
				Content: string(data),
			})
		}
	}
	return documents, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
