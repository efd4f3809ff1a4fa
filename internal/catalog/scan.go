package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zjrosen/soundpad/internal/log"
)

// ListDir returns the .wav and .mp3 files directly under dir, sorted by
// name. A missing directory is reported and yields an empty list; the
// program runs on with an empty catalog.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn(log.CatCatalog, "Sound directory does not exist", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sound directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".wav", ".mp3":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	// ReadDir sorts by filename; keep the guarantee explicit since group
	// admission order rides on it.
	sort.Strings(paths)
	return paths, nil
}
