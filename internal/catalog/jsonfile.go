package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/plusk0/gamelist/internal/fsutil"
)

// corruptSuffix is appended to the data file name when an unreadable file is
// set aside, so the next save does not destroy it.
const corruptSuffix = ".corrupt"

// JSONFile stores the catalog as a single JSON array file.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a backend for path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Load reads the file. A missing file is an empty catalog. A file that does
// not parse is copied to Path+".corrupt" before the error is returned.
func (j *JSONFile) Load() ([]Game, error) {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Game{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", j.Path, err)
	}

	games, err := ReadGames(bytes.NewReader(data))
	if err != nil {
		keep := j.Path + corruptSuffix
		if kerr := fsutil.WriteFileAtomic(keep, data, 0o644); kerr != nil {
			return nil, fmt.Errorf("parsing %s: %w (copy to %s failed: %v)", j.Path, err, keep, kerr)
		}
		return nil, fmt.Errorf("parsing %s: %w (original kept as %s)", j.Path, err, keep)
	}
	return games, nil
}

// Save replaces the file atomically.
func (j *JSONFile) Save(games []Game) error {
	return fsutil.WriteAtomic(j.Path, 0o644, func(w io.Writer) error {
		return WriteGames(w, games)
	})
}

// Close is a no-op; the file is not held open.
func (j *JSONFile) Close() error { return nil }
