// Package images copies user-picked cover images into the managed images
// directory. Games refer to their image by base file name only.
package images

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/plusk0/gamelist/internal/catalog"
	"github.com/plusk0/gamelist/internal/fsutil"
)

// AllowedExtensions are the image types offered by the file picker, with
// leading dots as fyne's extension filter expects.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Intake copies images into Dir.
type Intake struct {
	Dir string
	log zerolog.Logger
}

// NewIntake returns an Intake for dir. The directory is created on first use.
func NewIntake(dir string, log zerolog.Logger) *Intake {
	return &Intake{Dir: dir, log: log}
}

// Import copies sourcePath into the images directory under its base name and
// returns that name. A file of the same name is overwritten. Errors wrap
// catalog.ErrImageIntake.
func (in *Intake) Import(sourcePath string) (string, error) {
	name := filepath.Base(sourcePath)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: no file selected", catalog.ErrImageIntake)
	}
	if !Allowed(name) {
		return "", fmt.Errorf("%w: %s is not one of %s", catalog.ErrImageIntake, name, strings.Join(AllowedExtensions, ", "))
	}

	if err := fsutil.EnsureDir(in.Dir); err != nil {
		in.log.Error().Err(err).Str("dir", in.Dir).Msg("creating images directory")
		return "", fmt.Errorf("%w: %w", catalog.ErrImageIntake, err)
	}

	dest := in.Resolve(name)
	if fsutil.SameFile(sourcePath, dest) {
		in.log.Debug().Str("image", name).Msg("image already in images directory")
		return name, nil
	}

	if err := fsutil.CopyFileAtomic(sourcePath, dest, 0o644); err != nil {
		in.log.Error().Err(err).Str("source", sourcePath).Msg("copying image")
		return "", fmt.Errorf("%w: copying %s: %w", catalog.ErrImageIntake, name, err)
	}
	in.log.Info().Str("image", name).Str("source", sourcePath).Msg("image copied")
	return name, nil
}

// Resolve returns the path of a stored image name inside the images
// directory. It returns "" for an empty name.
func (in *Intake) Resolve(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(in.Dir, filepath.Base(name))
}

// Allowed reports whether name has one of AllowedExtensions, ignoring case.
func Allowed(name string) bool {
	return slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(name)))
}
