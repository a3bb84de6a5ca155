package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plusk0/gamelist/internal/catalog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestImport_CreatesDirAndCopies(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "downloads", "Chrono.PNG")
	writeFile(t, src, "cover")
	in := NewIntake(filepath.Join(root, "imagenes"), zerolog.Nop())

	name, err := in.Import(src)
	require.NoError(t, err)
	assert.Equal(t, "Chrono.PNG", name)

	got, err := os.ReadFile(filepath.Join(root, "imagenes", "Chrono.PNG"))
	require.NoError(t, err)
	assert.Equal(t, "cover", string(got))
	assert.FileExists(t, src, "source untouched")
}

func TestImport_ExistingDirAndOverwrite(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "imagenes")
	writeFile(t, filepath.Join(dir, "box.jpg"), "old")
	src := filepath.Join(root, "other", "box.jpg")
	writeFile(t, src, "new")

	name, err := NewIntake(dir, zerolog.Nop()).Import(src)
	require.NoError(t, err)
	assert.Equal(t, "box.jpg", name)

	got, err := os.ReadFile(filepath.Join(dir, "box.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestImport_SourceAlreadyManaged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "imagenes")
	src := filepath.Join(dir, "in-place.gif")
	writeFile(t, src, "gif")

	name, err := NewIntake(dir, zerolog.Nop()).Import(src)
	require.NoError(t, err)
	assert.Equal(t, "in-place.gif", name)

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "gif", string(got))
}

func TestImport_Failures(t *testing.T) {
	root := t.TempDir()

	t.Run("missing source", func(t *testing.T) {
		in := NewIntake(filepath.Join(root, "imagenes"), zerolog.Nop())
		name, err := in.Import(filepath.Join(root, "nope.png"))
		require.ErrorIs(t, err, catalog.ErrImageIntake)
		assert.Empty(t, name)
		assert.NoFileExists(t, filepath.Join(root, "imagenes", "nope.png"))
	})

	t.Run("wrong extension", func(t *testing.T) {
		src := filepath.Join(root, "notes.txt")
		writeFile(t, src, "text")
		_, err := NewIntake(filepath.Join(root, "imagenes"), zerolog.Nop()).Import(src)
		require.ErrorIs(t, err, catalog.ErrImageIntake)
	})

	t.Run("images dir is a file", func(t *testing.T) {
		blocker := filepath.Join(root, "blocker")
		writeFile(t, blocker, "")
		src := filepath.Join(root, "a.png")
		writeFile(t, src, "png")
		_, err := NewIntake(blocker, zerolog.Nop()).Import(src)
		require.ErrorIs(t, err, catalog.ErrImageIntake)
	})
}

func TestResolve(t *testing.T) {
	in := NewIntake("imagenes", zerolog.Nop())
	assert.Equal(t, filepath.Join("imagenes", "a.png"), in.Resolve("a.png"))
	assert.Equal(t, "", in.Resolve(""))
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.png", "a.JPG", "a.jpeg", "b.Gif"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"a.bmp", "png", "a.png.txt"} {
		assert.False(t, Allowed(name), name)
	}
}
