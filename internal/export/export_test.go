package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plusk0/gamelist/internal/catalog"
)

var games = []catalog.Game{
	{ID: "1", Title: "Chrono Trigger", Platform: "SNES", URL: "http://x", Image: ""},
	{ID: "2", Title: `Pokémon "Rojo" & <Azul>`, Platform: "Game Boy", URL: "http://p", Image: "poké.png"},
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "games", games))

	want := "games = [\n" +
		`    {"id": "1", "title": "Chrono Trigger", "platform": "SNES", "url": "http://x", "image": ""},` + "\n" +
		`    {"id": "2", "title": "Pokémon \"Rojo\" & <Azul>", "platform": "Game Boy", "url": "http://p", "image": "poké.png"},` + "\n" +
		"]\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "catalog", nil))
	assert.Equal(t, "catalog = [\n]\n", buf.String())
}

func TestRender_LineSeparatorsRaw(t *testing.T) {
	var buf bytes.Buffer
	g := catalog.Game{ID: "1", Title: "A\u2028B\u2029C", Platform: "p", URL: "u"}
	require.NoError(t, Render(&buf, "games", []catalog.Game{g}))

	assert.Contains(t, buf.String(), `"title": "A`+"\u2028"+`B`+"\u2029"+`C"`)
	assert.NotContains(t, buf.String(), `\u2028`)
}

func TestRender_LinesAreJSONObjects(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "games", games))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for i, line := range lines[1:3] {
		var g catalog.Game
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimSpace(line), ",")), &g))
		assert.Equal(t, games[i], g)
	}
}

func TestExport_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games_data.py")
	e := New(path, "games", zerolog.Nop())

	require.NoError(t, e.Export(games))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	assert.Equal(t, "games = [", lines[0])
	assert.Equal(t, "]", lines[len(lines)-1])
	assert.Len(t, lines[1:len(lines)-1], 2, "one literal line per game")
}

func TestExport_Failure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "games_data.py")

	err := New(path, "games", zerolog.Nop()).Export(games)
	require.ErrorIs(t, err, catalog.ErrExport)
	assert.NoFileExists(t, path)
}

func TestExport_FailureLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the final rename fail.
	blocked := filepath.Join(dir, "games_data.py")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))

	err := New(blocked, "games", zerolog.Nop()).Export(games)
	require.ErrorIs(t, err, catalog.ErrExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "games_data.py", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}
