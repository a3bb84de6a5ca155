// Package export renders the catalog as a source literal: a list assignment
// with one object literal per line, ready to be dropped into a project as a
// static data file.
//
//	games = [
//	    {"id": "1", "title": "Chrono Trigger", "platform": "SNES", "url": "http://x", "image": ""},
//	]
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/plusk0/gamelist/internal/catalog"
	"github.com/plusk0/gamelist/internal/fsutil"
)

// Exporter writes the catalog to Path, bound to Variable.
type Exporter struct {
	Path     string
	Variable string
	log      zerolog.Logger
}

func New(path, variable string, log zerolog.Logger) *Exporter {
	return &Exporter{Path: path, Variable: variable, log: log}
}

// Export replaces Path with the rendered catalog. The file is written
// atomically, so a failure leaves any previous export intact. Errors wrap
// catalog.ErrExport.
func (e *Exporter) Export(games []catalog.Game) error {
	err := fsutil.WriteAtomic(e.Path, 0o644, func(w io.Writer) error {
		return Render(w, e.Variable, games)
	})
	if err != nil {
		e.log.Error().Err(err).Str("path", e.Path).Msg("exporting catalog")
		return fmt.Errorf("%w: %w", catalog.ErrExport, err)
	}
	e.log.Info().Str("path", e.Path).Int("games", len(games)).Msg("catalog exported")
	return nil
}

// Render writes the literal for games to w.
func Render(w io.Writer, variable string, games []catalog.Game) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s = [\n", variable)
	for _, g := range games {
		line, err := objectLiteral(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "    %s,\n", line)
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

// objectLiteral renders g with ", " and ": " separators in field order.
func objectLiteral(g catalog.Game) (string, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range [...]struct{ key, value string }{
		{"id", g.ID},
		{"title", g.Title},
		{"platform", g.Platform},
		{"url", g.URL},
		{"image", g.Image},
	} {
		if i > 0 {
			b.WriteString(", ")
		}
		v, err := quote(f.value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%q: %s", f.key, v)
	}
	b.WriteByte('}')
	return b.String(), nil
}

// quote returns s as a JSON string literal with HTML characters and line
// separators left unescaped.
func quote(s string) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return string(catalog.RawSeparators(bytes.TrimRight(b.Bytes(), "\n"))), nil
}
