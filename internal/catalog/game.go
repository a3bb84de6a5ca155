// Package catalog keeps the ordered list of games, persists it after every
// change and answers searches over it.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Game is one catalog entry. Field order is the persisted key order.
type Game struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Image    string `json:"image"`
}

// Normalize returns g with surrounding whitespace trimmed from every field.
func (g Game) Normalize() Game {
	return Game{
		ID:       strings.TrimSpace(g.ID),
		Title:    strings.TrimSpace(g.Title),
		Platform: strings.TrimSpace(g.Platform),
		URL:      strings.TrimSpace(g.URL),
		Image:    strings.TrimSpace(g.Image),
	}
}

// Validate reports the required fields that are blank. Image is optional and
// the URL is not checked for shape. Ids are not required to be unique.
func (g Game) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"id", g.ID},
		{"title", g.Title},
		{"platform", g.Platform},
		{"url", g.URL},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Label is the one-line rendering used by list views.
func (g Game) Label() string {
	return fmt.Sprintf("%s - %s [%s]", g.ID, g.Title, g.Platform)
}

func (g Game) matches(needle string) bool {
	return strings.Contains(strings.ToLower(g.Title), needle) ||
		strings.Contains(strings.ToLower(g.Platform), needle)
}

// ReadGames decodes a JSON array of games. Missing keys decode as empty
// strings. Anything but whitespace after the array is an error.
func ReadGames(r io.Reader) ([]Game, error) {
	dec := json.NewDecoder(r)
	var games []Game
	if err := dec.Decode(&games); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after catalog array")
	}
	if games == nil {
		games = []Game{}
	}
	return games, nil
}

// WriteGames encodes games as an indented JSON array. Non-ASCII text and
// HTML-significant characters are written as-is.
func WriteGames(w io.Writer, games []Game) error {
	if games == nil {
		games = []Game{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(games); err != nil {
		return err
	}
	_, err := w.Write(RawSeparators(buf.Bytes()))
	return err
}

// RawSeparators replaces the \u2028 and \u2029 escapes encoding/json always
// emits with the characters themselves. b must be encoder output, where a
// backslash only appears inside string escapes.
func RawSeparators(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' || i+1 >= len(b) {
			out = append(out, c)
			continue
		}
		if b[i+1] == 'u' && i+6 <= len(b) {
			switch string(b[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, c, b[i+1])
		i++
	}
	return out
}
