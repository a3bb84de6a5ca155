package catalog

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Submit adds or updates a game depending on mode. Fields are trimmed before
// validation. A validation failure returns mode unchanged so the caller can
// keep editing; every other outcome returns add mode.
//
// The in-memory change stays applied when persisting fails; the returned
// error then wraps ErrPersistence.
func (s *Store) Submit(mode Mode, g Game) (Mode, error) {
	g = g.Normalize()
	if err := g.Validate(); err != nil {
		return mode, err
	}

	if index, ok := mode.Editing(); ok {
		if err := s.checkIndex(index); err != nil {
			return AddMode(), err
		}
		s.games[index] = g
		s.log.Info().Int("index", index).Str("id", g.ID).Msg("game updated")
	} else {
		s.games = append(s.games, g)
		s.log.Info().Int("index", len(s.games)-1).Str("id", g.ID).Msg("game added")
	}

	return AddMode(), s.Save()
}

// Delete removes the game at index; later games shift down by one.
func (s *Store) Delete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	removed := s.games[index]
	s.games = slices.Delete(s.games, index, index+1)
	s.log.Info().Int("index", index).Str("id", removed.ID).Msg("game deleted")

	return s.Save()
}

// Search yields (index, game) pairs whose title or platform contains term,
// ignoring case and surrounding whitespace. An empty term yields every game.
// Indexes address the full catalog, so they can be passed to EditMode and
// Delete. The sequence reads the catalog when iterated, and its indexes are
// valid only until the next mutation: collect them before deleting more
// than one game.
func (s *Store) Search(term string) iter.Seq2[int, Game] {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(yield func(int, Game) bool) {
		for i, g := range s.games {
			if needle != "" && !g.matches(needle) {
				continue
			}
			if !yield(i, g) {
				return
			}
		}
	}
}

// Replace swaps the whole catalog for games, as when importing a JSON file.
// Every game must validate or nothing changes.
func (s *Store) Replace(games []Game) error {
	next := make([]Game, 0, len(games))
	for i, g := range games {
		g = g.Normalize()
		if err := g.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		next = append(next, g)
	}
	s.games = next
	s.log.Info().Int("games", len(next)).Msg("catalog replaced")

	return s.Save()
}
