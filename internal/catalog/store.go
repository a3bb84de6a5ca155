package catalog

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Backend persists the whole catalog. Save always receives the complete
// list and replaces whatever was stored before.
type Backend interface {
	Load() ([]Game, error)
	Save(games []Game) error
	Close() error
}

// Store owns the in-memory catalog and mirrors it to a Backend after every
// mutation. It is not safe for concurrent use; callers run it from a single
// goroutine (the UI event loop or a CLI command).
type Store struct {
	backend Backend
	games   []Game
	loadErr error
	log     zerolog.Logger
}

// Open loads the catalog from backend. A load failure does not prevent use:
// the store starts empty and the failure is kept for LoadErr.
func Open(backend Backend, log zerolog.Logger) *Store {
	s := &Store{backend: backend, log: log}

	games, err := backend.Load()
	if err != nil {
		s.loadErr = fmt.Errorf("%w: loading catalog: %w", ErrPersistence, err)
		s.log.Warn().Err(err).Msg("could not load catalog, starting empty")
		games = nil
	}
	s.games = games
	s.log.Debug().Int("games", len(s.games)).Msg("catalog loaded")
	return s
}

// LoadErr returns the error that made Open start with an empty catalog, or
// nil if the load succeeded or there was nothing to load.
func (s *Store) LoadErr() error { return s.loadErr }

// Len returns the number of games.
func (s *Store) Len() int { return len(s.games) }

// At returns the game at index.
func (s *Store) At(index int) (Game, error) {
	if err := s.checkIndex(index); err != nil {
		return Game{}, err
	}
	return s.games[index], nil
}

// Games returns a copy of the catalog in order.
func (s *Store) Games() []Game {
	out := make([]Game, len(s.games))
	copy(out, s.games)
	return out
}

// Save writes the full catalog to the backend. A failure leaves the
// in-memory catalog as it is.
func (s *Store) Save() error {
	if err := s.backend.Save(s.Games()); err != nil {
		s.log.Error().Err(err).Int("games", len(s.games)).Msg("saving catalog")
		return fmt.Errorf("%w: saving catalog: %w", ErrPersistence, err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.games) {
		return notFound(index, len(s.games))
	}
	return nil
}
