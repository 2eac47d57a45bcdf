package refdata

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/xtding233/roll-odds/internal/odds"
	"github.com/xtding233/roll-odds/internal/pkg/observability"
)

// Store holds the engine for the current tables snapshot. Readers never see a
// partially loaded snapshot: Reload swaps a whole engine in one step.
type Store struct {
	loader  *Loader
	current atomic.Pointer[odds.Engine]
}

// NewStore loads the initial snapshot. It fails when the tables are invalid.
func NewStore(loader *Loader) (*Store, error) {
	tables, err := loader.Load()
	if err != nil {
		return nil, err
	}
	s := &Store{loader: loader}
	s.current.Store(odds.NewEngine(tables))
	return s, nil
}

// Engine returns the engine bound to the current snapshot.
func (s *Store) Engine() *odds.Engine {
	return s.current.Load()
}

// Reload re-reads the tables. On failure the previous snapshot stays active.
func (s *Store) Reload() error {
	tables, err := s.loader.Load()
	if err != nil {
		observability.TableReloads.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("path", s.loader.Path()).Msg("reference table reload rejected, keeping previous tables")
		return err
	}
	s.current.Store(odds.NewEngine(tables))
	observability.TableReloads.WithLabelValues("ok").Inc()
	log.Info().
		Str("path", s.loader.Path()).
		Str("version", tables.Version).
		Ints("levels", tables.Levels()).
		Msg("reference tables reloaded")
	return nil
}
