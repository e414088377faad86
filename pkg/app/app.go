package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/grid/pkg/config"
	"tableflip.dev/grid/pkg/ctxlog"
	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/snapshot"
	"tableflip.dev/grid/pkg/store"
)

// Service provides high-level operations on stored grids. It wraps
// persistence and the editor so the TUI and the CLI share logic.
type Service struct {
	Persistence store.Persistence
	// Config supplies default dimensions, capabilities and the settle window.
	// Nil uses built-in defaults.
	Config *config.Config
	// Now stamps snapshots and drives the settle window. Defaults to time.Now.
	Now func() time.Time
}

var (
	ErrExists      = errors.New("app: grid already exists")
	ErrNotFound    = errors.New("app: grid not found")
	errPersistence = errors.New("app: no persistence configured")
)

// Summary describes a stored grid without decoding its snapshot.
type Summary struct {
	Name       string
	Attributes store.Attributes
}

// Grids returns sorted grid names.
func (s *Service) Grids(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errPersistence
	}
	return s.Persistence.Grids(ctx, ""), nil
}

// Summaries lists every grid with its stored attributes. Grids without
// attributes are listed with zero values.
func (s *Service) Summaries(ctx context.Context) ([]Summary, error) {
	names, err := s.Grids(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		attrs, err := s.Persistence.LoadAttributes(name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			ctxlog.FromContext(ctx).Warn("unreadable attributes", "grid", name, "err", err)
		}
		out = append(out, Summary{Name: name, Attributes: attrs})
	}
	return out, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Exists reports whether name has a stored snapshot.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	if s.Persistence == nil {
		return false, errPersistence
	}
	_, err := s.Persistence.LoadSnapshot(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Create stores a new default grid of the given size and returns a session
// on it.
func (s *Service) Create(ctx context.Context, name string, rows, columns int) (*Session, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}
	sess := s.newSession(ctx, name)
	if err := sess.editor.Load(""); err != nil {
		return nil, err
	}
	if err := sess.editor.Resize(rows, columns); err != nil {
		return nil, err
	}
	if err := sess.Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Open returns a session on the stored grid name. An absent grid opens on a
// default grid that is stored on the first change.
func (s *Service) Open(ctx context.Context, name string) (*Session, error) {
	if s.Persistence == nil {
		return nil, errPersistence
	}
	sess := s.newSession(ctx, name)
	if err := sess.reload(); err != nil {
		return nil, err
	}
	return sess, nil
}

// OpenExisting is Open but fails with ErrNotFound for an absent grid.
func (s *Service) OpenExisting(ctx context.Context, name string) (*Session, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.Open(ctx, name)
}

// Replace stores g as the grid name, creating it when absent.
func (s *Service) Replace(ctx context.Context, name string, g *grid.Grid) error {
	if s.Persistence == nil {
		return errPersistence
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	raw, err := snapshot.Encode(g, now())
	if err != nil {
		return err
	}
	if err := s.Persistence.SaveSnapshot(name, string(raw)); err != nil {
		return err
	}
	st := g.Stats()
	ctxlog.FromContext(ctx).Debug("replaced grid", "grid", name, "rows", g.Rows(), "columns", g.Columns())
	return s.Persistence.SaveAttributes(name, store.Attributes{
		Rows:    g.Rows(),
		Columns: g.Columns(),
		Total:   st.Total,
		Blocked: st.Blocked,
		Merged:  st.Merged,
		Blank:   st.Blank,
	})
}

// Delete removes a stored grid.
func (s *Service) Delete(ctx context.Context, name string) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.Persistence.Delete(name)
}

func (s *Service) newSession(ctx context.Context, name string) *Session {
	cfg := s.Config
	if cfg == nil {
		cfg = &config.Config{
			Rows:         editor.DefaultRows,
			Columns:      editor.DefaultColumns,
			Settle:       config.DefaultSettle,
			Capabilities: editor.DefaultCapabilities(),
		}
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}
	log := ctxlog.FromContext(ctx).With("grid", name)
	sess := &Session{
		name:        name,
		persistence: s.Persistence,
		settle:      cfg.Settle,
		now:         now,
		log:         log,
	}
	sess.editor = editor.New(editor.Options{
		Capabilities: cfg.Capabilities,
		Host:         sess,
		Logger:       log,
		Rows:         cfg.Rows,
		Columns:      cfg.Columns,
		Now:          now,
	})
	return sess
}
