package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
	"tableflip.dev/grid/pkg/store"
)

// Session binds one editor to one stored grid. It is the editor's Host:
// snapshots and attributes the editor publishes are written to the store,
// and store change events are fed back into the editor.
//
// Like the editor, a Session is driven from a single goroutine.
type Session struct {
	name        string
	persistence store.Persistence
	editor      *editor.Editor
	settle      time.Duration
	now         func() time.Time
	log         *slog.Logger

	attrs       store.Attributes
	lastRaw     string
	savingUntil time.Time
	err         error

	// OnAlert receives user-facing messages for rejected operations.
	OnAlert func(message string)
	// OnInteract receives the id of every clicked or toggled cell.
	OnInteract func(id string)
}

var _ editor.Host = (*Session)(nil)

// Name is the stored grid name.
func (s *Session) Name() string { return s.name }

// Editor exposes the editor for input events.
func (s *Session) Editor() *editor.Editor { return s.editor }

// Attributes returns the most recently published attributes.
func (s *Session) Attributes() store.Attributes { return s.attrs }

// Saving reports whether a save is still settling.
func (s *Session) Saving() bool { return s.now().Before(s.savingUntil) }

// Err returns and clears the first persistence error since the last call.
func (s *Session) Err() error {
	err := s.err
	s.err = nil
	return err
}

// PublishDimensions records the new size; it is written with the next
// snapshot.
func (s *Session) PublishDimensions(rows, columns int) {
	s.attrs.Rows, s.attrs.Columns = rows, columns
}

// PublishStatistics records the new counters; they are written with the next
// snapshot.
func (s *Session) PublishStatistics(stats grid.Stats) {
	s.attrs.Total = stats.Total
	s.attrs.Blocked = stats.Blocked
	s.attrs.Merged = stats.Merged
	s.attrs.Blank = stats.Blank
}

// PublishSnapshot writes the snapshot followed by the attributes and opens
// the settle window.
func (s *Session) PublishSnapshot(raw string) {
	s.savingUntil = s.now().Add(s.settle)
	s.lastRaw = raw
	s.syncAttributes()
	if err := s.persistence.SaveSnapshot(s.name, raw); err != nil {
		s.fail("save snapshot", err)
		return
	}
	if err := s.persistence.SaveAttributes(s.name, s.attrs); err != nil {
		s.fail("save attributes", err)
	}
}

// CellInteracted forwards the id of a clicked or toggled cell to OnInteract.
func (s *Session) CellInteracted(id string) {
	if s.OnInteract != nil {
		s.OnInteract(id)
	}
}

// Alert forwards a user-facing message to OnAlert.
func (s *Session) Alert(message string) {
	if s.OnAlert != nil {
		s.OnAlert(message)
	}
}

// HandleEvent applies a store change made by someone else. Events for other
// grids, events inside the settle window and snapshots identical to the last
// one seen are ignored. It reports whether the editor state changed.
func (s *Session) HandleEvent(ctx context.Context, ev store.Event) (bool, error) {
	if ev.Type != store.EventGridsInvalidated && ev.Grid != s.name {
		return false, nil
	}
	if s.Saving() {
		s.log.Debug("ignoring store event while saving", "event", ev.Type)
		if ev.Type == store.EventAttributesChanged && s.editor.AwaitingEcho() {
			// This is our own attributes write coming back.
			g := s.editor.Grid()
			_ = s.editor.ApplyDimensions(g.Rows(), g.Columns())
		}
		return false, nil
	}
	switch ev.Type {
	case store.EventAttributesChanged:
		attrs, err := s.persistence.LoadAttributes(s.name)
		if err != nil {
			return false, ignoreNotFound(err)
		}
		rows, columns := s.editor.Grid().Rows(), s.editor.Grid().Columns()
		if err := s.editor.ApplyDimensions(attrs.Rows, attrs.Columns); err != nil {
			return false, err
		}
		return rows != s.editor.Grid().Rows() || columns != s.editor.Grid().Columns(), nil
	default:
		raw, err := s.persistence.LoadSnapshot(s.name)
		if err != nil {
			return false, ignoreNotFound(err)
		}
		if raw == s.lastRaw {
			return false, nil
		}
		if err := s.editor.ApplySnapshot(raw); err != nil {
			// Keep the current grid; the next write will replace the bad one.
			return false, nil
		}
		s.lastRaw = raw
		s.syncAttributes()
		return true, nil
	}
}

// reload loads the stored snapshot into the editor.
func (s *Session) reload() error {
	raw, err := s.persistence.LoadSnapshot(s.name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	// Load falls back to a default grid itself and logs why.
	_ = s.editor.Load(raw)
	s.lastRaw = raw
	s.syncAttributes()
	return nil
}

func (s *Session) syncAttributes() {
	g := s.editor.Grid()
	s.attrs.Rows, s.attrs.Columns = g.Rows(), g.Columns()
}

func (s *Session) fail(op string, err error) {
	s.log.Error(op, "err", err)
	if s.err == nil {
		s.err = err
	}
	s.Alert("Could not save " + s.name + ": " + err.Error())
}

func ignoreNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
