package editor

import "tableflip.dev/grid/pkg/grid"

// Host is the surrounding application. The editor writes every externally
// observable value through it.
type Host interface {
	// PublishDimensions is called after any change of row or column count.
	PublishDimensions(rows, columns int)
	// PublishSnapshot is called with the encoded grid after every mutation.
	PublishSnapshot(raw string)
	// PublishStatistics is called after every statistics recomputation.
	PublishStatistics(stats grid.Stats)
	// CellInteracted is called after a click or checkbox toggle on a cell.
	CellInteracted(id string)
	// Alert shows a user-facing message for a rejected operation.
	Alert(message string)
}

type nopHost struct{}

func (nopHost) PublishDimensions(int, int)   {}
func (nopHost) PublishSnapshot(string)       {}
func (nopHost) PublishStatistics(grid.Stats) {}
func (nopHost) CellInteracted(string)        {}
func (nopHost) Alert(string)                 {}
