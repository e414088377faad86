package grid

// Stats are the counters derived from a grid.
type Stats struct {
	Total   int `json:"total"`
	Blocked int `json:"blocked"`
	// Merged counts merge groups, one per visible anchor.
	Merged int `json:"merged"`
	// Blank counts visible blanked cells; a blanked group counts once.
	Blank int `json:"blank"`
}

// Stats recomputes the counters over the whole grid.
func (g *Grid) Stats() Stats {
	var s Stats
	g.Each(func(c Cell) {
		s.Total++
		if c.Blocked {
			s.Blocked++
		}
		if c.Merged && !c.Hidden {
			s.Merged++
		}
		if c.Blank && !c.Hidden {
			s.Blank++
		}
	})
	return s
}
