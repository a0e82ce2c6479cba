package overlay

import "github.com/paulmach/orb"

// Popover is metadata anchored to a map coordinate.
type Popover struct {
	Anchor  orb.Point // WGS84
	Lines   []string
	Visible bool
	Seq     uint64 // sequence of the event that produced it
}
