// Package sim provides an in-memory media backend: a scripted track, an
// extractor with exact sync-point seek semantics and an asynchronous
// pool-based decoder. It stands in for the hardware collaborators in the
// CLI, the TUI and the scenario tests.
package sim

import "time"

// Track describes a synthetic video stream: evenly spaced frames with a sync
// sample every GOPSize frames, starting at time zero.
type Track struct {
	Duration      time.Duration
	FrameInterval time.Duration
	GOPSize       int
}

// DefaultTrack is a 20 s stream at roughly 30 fps with a sync sample every
// half second.
var DefaultTrack = Track{
	Duration:      20 * time.Second,
	FrameInterval: 33 * time.Millisecond,
	GOPSize:       15,
}

// frames returns the number of samples in the track.
func (t Track) frames() int {
	if t.FrameInterval <= 0 {
		return 0
	}
	return int(t.Duration/t.FrameInterval) + 1
}

// pts returns the presentation time of the i-th sample.
func (t Track) pts(i int) time.Duration {
	return time.Duration(i) * t.FrameInterval
}

// gop returns the sync-sample spacing, at least one.
func (t Track) gop() int {
	if t.GOPSize < 1 {
		return 1
	}
	return t.GOPSize
}
