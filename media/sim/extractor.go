package sim

import (
	"encoding/binary"
	"time"

	"github.com/fujifruity/videoplayer/media"
)

// SampleSize is the wire size of one simulated sample: the presentation time
// in nanoseconds followed by a sync flag byte.
const SampleSize = 9

// Extractor is a cursor over a Track's samples.
//
// Not safe for concurrent use; the session serializes all access.
type Extractor struct {
	track    Track
	cursor   int
	released bool
}

// NewExtractor returns an extractor positioned on the track's first sample.
func NewExtractor(track Track) *Extractor {
	return &Extractor{track: track}
}

// SampleTime returns the presentation time under the cursor, or EndOfStream
// past the last sample.
func (e *Extractor) SampleTime() time.Duration {
	if e.cursor >= e.track.frames() {
		return media.EndOfStream
	}
	return e.track.pts(e.cursor)
}

// ReadSample encodes the current sample into buf.
func (e *Extractor) ReadSample(buf []byte) (int, bool) {
	if e.cursor >= e.track.frames() {
		return 0, true
	}

	binary.BigEndian.PutUint64(buf, uint64(e.track.pts(e.cursor)))
	if e.IsSyncSample() {
		buf[8] = 1
	} else {
		buf[8] = 0
	}
	return SampleSize, false
}

// IsSyncSample reports whether the cursor sits on a sync sample.
func (e *Extractor) IsSyncSample() bool {
	return e.cursor%e.track.gop() == 0
}

// Advance moves the cursor forward, returning false past the last sample.
func (e *Extractor) Advance() bool {
	e.cursor++
	return e.cursor < e.track.frames()
}

// SeekTo moves the cursor to the sync sample selected by mode around target.
// Sync points are exact here: a seek to zero lands on the first sample.
func (e *Extractor) SeekTo(target time.Duration, mode media.SeekMode) {
	if target < 0 {
		target = 0
	}

	gop := e.track.gop()
	gopSpan := time.Duration(gop) * e.track.FrameInterval
	lastSync := ((e.track.frames() - 1) / gop) * gop

	prev := int(target/gopSpan) * gop
	if prev > lastSync {
		prev = lastSync
	}

	next := prev
	if e.track.pts(next) < target {
		next += gop
	}
	if next > lastSync {
		next = lastSync
	}

	switch mode {
	case media.SeekNextSync:
		e.cursor = next
	case media.SeekClosestSync:
		if target-e.track.pts(prev) <= e.track.pts(next)-target {
			e.cursor = prev
		} else {
			e.cursor = next
		}
	default:
		e.cursor = prev
	}
}

// Release marks the extractor freed.
func (e *Extractor) Release() {
	e.released = true
}
