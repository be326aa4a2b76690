// Package media defines the collaborator ports for playback: the asynchronous
// frame decoder and the sample extractor that the session drives.
//
// Decoding and demuxing themselves live behind these interfaces; the session
// only ever schedules what a decoder hands back.
package media

import (
	"errors"
	"fmt"
	"time"
)

// SeekMode selects how a seek target snaps onto the stream's sync points.
type SeekMode int

const (
	// SeekPreviousSync snaps to the nearest sync sample at or before the target.
	SeekPreviousSync SeekMode = iota
	// SeekNextSync snaps to the nearest sync sample at or after the target.
	SeekNextSync
	// SeekClosestSync snaps to whichever sync sample is closest to the target.
	SeekClosestSync
)

// String returns the mode identifier used in logs and CLI flags.
func (m SeekMode) String() string {
	switch m {
	case SeekPreviousSync:
		return "previous-sync"
	case SeekNextSync:
		return "next-sync"
	case SeekClosestSync:
		return "closest-sync"
	default:
		return "unknown"
	}
}

// ParseSeekMode resolves a mode identifier as produced by SeekMode.String.
func ParseSeekMode(s string) (SeekMode, error) {
	switch s {
	case "previous-sync":
		return SeekPreviousSync, nil
	case "next-sync":
		return SeekNextSync, nil
	case "closest-sync":
		return SeekClosestSync, nil
	default:
		return SeekPreviousSync, fmt.Errorf("unknown seek mode %q", s)
	}
}

// EndOfStream marks the extractor position past the last sample.
const EndOfStream = time.Duration(-1)

// DecoderEvents receives the decoder's asynchronous callbacks.
//
// Implementations must not call back into the decoder from these methods;
// they are expected to enqueue work onto the session's serialized loop.
type DecoderEvents interface {
	// OnInputBufferAvailable signals that the input buffer with the given id
	// is free and can be filled with the next sample.
	OnInputBufferAvailable(id int)

	// OnOutputBufferAvailable signals a decoded frame sitting in the output
	// buffer with the given id, stamped with its presentation time.
	// A frame with eos set carries no picture and terminates the stream.
	OnOutputBufferAvailable(id int, pts time.Duration, eos bool)

	// OnOutputFormatStable signals that the decoder's output configuration is
	// settled. It is emitted once after every Start, including restarts
	// following a Flush.
	OnOutputFormatStable()

	// OnError reports an asynchronous decoder failure.
	OnError(err error)
}

// Decoder is the hardware (or simulated) video decoder port.
//
// Output buffer ids handed out through OnOutputBufferAvailable are borrowed
// from the decoder's pool and must be returned via ReleaseOutput exactly once
// each, or the pool starves.
type Decoder interface {
	// Start begins decoding and event delivery to the given sink.
	Start(events DecoderEvents) error

	// QueueInput submits a sample into the input buffer with the given id.
	// An empty sample with eos set signals end of stream.
	QueueInput(id int, sample []byte, eos bool) error

	// ReleaseOutput returns an output buffer to the pool, rendering the frame
	// onto the display surface when render is true.
	ReleaseOutput(id int, render bool)

	// Flush discards all in-flight buffers. The decoder must be restarted
	// with Start before it accepts further input.
	Flush()

	// Stop halts decoding but keeps the decoder reusable.
	Stop()

	// Release destroys the decoder. No callback fires afterwards.
	Release()
}

// Extractor is the container demuxer port, a cursor over the stream's samples.
type Extractor interface {
	// SampleTime returns the presentation time of the sample under the
	// cursor, or EndOfStream past the last sample.
	SampleTime() time.Duration

	// ReadSample copies the current sample into buf and reports its size.
	// eos is true when the cursor is past the last sample.
	ReadSample(buf []byte) (n int, eos bool)

	// IsSyncSample reports whether the current sample is independently
	// decodable (a keyframe).
	IsSyncSample() bool

	// Advance moves the cursor to the next sample, returning false past the
	// last one.
	Advance() bool

	// SeekTo moves the cursor to the sync sample selected by mode around the
	// target time.
	SeekTo(target time.Duration, mode SeekMode)

	// Release frees the extractor and any underlying handle.
	Release()
}

// Opener resolves a source identifier into a decoder/extractor pair bound to
// that source. Each call yields fresh instances owned by a single session.
type Opener interface {
	Open(sourceID string) (Decoder, Extractor, error)
}

// ErrUnknownSource is returned by an Opener for an identifier it cannot
// resolve.
var ErrUnknownSource = errors.New("unknown media source")
