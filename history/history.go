// Package history provides the implementation for tracking and persisting playback resume positions.
package history

import (
	"time"

	"github.com/fujifruity/videoplayer/filesystem"
	"github.com/fujifruity/videoplayer/where"
	"github.com/metafates/gache"
)

// Record is the persisted playback state of a single source.
type Record struct {
	SourceID   string `json:"source_id"`
	PositionMs int64  `json:"position_ms"`
	DurationMs int64  `json:"duration_ms"`
}

// Position returns the stored resume position.
func (r *Record) Position() time.Duration {
	return time.Duration(r.PositionMs) * time.Millisecond
}

// Duration returns the stored source duration.
func (r *Record) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// cacher provides an abstracted, disk-backed registry for resume records.
var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.Resume(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of resume records from the persistent store.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// For returns the resume record of a specific source, if one exists.
func For(sourceID string) (*Record, bool) {
	saved, err := Get()
	if err != nil {
		return nil, false
	}
	r, ok := saved[sourceID]
	return r, ok
}

// Save persists the playback position of a source to the resume registry.
// Positions only ever move forward: re-watching an earlier section does not
// regress a further resume point.
func Save(sourceID string, position, duration time.Duration) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := &Record{
		SourceID:   sourceID,
		PositionMs: position.Milliseconds(),
		DurationMs: duration.Milliseconds(),
	}

	if existing, exists := saved[sourceID]; exists && record.PositionMs < existing.PositionMs {
		record.PositionMs = existing.PositionMs
	}

	saved[sourceID] = record
	return cacher.Set(saved)
}

// Remove permanently deletes the resume record of a specific source.
func Remove(sourceID string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, sourceID)
	return cacher.Set(saved)
}
