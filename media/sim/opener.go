package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/fujifruity/videoplayer/media"
)

// Opener resolves source identifiers against a registry of scripted tracks.
// Every Open yields a fresh decoder/extractor pair owned by one session.
type Opener struct {
	mu      sync.Mutex
	tracks  map[string]Track
	latency time.Duration
}

// NewOpener returns an empty registry with the default decode latency.
func NewOpener() *Opener {
	return &Opener{
		tracks:  make(map[string]Track),
		latency: DefaultLatency,
	}
}

// SetLatency overrides the decode latency of subsequently opened decoders.
func (o *Opener) SetLatency(latency time.Duration) {
	o.mu.Lock()
	o.latency = latency
	o.mu.Unlock()
}

// Register binds a source identifier to a track.
func (o *Opener) Register(sourceID string, track Track) {
	o.mu.Lock()
	o.tracks[sourceID] = track
	o.mu.Unlock()
}

// Open resolves a registered source into a decoder/extractor pair.
func (o *Opener) Open(sourceID string) (media.Decoder, media.Extractor, error) {
	o.mu.Lock()
	track, ok := o.tracks[sourceID]
	latency := o.latency
	o.mu.Unlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", media.ErrUnknownSource, sourceID)
	}

	dec := NewDecoder()
	dec.SetLatency(latency)
	return dec, NewExtractor(track), nil
}
