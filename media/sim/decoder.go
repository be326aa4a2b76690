package sim

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/fujifruity/videoplayer/media"
)

// Pool and timing defaults for the simulated decoder.
const (
	DefaultInputSlots  = 4
	DefaultOutputSlots = 4
	DefaultLatency     = 2 * time.Millisecond
)

type inputItem struct {
	id  int
	pts time.Duration
	eos bool
}

// Decoder is an asynchronous pool-based decoder over simulated samples. It
// mimics the collaborator contract the session is written against: a fixed
// set of input and output buffer slots, callbacks from a private goroutine,
// a format-stable signal after every start, and flush semantics that reclaim
// all outstanding output buffers.
type Decoder struct {
	latency  time.Duration
	inSlots  int
	outSlots int

	mu       sync.Mutex
	events   media.DecoderEvents
	running  bool
	released bool
	in       chan inputItem
	outFree  chan int
	outPTS   map[int]time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
	rendered []time.Duration
}

// NewDecoder returns an idle decoder with default pool sizes and latency.
func NewDecoder() *Decoder {
	return &Decoder{
		latency:  DefaultLatency,
		inSlots:  DefaultInputSlots,
		outSlots: DefaultOutputSlots,
	}
}

// SetLatency overrides the per-frame decode delay. Only before Start.
func (d *Decoder) SetLatency(latency time.Duration) {
	d.latency = latency
}

// Start begins event delivery: every input slot is offered to the sink and
// the decode pump starts draining queued samples.
func (d *Decoder) Start(events media.DecoderEvents) error {
	d.mu.Lock()
	if d.released {
		d.mu.Unlock()
		return fmt.Errorf("decoder released")
	}
	if d.running {
		d.mu.Unlock()
		return fmt.Errorf("decoder already running")
	}

	d.events = events
	d.running = true
	d.in = make(chan inputItem, d.inSlots)
	d.outFree = make(chan int, d.outSlots)
	for i := 0; i < d.outSlots; i++ {
		d.outFree <- i
	}
	d.outPTS = make(map[int]time.Duration, d.outSlots)
	d.stop = make(chan struct{})

	in, outFree, stop := d.in, d.outFree, d.stop
	slots := d.inSlots
	d.wg.Add(1)
	d.mu.Unlock()

	go d.pump(events, in, outFree, stop)
	go func() {
		for i := 0; i < slots; i++ {
			events.OnInputBufferAvailable(i)
		}
	}()
	return nil
}

// pump serializes decoding: one sample at a time, in order, each costing the
// configured latency and one output slot.
func (d *Decoder) pump(events media.DecoderEvents, in chan inputItem, outFree chan int, stop chan struct{}) {
	defer d.wg.Done()

	stable := false
	for {
		select {
		case <-stop:
			return
		case item := <-in:
			if !item.eos {
				// The input slot frees as soon as its sample is consumed.
				events.OnInputBufferAvailable(item.id)
			}

			select {
			case <-time.After(d.latency):
			case <-stop:
				return
			}

			var id int
			select {
			case id = <-outFree:
			case <-stop:
				return
			}

			if !stable {
				events.OnOutputFormatStable()
				stable = true
			}

			d.mu.Lock()
			d.outPTS[id] = item.pts
			d.mu.Unlock()
			events.OnOutputBufferAvailable(id, item.pts, item.eos)
		}
	}
}

// QueueInput submits a sample previously offered through
// OnInputBufferAvailable.
func (d *Decoder) QueueInput(id int, sample []byte, eos bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return fmt.Errorf("decoder not running")
	}
	if eos {
		select {
		case d.in <- inputItem{id: id, eos: true}:
			return nil
		default:
			return fmt.Errorf("input queue overflow")
		}
	}
	if len(sample) < SampleSize {
		return fmt.Errorf("short sample: %d bytes", len(sample))
	}

	pts := time.Duration(binary.BigEndian.Uint64(sample))
	select {
	case d.in <- inputItem{id: id, pts: pts}:
		return nil
	default:
		return fmt.Errorf("input queue overflow")
	}
}

// ReleaseOutput returns an output buffer to the pool. A release for a buffer
// the decoder no longer tracks (reclaimed by a flush) is ignored.
func (d *Decoder) ReleaseOutput(id int, render bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pts, ok := d.outPTS[id]
	if !ok {
		return
	}
	delete(d.outPTS, id)

	if render {
		d.rendered = append(d.rendered, pts)
	}
	select {
	case d.outFree <- id:
	default:
	}
}

// Flush discards everything in flight and reclaims all output buffers. The
// decoder must be restarted before it accepts further input.
func (d *Decoder) Flush() {
	d.halt()

	d.mu.Lock()
	d.outPTS = nil
	d.in = nil
	d.outFree = nil
	d.mu.Unlock()
}

// Stop halts decoding, keeping the decoder restartable.
func (d *Decoder) Stop() {
	d.halt()
}

// Release destroys the decoder. No callback fires afterwards.
func (d *Decoder) Release() {
	d.halt()

	d.mu.Lock()
	d.released = true
	d.events = nil
	d.mu.Unlock()
}

// halt stops the pump synchronously so no event straddles the state change.
func (d *Decoder) halt() {
	d.mu.Lock()
	if d.running {
		close(d.stop)
		d.running = false
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Rendered returns the presentation times of every frame released with
// render set, in release order.
func (d *Decoder) Rendered() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]time.Duration, len(d.rendered))
	copy(out, d.rendered)
	return out
}

// Outstanding returns the number of output buffers currently on loan.
func (d *Decoder) Outstanding() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.outPTS)
}
