package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/tarih/internal/audio"
	"github.com/user/tarih/internal/speech"
)

// State of one card's read-aloud pipeline.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// Controller drives the synthesize-decode-play pipeline for a single result
// card. At most one playback is active at a time; a trigger while loading is
// ignored and a trigger while playing stops instead of restarting.
type Controller struct {
	synth  speech.Synthesizer
	device audio.Device

	mu       sync.Mutex
	state    State
	playback audio.Playback
	disposed bool
	onChange func(State)
}

func NewController(synth speech.Synthesizer, device audio.Device) *Controller {
	return &Controller{
		synth:  synth,
		device: device,
	}
}

// OnChange registers a state notification hook. It is invoked with the
// controller's lock held and must not call back into the controller.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle handles one read-aloud request: from idle it runs synthesis, decode
// and playback; while loading it is a no-op; while playing it stops the
// active playback without issuing a new request. Toggle blocks until
// playback has started (or failed), so callers run it off the UI loop.
func (c *Controller) Toggle(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	switch c.state {
	case StateLoading:
		c.mu.Unlock()
		return nil
	case StatePlaying:
		pb := c.playback
		c.mu.Unlock()
		if pb != nil {
			pb.Stop()
		}
		return nil
	}
	c.setState(StateLoading)
	c.mu.Unlock()

	b64, err := c.synth.Synthesize(ctx, text)
	if err != nil {
		c.abort()
		return fmt.Errorf("seslendirme başarısız: %w", err)
	}

	clip, err := audio.Decode(b64)
	if err != nil {
		c.abort()
		return fmt.Errorf("ses çözülemedi: %w", err)
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	pb, err := c.device.Play(clip)
	if err != nil {
		c.setState(StateIdle)
		c.mu.Unlock()
		return fmt.Errorf("ses çalınamadı: %w", err)
	}
	c.playback = pb
	c.setState(StatePlaying)
	c.mu.Unlock()

	go c.watch(pb)
	return nil
}

// watch returns the controller to idle when playback ends, whether it ran to
// completion or was stopped.
func (c *Controller) watch(pb audio.Playback) {
	<-pb.Done()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playback == pb {
		c.playback = nil
		c.setState(StateIdle)
	}
}

// Dispose stops any active playback and detaches the controller. Safe to
// call from every exit path, including repeatedly.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.disposed = true
	pb := c.playback
	c.playback = nil
	c.setState(StateIdle)
	c.mu.Unlock()

	if pb != nil {
		pb.Stop()
	}
}

func (c *Controller) abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		c.setState(StateIdle)
	}
}

// setState assumes c.mu is held.
func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.state = s
	if c.onChange != nil {
		c.onChange(s)
	}
}
