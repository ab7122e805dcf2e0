package audio

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Playback is one active clip on a device. Done is closed when playback
// finishes, whether it ran to completion or was stopped.
type Playback interface {
	Done() <-chan struct{}
	Stop()
}

// Device plays decoded clips. The oto-backed implementation is OutputDevice;
// tests substitute their own.
type Device interface {
	Play(clip *Clip) (Playback, error)
}

// oto allows a single context per process, so it is acquired lazily once
// and shared by every OutputDevice.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func outputContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(SampleRate, 1, 2)
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

// OutputDevice plays clips on the system audio output.
type OutputDevice struct{}

func NewOutputDevice() *OutputDevice {
	return &OutputDevice{}
}

func (d *OutputDevice) Play(clip *Clip) (Playback, error) {
	ctx, err := outputContext()
	if err != nil {
		return nil, err
	}

	player := ctx.NewPlayer(newPCMReader(clip))
	player.Play()

	pb := &otoPlayback{
		player: player,
		done:   make(chan struct{}),
	}
	go pb.watch()
	return pb, nil
}

type otoPlayback struct {
	player oto.Player
	done   chan struct{}
	once   sync.Once
}

func (p *otoPlayback) watch() {
	ticker := time.NewTicker(15 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if !p.player.IsPlaying() {
			p.finish()
			return
		}
	}
}

func (p *otoPlayback) finish() {
	p.once.Do(func() {
		p.player.Close()
		close(p.done)
	})
}

func (p *otoPlayback) Done() <-chan struct{} { return p.done }

func (p *otoPlayback) Stop() { p.finish() }

// pcmReader streams a clip back out as little-endian s16 bytes for the oto
// player. Multiplying by 32768 inverts the decoder's normalization exactly;
// only the unreachable +1.0 end needs clamping.
type pcmReader struct {
	clip *Clip
	pos  int
}

func newPCMReader(clip *Clip) *pcmReader {
	return &pcmReader{clip: clip}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.clip.Samples) {
		return 0, io.EOF
	}

	n := 0
	for n+1 < len(p) && r.pos < len(r.clip.Samples) {
		scaled := float64(r.clip.Samples[r.pos]) * 32768.0
		if scaled > 32767 {
			scaled = 32767
		} else if scaled < -32768 {
			scaled = -32768
		}
		binary.LittleEndian.PutUint16(p[n:], uint16(int16(scaled)))
		n += 2
		r.pos++
	}
	return n, nil
}
