package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// SampleRate is the fixed rate of synthesized speech. The payload is raw
// headerless PCM, so the rate is a contract with the speech client, not
// something the decoder can discover.
const SampleRate = 24000

// ErrDecode marks a payload that is not valid base64.
var ErrDecode = errors.New("audio decode failed")

// Clip is a decoded single-channel audio buffer with normalized float
// samples in [-1.0, 1.0).
type Clip struct {
	Samples    []float32
	SampleRate int
}

// Duration is the exact playing time: sample count over sample rate.
func (c *Clip) Duration() time.Duration {
	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}

// Decode converts a base64 payload of little-endian signed 16-bit mono PCM
// into a Clip. Each sample is normalized by dividing by 32768, so the 16-bit
// minimum maps to exactly -1.0 and no value can reach +1.0. A trailing odd
// byte is truncated.
func Decode(b64 string) (*Clip, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	count := len(raw) / 2
	samples := make([]float32, count)
	for i := 0; i < count; i++ {
		sample := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(sample) / 32768.0
	}

	return &Clip{Samples: samples, SampleRate: SampleRate}, nil
}
