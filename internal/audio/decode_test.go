package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"
)

func encodeSamples(samples []int16) string {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestDecodeNormalization(t *testing.T) {
	samples := []int16{0, 1, -1, 16384, -16384, 32767, -32768}

	clip, err := Decode(encodeSamples(samples))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(clip.Samples) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(clip.Samples), len(samples))
	}
	if clip.SampleRate != 24000 {
		t.Errorf("sample rate = %d, want 24000", clip.SampleRate)
	}

	for i, s := range samples {
		want := float32(s) / 32768.0
		if clip.Samples[i] != want {
			t.Errorf("sample %d = %v, want %v", i, clip.Samples[i], want)
		}
	}

	// Extremes: the 16-bit minimum maps to exactly -1.0 and nothing can
	// reach +1.0 with the /32768 divisor.
	if clip.Samples[6] != -1.0 {
		t.Errorf("min sample = %v, want exactly -1.0", clip.Samples[6])
	}
	if clip.Samples[5] >= 1.0 {
		t.Errorf("max sample = %v, must stay below 1.0", clip.Samples[5])
	}
}

func TestDecodeRoundTripLossless(t *testing.T) {
	samples := make([]int16, 1024)
	for i := range samples {
		samples[i] = int16((i*773+31)%65536 - 32768)
	}

	clip, err := Decode(encodeSamples(samples))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// Reading the clip back through the PCM reader must reproduce every
	// original sample bit for bit.
	raw, err := io.ReadAll(newPCMReader(clip))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(raw) != len(samples)*2 {
		t.Fatalf("got %d bytes, want %d", len(raw), len(samples)*2)
	}
	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		if got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestDecodeDuration(t *testing.T) {
	clip, err := Decode(encodeSamples(make([]int16, 24000)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clip.Duration() != time.Second {
		t.Errorf("duration = %v, want 1s for 24000 samples", clip.Duration())
	}

	clip, _ = Decode(encodeSamples(make([]int16, 12000)))
	if clip.Duration() != 500*time.Millisecond {
		t.Errorf("duration = %v, want 500ms for 12000 samples", clip.Duration())
	}
}

func TestDecodeOddTrailingByteTruncated(t *testing.T) {
	raw := []byte{0x00, 0x40, 0x7f} // one full sample plus a stray byte
	clip, err := Decode(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(clip.Samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(clip.Samples))
	}
	if want := float32(16384) / 32768.0; clip.Samples[0] != want {
		t.Errorf("sample = %v, want %v", clip.Samples[0], want)
	}
}

func TestDecodeMalformedBase64(t *testing.T) {
	_, err := Decode("bu base64 değil!!!")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	clip, err := Decode("")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(clip.Samples) != 0 {
		t.Errorf("got %d samples, want 0", len(clip.Samples))
	}
	if clip.Duration() != 0 {
		t.Errorf("duration = %v, want 0", clip.Duration())
	}
}

func TestPCMReaderClampsOutOfRange(t *testing.T) {
	clip := &Clip{Samples: []float32{1.5, -1.5}, SampleRate: SampleRate}

	raw, err := io.ReadAll(newPCMReader(clip))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := int16(binary.LittleEndian.Uint16(raw[0:])); got != math.MaxInt16 {
		t.Errorf("clamped high = %d, want %d", got, math.MaxInt16)
	}
	if got := int16(binary.LittleEndian.Uint16(raw[2:])); got != math.MinInt16 {
		t.Errorf("clamped low = %d, want %d", got, math.MinInt16)
	}
}
