// Package audio plays short procedural clicks for circle collisions. Samples
// are synthesized on the fly into stereo float32 buffers and handed to oto.
package audio

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"cgdemos/internal/circles"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// MaxVoices caps simultaneous clicks. A crowded arena can report dozens
	// of contacts per tick and stacking them clips the speakers.
	MaxVoices = 4
)

// SoundKind identifies the collision cues.
type SoundKind int

const (
	SoundWall SoundKind = iota
	SoundContact
)

// System owns the oto context. A nil *System is valid and silent, which is
// what the host keeps when audio init fails.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	voices int32
}

// Init opens the default output device. The context becomes usable once
// ready closes; cues requested before that are dropped.
func Init() (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &System{ctx: ctx, ready: ready, volume: 0.5}, nil
}

// Attach turns simulation events into cues. Gain follows impact speed
// relative to the fastest spawn speed.
func (s *System) Attach(bus *circles.EventBus) {
	if s == nil || bus == nil {
		return
	}
	bus.Subscribe(circles.EventWallHit, func(e circles.Event) {
		s.Play(SoundWall, cueGain(e))
	})
	bus.Subscribe(circles.EventContact, func(e circles.Event) {
		s.Play(SoundContact, cueGain(e))
	})
}

func cueGain(e circles.Event) float64 {
	ref := float64(circles.MaxSpeed)
	if e.Type == circles.EventContact {
		ref *= 2
	}
	return clampF(float64(e.Speed)/ref, 0, 1)
}

// Play starts a cue on its own player and returns immediately.
func (s *System) Play(kind SoundKind, gain float64) {
	if s == nil || gain <= 0 {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	if atomic.AddInt32(&s.voices, 1) > MaxVoices {
		atomic.AddInt32(&s.voices, -1)
		return
	}
	samples := generateSound(kind, gain)
	if len(samples) == 0 {
		atomic.AddInt32(&s.voices, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&s.voices, -1)
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(s.volume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation without harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateSound(kind SoundKind, gain float64) []byte {
	switch kind {
	case SoundWall:
		return genWall(gain)
	case SoundContact:
		return genContact(gain)
	}
	return nil
}

// genWall: dull wooden knock, lower and longer for harder hits.
func genWall(gain float64) []byte {
	n := int((0.035 + 0.03*gain) * SampleRate)
	buf := makeBuf(n)
	freq := 180 + 120*gain
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 9)
		s := fm(t, freq*(1-0.3*p), 1.5, 2.0*env) * env * 0.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genContact: short glassy tick, brighter for faster pairs.
func genContact(gain float64) []byte {
	n := int(0.05 * SampleRate)
	buf := makeBuf(n)
	freq := 520 + 480*gain
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 12)
		s := fm(t, freq, 2.756, 3.0*env) * env * 0.45
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
