// Package audio plays procedurally synthesized cues for simulation events.
package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"nebula/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Sound identifies a cue.
type Sound int

const (
	SoundSupernova Sound = iota
	SoundLevelUp
	SoundUnlock
	SoundAchievement
	SoundDoubleHole
	SoundTimeWarp
	SoundExpire
)

// System owns the output device. A nil *System is silent, so callers never
// need to check whether audio came up.
type System struct {
	ctx   *oto.Context
	ready chan struct{}

	sfxVolume float64

	mu      sync.Mutex
	ambient oto.Player

	// Limits overlapping supernova rumbles; more clips the speakers.
	activeNovas int32
	variant     uint64
}

// New opens the output device. The device finishes initializing in the
// background; cues requested before then are dropped.
func New(volume float64) (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	return &System{ctx: ctx, ready: ready, sfxVolume: clamp01(volume)}, nil
}

func (s *System) isReady() bool {
	if s == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Attach maps simulation events onto cues.
func (s *System) Attach(bus *game.EventBus) {
	if s == nil {
		return
	}
	bus.Subscribe(game.EventSupernova, func(game.Event) { s.Play(SoundSupernova) })
	bus.Subscribe(game.EventLevelUp, func(game.Event) { s.Play(SoundLevelUp) })
	bus.Subscribe(game.EventAbilityUnlocked, func(game.Event) { s.Play(SoundUnlock) })
	bus.Subscribe(game.EventAchievement, func(game.Event) { s.Play(SoundAchievement) })
	bus.Subscribe(game.EventAbilityActivated, func(e game.Event) {
		switch game.Ability(e.Data) {
		case game.AbilityDoubleHole:
			s.Play(SoundDoubleHole)
		case game.AbilityTimeWarp:
			s.Play(SoundTimeWarp)
		}
	})
	bus.Subscribe(game.EventAbilityExpired, func(game.Event) { s.Play(SoundExpire) })
}

// Play synthesizes and plays a cue on its own goroutine.
func (s *System) Play(kind Sound) {
	if !s.isReady() {
		return
	}
	if kind == SoundSupernova {
		if atomic.LoadInt32(&s.activeNovas) >= 2 {
			return
		}
		atomic.AddInt32(&s.activeNovas, 1)
	}
	samples := Generate(kind, atomic.AddUint64(&s.variant, 1)^uint64(time.Now().UnixNano()))
	if len(samples) == 0 {
		if kind == SoundSupernova {
			atomic.AddInt32(&s.activeNovas, -1)
		}
		return
	}
	go func() {
		if kind == SoundSupernova {
			defer atomic.AddInt32(&s.activeNovas, -1)
		}
		player := s.ctx.NewPlayer(&sampleReader{data: samples})
		player.SetVolume(s.sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartAmbient loops the background drone once the device is up.
func (s *System) StartAmbient(volume float64) {
	if s == nil {
		return
	}
	go func() {
		<-s.ready
		player := s.ctx.NewPlayer(newDrone(uint64(time.Now().UnixNano())))
		player.SetVolume(clamp01(volume))

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ambient != nil {
			s.ambient.Close()
		}
		s.ambient = player
		player.Play()
	}()
}

// Close stops the drone. Cue goroutines finish on their own.
func (s *System) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ambient != nil {
		s.ambient.Close()
		s.ambient = nil
	}
}

type sampleReader struct {
	data []byte
	pos  int
}

func (r *sampleReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
