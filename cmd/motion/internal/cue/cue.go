// Package cue plays short tones when animations repeat or end.
package cue

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// SampleRate is the speaker sample rate.
const SampleRate = beep.SampleRate(44100)

// DefaultLength is how long a cue tone sounds.
const DefaultLength = 50 * time.Millisecond

// Player sounds a tone.
type Player interface {
	Tone(freq float64, d time.Duration)
}

// Speaker plays tones on the default audio device.
type Speaker struct {
	rate beep.SampleRate
	once sync.Once
}

// OpenSpeaker initializes the audio device with a 100ms buffer.
func OpenSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{rate: SampleRate}, nil
}

// Tone plays a sine wave of freq hertz for d without blocking.
func (s *Speaker) Tone(freq float64, d time.Duration) {
	sine, err := generators.SineTone(s.rate, freq)
	if err != nil {
		motionerrors.Logger().Warn("cue tone rejected", slog.Float64("freq", freq), slog.Any("err", err))
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}

// Close releases the audio device. Safe to call more than once.
func (s *Speaker) Close() {
	s.once.Do(speaker.Close)
}

// Cues maps animation events to tones.
type Cues struct {
	Player     Player
	EndTone    float64
	RepeatTone float64
	// Length is the tone duration. Zero means DefaultLength.
	Length time.Duration
}

// Listener returns an animation listener that plays the cue tones. A zero
// tone frequency silences that event.
func (c *Cues) Listener() animation.Listener {
	return animation.ListenerFuncs{
		Repeat: func(*animation.Animation, animation.Direction) { c.play(c.RepeatTone) },
		End:    func(*animation.Animation) { c.play(c.EndTone) },
	}
}

func (c *Cues) play(freq float64) {
	if c.Player == nil || freq <= 0 {
		return
	}
	length := c.Length
	if length <= 0 {
		length = DefaultLength
	}
	c.Player.Tone(freq, length)
}
