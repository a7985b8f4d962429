package cue

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/go-drift/motion/pkg/animation"
)

type tone struct {
	freq float64
	d    time.Duration
}

type recorder struct {
	tones []tone
}

func (r *recorder) Tone(freq float64, d time.Duration) {
	r.tones = append(r.tones, tone{freq, d})
}

func TestCuesListener(t *testing.T) {
	rec := &recorder{}
	c := &Cues{Player: rec, EndTone: 880, RepeatTone: 440}
	l := c.Listener()

	l.OnStart(nil)
	l.OnRepeat(nil, animation.DirectionBackward)
	l.OnEnd(nil)

	want := []tone{{440, DefaultLength}, {880, DefaultLength}}
	if len(rec.tones) != len(want) {
		t.Fatalf("tones = %v, want %v", rec.tones, want)
	}
	for i := range want {
		if rec.tones[i] != want[i] {
			t.Errorf("tone %d = %v, want %v", i, rec.tones[i], want[i])
		}
	}
}

func TestCuesSilentTone(t *testing.T) {
	rec := &recorder{}
	c := &Cues{Player: rec, EndTone: 0, RepeatTone: 300, Length: time.Second}
	c.Listener().OnEnd(nil)
	c.Listener().OnRepeat(nil, animation.DirectionForward)
	if len(rec.tones) != 1 || rec.tones[0] != (tone{300, time.Second}) {
		t.Errorf("tones = %v", rec.tones)
	}

	// No player is a no-op.
	(&Cues{EndTone: 1}).Listener().OnEnd(nil)
}

func TestToneStreamLength(t *testing.T) {
	sine, err := generators.SineTone(SampleRate, 880)
	if err != nil {
		t.Fatal(err)
	}
	stream := beep.Take(SampleRate.N(DefaultLength), sine)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := stream.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := SampleRate.N(DefaultLength); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}
