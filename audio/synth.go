package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave selects an oscillator shape
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length periodic wave; length < 0 streams forever
type oscillator struct {
	wave   Wave
	step   float64 // Phase advance per sample
	phase  float64
	length int
	pos    int
}

// Oscillator creates a wave streamer of the given duration, or endless when d < 0
func Oscillator(sr beep.SampleRate, wave Wave, freq float64, d time.Duration) beep.Streamer {
	length := -1
	if d >= 0 {
		length = sr.N(d)
	}
	return &oscillator{wave: wave, step: freq / float64(sr), length: length}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.length >= 0 && o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.step
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and release over a fixed length
type envelope struct {
	s                     beep.Streamer
	attack, release, size int
	pos                   int
}

// Envelope truncates s to d and fades it in over attack and out over release
func Envelope(sr beep.SampleRate, s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{s: s, attack: sr.N(attack), release: sr.N(release), size: sr.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.size {
		return 0, false
	}
	if rest := e.size - e.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.size - e.pos; e.release > 0 && left < e.release {
			gain = math.Min(gain, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// Gain scales a stream linearly; g <= 0 silences it
func Gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// Tone returns a cue that plays a sine at freq for d
func Tone(freq float64, d time.Duration) Cue {
	return func(sr beep.SampleRate) (beep.Streamer, error) {
		sine, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, err
		}
		return beep.Take(sr.N(d), Gain(sine, 0.3)), nil
	}
}

// Chime returns a two-partial bell cue, fundamental plus octave
func Chime(freq float64, d time.Duration) Cue {
	return func(sr beep.SampleRate) (beep.Streamer, error) {
		fund := Envelope(sr, Oscillator(sr, WaveSine, freq, d), d, 5*time.Millisecond, d*3/4)
		over := Envelope(sr, Oscillator(sr, WaveSine, freq*2, d), d, 5*time.Millisecond, d/2)
		return Gain(beep.Mix(Gain(fund, 0.7), Gain(over, 0.3)), 0.4), nil
	}
}

// Thud returns a short low noise burst for impacts
func Thud(d time.Duration) Cue {
	return func(sr beep.SampleRate) (beep.Streamer, error) {
		noise := Envelope(sr, Oscillator(sr, WaveNoise, 0, d), d, time.Millisecond, d*2/3)
		body := Envelope(sr, Oscillator(sr, WaveSine, 80, d), d, time.Millisecond, d)
		return Gain(beep.Mix(Gain(noise, 0.25), Gain(body, 0.5)), 0.5), nil
	}
}

// Pulse returns an endless bass line with a kick on every beat
func Pulse(bpm float64) Cue {
	return func(sr beep.SampleRate) (beep.Streamer, error) {
		if bpm <= 0 {
			return nil, errInvalidTempo
		}
		beat := sr.N(time.Duration(float64(time.Minute) / bpm))
		if beat <= 0 {
			return nil, errInvalidTempo
		}
		return &pulse{sr: sr, beat: beat, kick: sr.N(100 * time.Millisecond)}, nil
	}
}

type pulse struct {
	sr         beep.SampleRate
	beat, kick int
	pos        int
}

func (p *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		inBeat := p.pos % p.beat
		t := float64(inBeat) / float64(p.sr)

		v := 0.15 * math.Sin(2*math.Pi*110*t)
		if inBeat < p.kick {
			env := 1 - float64(inBeat)/float64(p.kick)
			v += 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		samples[i][0], samples[i][1] = v, v
		p.pos++
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }
