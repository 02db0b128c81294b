package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound shapes
const (
	foundNote1Duration = 90 * time.Millisecond
	foundNote2Duration = 160 * time.Millisecond
	foundAttack        = 5 * time.Millisecond
	foundRelease       = 60 * time.Millisecond

	noPathDuration = 350 * time.Millisecond
	noPathAttack   = 10 * time.Millisecond
	noPathRelease  = 200 * time.Millisecond

	rejectedDuration = 120 * time.Millisecond
	rejectedAttack   = 2 * time.Millisecond
	rejectedRelease  = 40 * time.Millisecond
)

// sawtooth is a finite saw wave, generators has no saw
type sawtooth struct {
	freq     float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newSawtooth(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sawtooth{freq: freq, total: rate.N(duration), rate: rate}
}

func (s *sawtooth) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		val := 2.0 * (s.phase - 0.5)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sawtooth) Err() error { return nil }

// envelope applies linear attack and release over a fixed length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly, zero is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped sine of fixed length
func tone(freq float64, duration, attack, release time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return newEnvelope(beep.Take(rate.N(duration), sine), duration, attack, release, rate), nil
}

// Sound builds the streamer for an outcome at the given rate and linear volume
func Sound(o Outcome, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch o {
	case PathFound:
		// E5 then A5
		n1, err := tone(659.25, foundNote1Duration, foundAttack, foundRelease, rate)
		if err != nil {
			return nil, err
		}
		n2, err := tone(880.0, foundNote2Duration, foundAttack, foundRelease, rate)
		if err != nil {
			return nil, err
		}
		s = beep.Seq(n1, n2)
	case NoPath:
		low, err := tone(196.0, noPathDuration, noPathAttack, noPathRelease, rate)
		if err != nil {
			return nil, err
		}
		s = low
	case Rejected:
		s = newEnvelope(newSawtooth(110.0, rejectedDuration, rate), rejectedDuration, rejectedAttack, rejectedRelease, rate)
	default:
		return nil, ErrUnknownOutcome
	}
	return newVolume(s, volume), nil
}
