// Package audio plays short tones for search outcomes.
package audio

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSampleRate = beep.SampleRate(48000)
	DefaultVolume     = 0.4
	bufferDuration    = 100 * time.Millisecond
)

var ErrUnknownOutcome = errors.New("audio: unknown outcome")

// Notifier mixes outcome sounds onto the speaker
// A disabled or uninitialized notifier ignores Play
type Notifier struct {
	mu          sync.Mutex
	enabled     bool
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	played      [outcomeCount]int
	log         logrus.FieldLogger
}

// NewNotifier creates a notifier, log may be nil
func NewNotifier(enabled bool, log logrus.FieldLogger) *Notifier {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Notifier{
		enabled: enabled,
		rate:    DefaultSampleRate,
		volume:  DefaultVolume,
		mixer:   &beep.Mixer{},
		log:     log.WithField("component", "audio"),
	}
}

// Init opens the speaker, on failure the notifier stays silent
func (n *Notifier) Init() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled || n.initialized {
		return nil
	}
	if err := speaker.Init(n.rate, n.rate.N(bufferDuration)); err != nil {
		n.enabled = false
		n.log.WithError(err).Warn("speaker unavailable, continuing without audio")
		return err
	}
	speaker.Play(n.mixer)
	n.initialized = true
	n.log.WithField("rate", int(n.rate)).Debug("audio initialized")
	return nil
}

// Play queues the sound for o, no-op unless initialized
func (n *Notifier) Play(o Outcome) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if o < 0 || o >= outcomeCount {
		return
	}
	n.played[o]++
	if !n.initialized {
		return
	}
	s, err := Sound(o, n.rate, n.volume)
	if err != nil {
		n.log.WithError(err).WithField("outcome", o.String()).Debug("sound build failed")
		return
	}
	speaker.Lock()
	n.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times o was requested, including silent requests
func (n *Notifier) Played(o Outcome) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if o < 0 || o >= outcomeCount {
		return 0
	}
	return n.played[o]
}

// Enabled reports whether sounds reach the speaker
func (n *Notifier) Enabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled && n.initialized
}

// Close drains the mixer and releases the speaker
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	n.initialized = false
}
