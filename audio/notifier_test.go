package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s to completion and returns frame count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, f := range buf[:n] {
			if f[0] > peak {
				peak = f[0]
			}
			if -f[0] > peak {
				peak = -f[0]
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream did not end")
	return 0, 0
}

func TestSoundLengths(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		outcome Outcome
		want    int
	}{
		{PathFound, rate.N(foundNote1Duration) + rate.N(foundNote2Duration)},
		{NoPath, rate.N(noPathDuration)},
		{Rejected, rate.N(rejectedDuration)},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			s, err := Sound(tt.outcome, rate, 1.0)
			require.NoError(t, err)
			n, peak := drain(t, s)
			assert.Equal(t, tt.want, n)
			assert.Greater(t, peak, 0.1)
			assert.LessOrEqual(t, peak, 1.0+1e-9)
		})
	}
}

func TestSoundVolume(t *testing.T) {
	rate := beep.SampleRate(8000)

	loud, err := Sound(NoPath, rate, 1.0)
	require.NoError(t, err)
	_, loudPeak := drain(t, loud)

	quiet, err := Sound(NoPath, rate, 0.25)
	require.NoError(t, err)
	_, quietPeak := drain(t, quiet)
	assert.InDelta(t, loudPeak*0.25, quietPeak, 1e-6)

	silent, err := Sound(NoPath, rate, 0)
	require.NoError(t, err)
	n, silentPeak := drain(t, silent)
	assert.Equal(t, rate.N(noPathDuration), n)
	assert.Zero(t, silentPeak)
}

func TestSoundUnknownOutcome(t *testing.T) {
	_, err := Sound(Outcome(42), DefaultSampleRate, 1.0)
	assert.ErrorIs(t, err, ErrUnknownOutcome)
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestDisabledNotifier(t *testing.T) {
	log, hook := test.NewNullLogger()
	n := NewNotifier(false, log)

	require.NoError(t, n.Init())
	assert.False(t, n.Enabled())

	n.Play(PathFound)
	n.Play(PathFound)
	n.Play(Rejected)
	n.Play(Outcome(-1))
	assert.Equal(t, 2, n.Played(PathFound))
	assert.Equal(t, 1, n.Played(Rejected))
	assert.Equal(t, 0, n.Played(NoPath))
	assert.Equal(t, 0, n.Played(Outcome(9)))

	assert.NotPanics(t, n.Close)
	assert.NotPanics(t, n.Close)
	assert.Empty(t, hook.AllEntries())
}

func TestNotifierNilLogger(t *testing.T) {
	n := NewNotifier(false, nil)
	assert.NotPanics(t, func() { n.Play(NoPath) })
}
