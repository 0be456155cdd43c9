// Package synth maps a validated frequency series to a normalized
// time-domain signal by additive synthesis and encodes it as PCM WAV.
package synth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/scentesia/neuroaudio/internal/frequency"
	"github.com/scentesia/neuroaudio/pkg/models"
)

// Errors returned by the synthesizer.
var (
	ErrInvalidSampleRate = errors.New("synth: sample rate must be positive")
	ErrInvalidDuration   = errors.New("synth: duration must be positive")
	ErrInvalidBand       = errors.New("synth: audible band must be positive and span at least one octave")
	ErrDurationBound     = errors.New("synth: duration exceeds the configured synthesis bound")
)

// Peak amplitude of the normalized signal, just under full scale so the
// int16 encoding never clips.
const targetPeak = 0.89125 // -1 dBFS

// Interval between context checks in the sample loop.
const cancelCheckInterval = 8192

// Synthesizer holds fixed synthesis parameters. Configure once at startup;
// the same mapping then applies to every job.
type Synthesizer struct {
	SampleRate   int           // output sample rate in Hz
	Duration     time.Duration // length of the rendered signal
	MinAudibleHz float64       // lower edge of the target band
	MaxAudibleHz float64       // upper edge of the target band
	MaxDuration  time.Duration // backpressure bound on Duration
}

// Validate checks that the synthesizer parameters are usable.
func (s Synthesizer) Validate() error {
	if s.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if s.Duration <= 0 {
		return ErrInvalidDuration
	}
	if s.MinAudibleHz <= 0 || s.MaxAudibleHz < 2*s.MinAudibleHz {
		return ErrInvalidBand
	}
	if s.MaxDuration > 0 && s.Duration > s.MaxDuration {
		return ErrDurationBound
	}
	return nil
}

// samples returns the total sample count for the configured duration.
func (s Synthesizer) samples() int {
	return int(math.Round(s.Duration.Seconds() * float64(s.SampleRate)))
}

// MapToAudible folds a frequency into [MinAudibleHz, MaxAudibleHz) by
// repeated octave shifts: halve while above the band, double while below.
// The mapping is logarithmic, order-preserving within an octave, and
// depends only on the configured band, so a given input frequency always
// lands on the same output tone. In-band values pass through unchanged.
func (s Synthesizer) MapToAudible(hz float64) float64 {
	for hz >= s.MaxAudibleHz {
		hz /= 2
	}
	for hz < s.MinAudibleHz {
		hz *= 2
	}
	return hz
}

// Synthesize renders the sum of unit-amplitude sinusoids at each mapped
// frequency, normalizes from the measured peak, and encodes 16-bit mono WAV.
// The context is checked periodically so job timeouts and cancellation
// interrupt long renders.
func (s Synthesizer) Synthesize(ctx context.Context, series frequency.Series) (*models.AudioArtifact, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := s.samples()
	signal := make([]float64, n)
	dt := 1.0 / float64(s.SampleRate)

	for _, raw := range series.Values() {
		hz := s.MapToAudible(raw)
		omega := 2 * math.Pi * hz
		for i := 0; i < n; i++ {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("synth: interrupted: %w", err)
				}
			}
			signal[i] += math.Sin(omega * float64(i) * dt)
		}
	}

	normalize(signal)

	return &models.AudioArtifact{
		Data:       encodeWAV(signal, s.SampleRate),
		MIMEType:   "audio/wav",
		SampleRate: s.SampleRate,
		Duration:   s.Duration,
	}, nil
}

// normalize scales the signal so its measured peak sits at targetPeak.
// The peak is taken from the actual summed signal, never assumed from the
// term count, so stacking many frequencies cannot clip. An all-zero signal
// is left untouched.
func normalize(signal []float64) {
	peak := 0.0
	for _, v := range signal {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	gain := targetPeak / peak
	for i := range signal {
		signal[i] *= gain
	}
}
