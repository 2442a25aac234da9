// Package compose builds simple auditory stimuli by summing signal
// components (pure tones, uniform noise, log-spaced chords) into a single
// mono sample buffer, applying a linear rise/fall envelope, and deriving a
// filename and description from the components added.
//
// Amplitudes are nominal: the buffer is never normalized or clipped here,
// so summed components can exceed [-1, 1]. See wavio.Encode for what
// happens to over-range samples at quantization time.
package compose

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/binaryphile/fluentfp/slice"
)

// ErrInvalidParameter reports a non-positive duration, sample rate, chord
// factor, or tone count. The buffer is left unmodified.
var ErrInvalidParameter = errors.New("invalid parameter")

// Default rise and fall times, in seconds. 2 ms is enough to remove the
// onset/offset click without audibly shaping short stimuli.
const (
	DefaultRiseTime = 0.002
	DefaultFallTime = 0.002
)

// Composer accumulates additive signal components into a sample buffer.
//
// Components are summed in call order; the log of what was added drives
// SuggestFilename and InfoLines but never feeds back into the samples.
// Each Composer owns its random generator, so two Composers share no
// hidden state and tests can seed for determinism.
type Composer struct {
	duration   float64
	sampleRate int
	tvec       []float64
	samples    []float64
	components []Component
	rng        *rand.Rand
}

// New creates a Composer for a stimulus of the given duration (seconds)
// and sample rate (samples/second), with a zeroed buffer and an empty
// component log. The random generator is freshly seeded.
func New(duration float64, sampleRate int) (*Composer, error) {
	return NewWithRand(duration, sampleRate, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand is New with a caller-supplied random generator, used by
// AddNoise and AddChord. Seed it for reproducible stimuli.
func NewWithRand(duration float64, sampleRate int, rng *rand.Rand) (*Composer, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v: %w", duration, ErrInvalidParameter)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d: %w", sampleRate, ErrInvalidParameter)
	}

	n := int(duration * float64(sampleRate))
	tvec := make([]float64, n)
	for i := range tvec {
		tvec[i] = float64(i) / float64(sampleRate)
	}

	return &Composer{
		duration:   duration,
		sampleRate: sampleRate,
		tvec:       tvec,
		samples:    make([]float64, n),
		rng:        rng,
	}, nil
}

// Duration returns the stimulus duration in seconds.
func (c *Composer) Duration() float64 { return c.duration }

// SampleRate returns the sample rate in samples/second.
func (c *Composer) SampleRate() int { return c.sampleRate }

// TimeVector returns the sample times in seconds. Treat as read-only.
func (c *Composer) TimeVector() []float64 { return c.tvec }

// Samples returns the accumulated sample buffer. Treat as read-only;
// component-adding methods mutate it in place.
func (c *Composer) Samples() []float64 { return c.samples }

// Components returns the component log in the order components were added.
func (c *Composer) Components() []Component {
	out := make([]Component, len(c.components))
	copy(out, c.components)
	return out
}

// AddTone adds a sine wave amp·sin(2πfreq·t) to the buffer and logs a
// Tone component. Any frequency is accepted; zero or negative values only
// affect phase.
func (c *Composer) AddTone(freq, amp float64) {
	omega := 2 * math.Pi * freq
	for i, t := range c.tvec {
		c.samples[i] += amp * math.Sin(omega*t)
	}
	c.components = append(c.components, Tone{Freq: freq, Amp: amp})
}

// AddNoise adds uniform noise amp·U[-1,1], drawn fresh per sample from
// the Composer's generator, and logs a Noise component.
func (c *Composer) AddNoise(amp float64) {
	for i := range c.samples {
		c.samples[i] += amp * (2*c.rng.Float64() - 1)
	}
	c.components = append(c.components, Noise{Amp: amp})
}

// AddChord adds nTones sine waves at frequencies log-spaced between
// midFreq/factor and midFreq·factor inclusive, each with an independent
// random phase in [-π, π], and logs a single Chord component.
//
// The tones are summed, not averaged, so loudness grows with nTones.
// With factor == 1 the spacing collapses and all tones sit at midFreq.
// A single tone (nTones == 1) sits at the low end, midFreq/factor.
func (c *Composer) AddChord(midFreq, factor float64, nTones int, amp float64) error {
	if nTones < 1 {
		return fmt.Errorf("chord needs at least one tone, got %d: %w", nTones, ErrInvalidParameter)
	}
	if factor <= 0 {
		return fmt.Errorf("chord factor must be positive, got %v: %w", factor, ErrInvalidParameter)
	}

	for _, freq := range logspace(midFreq/factor, midFreq*factor, nTones) {
		phase := (2*c.rng.Float64() - 1) * math.Pi
		omega := 2 * math.Pi * freq
		for i, t := range c.tvec {
			c.samples[i] += amp * math.Sin(omega*t+phase)
		}
	}

	c.components = append(c.components, Chord{MidFreq: midFreq, Factor: factor, NTones: nTones, Amp: amp})
	return nil
}

// ApplyRiseFall multiplies the first round(rate·riseTime) samples by a
// linear 0→1 ramp and the last round(rate·fallTime) samples by a linear
// 1→0 ramp, endpoints inclusive. The two ramps are independent: if they
// overlap, the shared samples are scaled by both. Ramps longer than the
// buffer are clamped to it.
//
// This is a finishing step and does not appear in the component log.
// Calling it twice compounds the fade.
func (c *Composer) ApplyRiseFall(riseTime, fallTime float64) {
	nRise := int(math.Round(float64(c.sampleRate) * riseTime))
	nFall := int(math.Round(float64(c.sampleRate) * fallTime))
	if nRise > len(c.samples) {
		nRise = len(c.samples)
	}
	if nFall > len(c.samples) {
		nFall = len(c.samples)
	}

	for i, g := range linspace(0, 1, nRise) {
		c.samples[i] *= g
	}
	offset := len(c.samples) - nFall
	for i, g := range linspace(1, 0, nFall) {
		c.samples[offset+i] *= g
	}
}

// SuggestFilename derives a filename from the component log: each
// component contributes its tag (tones and chords also their frequency,
// e.g. "tone500Hz"), joined by underscores, followed by the sanitized
// suffix and ".wav". An empty log yields just suffix + ".wav".
func (c *Composer) SuggestFilename(suffix string) string {
	var b strings.Builder
	for _, comp := range c.components {
		b.WriteString(comp.filenamePart())
		b.WriteByte('_')
	}
	return strings.Trim(b.String(), "_") + SanitizeSuffix(suffix) + ".wav"
}

// InfoLines renders the component log as one flat key=value line per
// component, in the order they were added. This is a pure function of the
// log: componentLog → lines.
func (c *Composer) InfoLines() []string {
	return slice.MapTo[string](c.components).To(Component.Describe)
}

// logspace returns n points spaced evenly on a log scale between low and
// high inclusive. n == 1 yields just low.
func logspace(low, high float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = low
		return out
	}
	ratio := high / low
	for k := range out {
		out[k] = low * math.Pow(ratio, float64(k)/float64(n-1))
	}
	return out
}

// linspace returns n points spaced evenly between start and stop
// inclusive. n == 1 yields just start.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
