package compose

import (
	"fmt"
	"strconv"
)

// Component records one component-adding call and the parameters used.
// It is a closed set: Tone, Noise, and Chord are the only implementations.
type Component interface {
	// Describe returns a one-line key=value rendering for the info sidecar.
	Describe() string

	// filenamePart returns the fragment this component contributes to a
	// suggested filename. Unexported to seal the set.
	filenamePart() string
}

// Tone is a single sine wave component.
type Tone struct {
	Freq float64 // Hz
	Amp  float64
}

// Noise is a uniform noise component.
type Noise struct {
	Amp float64
}

// Chord is a sum of log-spaced sine waves around a center frequency.
type Chord struct {
	MidFreq float64 // Hz
	Factor  float64 // high tone at MidFreq·Factor, low at MidFreq/Factor
	NTones  int
	Amp     float64
}

func (t Tone) Describe() string {
	return fmt.Sprintf("tone freq=%s amp=%s", formatNum(t.Freq), formatNum(t.Amp))
}

func (t Tone) filenamePart() string {
	return "tone" + formatNum(t.Freq) + "Hz"
}

func (n Noise) Describe() string {
	return fmt.Sprintf("noise amp=%s", formatNum(n.Amp))
}

func (n Noise) filenamePart() string {
	return "noise"
}

func (c Chord) Describe() string {
	return fmt.Sprintf("chord midfreq=%s factor=%s ntones=%d amp=%s",
		formatNum(c.MidFreq), formatNum(c.Factor), c.NTones, formatNum(c.Amp))
}

func (c Chord) filenamePart() string {
	return "chord" + formatNum(c.MidFreq) + "Hz"
}

// formatNum renders a float with no trailing zeros (500.0 → "500"), so
// filenames and info lines stay readable.
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
