package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/auditorylab/stimgen/internal/compose"
	"github.com/auditorylab/stimgen/internal/playback"
	"github.com/auditorylab/stimgen/internal/wavio"
)

func main() {
	// Parse flags
	duration := flag.Float64("duration", 0.1, "Stimulus duration in seconds")
	rate := flag.Int("rate", 44100, "Sample rate in Hz")

	tones := flag.String("tone", "", "Tones to add (comma-separated freq:amp, e.g., 500:0.1,12000:0.1)")
	noises := flag.String("noise", "", "Noise components to add (comma-separated amplitudes, e.g., 0.02)")
	chords := flag.String("chord", "", "Chords to add (comma-separated mid:factor:ntones:amp, e.g., 15000:1.2:11:0.1)")

	rise := flag.Float64("rise", compose.DefaultRiseTime, "Rise time of the onset ramp in seconds")
	fall := flag.Float64("fall", compose.DefaultFallTime, "Fall time of the offset ramp in seconds")

	name := flag.String("name", "", "Output filename (default: derived from components)")
	suffix := flag.String("suffix", "", "Suffix appended to the derived filename")

	output := flag.String("o", "/tmp", "Output directory")
	flag.StringVar(output, "output", "/tmp", "Output directory")

	seed := flag.Uint64("seed", 0, "Random seed for noise/chord phases (0 = random)")

	play := flag.Bool("play", false, "Play the stimulus after saving")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Synthesize an auditory stimulus and save it as WAV + info text file.\n")
		fmt.Fprintf(os.Stderr, "Without component flags, generates the demo stimulus (500 Hz tone + noise).\n\n")
		fmt.Fprintf(os.Stderr, "Components are added in flag-group order: tones, then noise, then chords.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Default demo stimulus when no components are requested
	if *tones == "" && *noises == "" && *chords == "" {
		*tones = "500:0.1"
		*noises = "0.02"
	}

	toneSpecs, err := parseToneSpecs(*tones)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -tone: %v\n", err)
		os.Exit(1)
	}
	noiseAmps, err := parseNoiseSpecs(*noises)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -noise: %v\n", err)
		os.Exit(1)
	}
	chordSpecs, err := parseChordSpecs(*chords)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -chord: %v\n", err)
		os.Exit(1)
	}

	// Build the composer
	var c *compose.Composer
	if *seed != 0 {
		c, err = compose.NewWithRand(*duration, *rate, rand.New(rand.NewPCG(*seed, 0)))
	} else {
		c, err = compose.New(*duration, *rate)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("stimgen - auditory stimulus generator")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Duration: %gs at %d Hz (%d samples)\n", *duration, *rate, len(c.Samples()))

	for _, ts := range toneSpecs {
		c.AddTone(ts.freq, ts.amp)
		fmt.Printf("  + tone %g Hz (amp %g)\n", ts.freq, ts.amp)
	}
	for _, amp := range noiseAmps {
		c.AddNoise(amp)
		fmt.Printf("  + noise (amp %g)\n", amp)
	}
	for _, cs := range chordSpecs {
		if err := c.AddChord(cs.midFreq, cs.factor, cs.nTones, cs.amp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  + chord %g Hz ×%d (factor %g, amp %g)\n", cs.midFreq, cs.nTones, cs.factor, cs.amp)
	}

	c.ApplyRiseFall(*rise, *fall)

	filename := *name
	if filename == "" {
		filename = c.SuggestFilename(*suffix)
	}

	if err := os.MkdirAll(*output, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	wavPath, infoPath, err := wavio.Save(c.Samples(), c.SampleRate(), c.InfoLines(), filename, *output)
	if errors.Is(err, wavio.ErrInvalidFilename) {
		fmt.Fprintf(os.Stderr, "Nothing saved: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Save failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSaved: %s\n", wavPath)
	fmt.Printf("       %s\n", infoPath)

	if *play {
		fmt.Println("\nPlaying...")
		if err := playback.Play(wavPath); err != nil {
			if errors.Is(err, playback.ErrUnavailable) {
				fmt.Println("No audio device available, skipping playback")
			} else {
				fmt.Fprintf(os.Stderr, "Playback failed: %v\n", err)
			}
		}
	}
}

type toneSpec struct {
	freq, amp float64
}

type chordSpec struct {
	midFreq, factor float64
	nTones          int
	amp             float64
}

// parseToneSpecs parses comma-separated freq:amp pairs; amp defaults to 1.
func parseToneSpecs(s string) ([]toneSpec, error) {
	var specs []toneSpec
	for _, item := range splitSpecs(s) {
		fields := strings.Split(item, ":")
		if len(fields) > 2 {
			return nil, fmt.Errorf("want freq or freq:amp, got %q", item)
		}
		freq, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad frequency in %q", item)
		}
		amp := 1.0
		if len(fields) == 2 {
			if amp, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, fmt.Errorf("bad amplitude in %q", item)
			}
		}
		specs = append(specs, toneSpec{freq: freq, amp: amp})
	}
	return specs, nil
}

// parseNoiseSpecs parses comma-separated noise amplitudes.
func parseNoiseSpecs(s string) ([]float64, error) {
	var amps []float64
	for _, item := range splitSpecs(s) {
		amp, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("bad amplitude %q", item)
		}
		amps = append(amps, amp)
	}
	return amps, nil
}

// parseChordSpecs parses comma-separated mid:factor:ntones[:amp] chords;
// amp defaults to 1.
func parseChordSpecs(s string) ([]chordSpec, error) {
	var specs []chordSpec
	for _, item := range splitSpecs(s) {
		fields := strings.Split(item, ":")
		if len(fields) < 3 || len(fields) > 4 {
			return nil, fmt.Errorf("want mid:factor:ntones[:amp], got %q", item)
		}
		midFreq, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad mid-frequency in %q", item)
		}
		factor, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad factor in %q", item)
		}
		nTones, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("bad tone count in %q", item)
		}
		amp := 1.0
		if len(fields) == 4 {
			if amp, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return nil, fmt.Errorf("bad amplitude in %q", item)
			}
		}
		specs = append(specs, chordSpec{midFreq: midFreq, factor: factor, nTones: nTones, amp: amp})
	}
	return specs, nil
}

// splitSpecs splits a comma-separated flag value, dropping empty items.
func splitSpecs(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
