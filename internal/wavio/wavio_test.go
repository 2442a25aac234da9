package wavio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSave_RejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Save([]float64{0, 0.5}, 44100, []string{"noise amp=1"}, "stim.mp3", dir)
	if !errors.Is(err, ErrInvalidFilename) {
		t.Fatalf("Save() error = %v, want ErrInvalidFilename", err)
	}

	// Nothing may be written on rejection
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir() error: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("rejected save left %d files in output dir", len(entries))
	}
}

func TestSave_MissingExtensionEntirely(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Save([]float64{0}, 44100, nil, "stim", dir)
	if !errors.Is(err, ErrInvalidFilename) {
		t.Fatalf("Save() error = %v, want ErrInvalidFilename", err)
	}
}

func TestSave_WritesMatchingPair(t *testing.T) {
	dir := t.TempDir()
	samples := make([]float64, 441)
	for i := range samples {
		samples[i] = 0.1 * math.Sin(2*math.Pi*500*float64(i)/44100)
	}
	info := []string{"tone freq=500 amp=0.1", "noise amp=0.02"}

	wavPath, infoPath, err := Save(samples, 44100, info, "tone500Hz_noise.wav", dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Exactly two files, matching base names
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Fatalf("Save() wrote %d files, want 2", len(entries))
	}
	wavBase := strings.TrimSuffix(filepath.Base(wavPath), ".wav")
	infoBase := strings.TrimSuffix(filepath.Base(infoPath), ".txt")
	if wavBase != infoBase {
		t.Errorf("base names differ: %q vs %q", wavBase, infoBase)
	}

	// Sidecar holds one line per info entry
	data, err := os.ReadFile(infoPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	want := "tone freq=500 amp=0.1\nnoise amp=0.02\n"
	if string(data) != want {
		t.Errorf("info file = %q, want %q", string(data), want)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	samples := []float64{0, 0.5, -0.5, 1, -1, 0.25}

	wavPath, _, err := Save(samples, 8000, nil, "roundtrip.wav", dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, rate, err := Load(wavPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if rate != 8000 {
		t.Errorf("Load() rate = %d, want 8000", rate)
	}
	if len(got) != len(samples) {
		t.Fatalf("Load() returned %d samples, want %d", len(got), len(samples))
	}
	for i, want := range samples {
		// One quantization step of tolerance
		if math.Abs(got[i]-want) > 1.0/32767+1e-9 {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestEncode_QuantizationScale(t *testing.T) {
	dir := t.TempDir()

	wavPath, _, err := Save([]float64{1, -1, 0}, 8000, nil, "scale.wav", dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, _, err := Load(wavPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got[0] != 1 {
		t.Errorf("full-scale sample decoded as %v, want 1", got[0])
	}
	if got[1] != -1 {
		t.Errorf("negative full-scale sample decoded as %v, want -1", got[1])
	}
	if got[2] != 0 {
		t.Errorf("zero sample decoded as %v, want 0", got[2])
	}
}

func TestEncode_OverRangeWrapsNotClips(t *testing.T) {
	// Summed amplitudes past ±1 are not clipped: round(1.5 × 32767) wraps
	// in int16 to a negative value. Documented caveat, not an error.
	dir := t.TempDir()

	wavPath, _, err := Save([]float64{1.5}, 8000, nil, "hot.wav", dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, _, err := Load(wavPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got[0] >= 0 {
		t.Errorf("over-range sample decoded as %v, want a wrapped negative value", got[0])
	}
}

func TestSave_EmptyInfo(t *testing.T) {
	dir := t.TempDir()

	_, infoPath, err := Save([]float64{0, 0}, 8000, nil, "empty.wav", dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(infoPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("info file for empty log = %q, want empty", string(data))
	}
}
