// Package wavio converts sample buffers to and from 16-bit mono PCM WAV
// files and writes the plain-text info sidecar that accompanies each
// stimulus. This is boundary code - everything upstream works in float64.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"
)

// ErrInvalidFilename reports a save target that does not end in ".wav".
// Nothing is written; the caller may retry with a corrected name.
var ErrInvalidFilename = errors.New(`filename needs the extension ".wav"`)

const (
	wavExt  = ".wav"
	infoExt = ".txt"

	bitDepth    = 16
	numChannels = 1 // mono
)

// Encode converts float samples to a complete mono 16-bit PCM WAV byte
// stream at the given sample rate.
//
// Quantization is round(sample × 32767) with no clipping: samples outside
// [-1, 1] (e.g. several full-scale components summed) wrap around in
// int16. Callers who want clean audio keep their summed amplitudes inside
// [-1, 1].
func Encode(samples []float64, sampleRate int) ([]byte, error) {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(int16(int64(math.Round(s * 32767))))
	}

	buf := new(writerseeker.WriterSeeker)
	enc := wav.NewEncoder(buf, sampleRate, bitDepth, numChannels, 1)
	err := enc.Write(&audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numChannels,
		},
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}

	out, err := io.ReadAll(buf.Reader())
	if err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	return out, nil
}

// Save writes the stimulus WAV and its info sidecar into outdir and
// returns both paths. The sidecar shares the WAV's base name with a ".txt"
// extension and holds one line per entry of info.
//
// The extension check happens before any encoding or I/O: a filename not
// ending in ".wav" returns ErrInvalidFilename with nothing written, so a
// save either produces exactly two files or none.
func Save(samples []float64, sampleRate int, info []string, filename, outdir string) (wavPath, infoPath string, err error) {
	if !strings.HasSuffix(filename, wavExt) {
		return "", "", fmt.Errorf("%q: %w", filename, ErrInvalidFilename)
	}

	data, err := Encode(samples, sampleRate)
	if err != nil {
		return "", "", err
	}

	wavPath = filepath.Join(outdir, filename)
	if err := os.WriteFile(wavPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("write wav: %w", err)
	}

	infoPath = filepath.Join(outdir, strings.TrimSuffix(filename, wavExt)+infoExt)
	var b strings.Builder
	for _, line := range info {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(infoPath, []byte(b.String()), 0644); err != nil {
		return "", "", fmt.Errorf("write info: %w", err)
	}

	return wavPath, infoPath, nil
}

// Load reads a mono 16-bit PCM WAV file back into float samples scaled to
// roughly [-1, 1], plus its sample rate. The reverse of Encode.
func Load(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / 32767
	}
	return samples, buf.Format.SampleRate, nil
}
