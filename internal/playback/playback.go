// Package playback plays stimulus WAV files through the local audio
// device, best-effort. This is boundary code - on machines without an
// audio device (headless runners, containers) it reports ErrUnavailable
// and callers carry on.
package playback

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnavailable reports that no audio playback facility is present.
// Non-fatal: nothing was played, the program continues.
var ErrUnavailable = errors.New("audio playback unavailable")

// speaker buffer length; long enough to survive scheduling hiccups on a
// desktop, short enough that Play returns promptly after the last sample.
const bufferLen = 100 * time.Millisecond

// Play decodes the WAV file at path and plays it, blocking until playback
// completes. Returns ErrUnavailable (wrapped) if the audio device cannot
// be opened.
func Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound file: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode sound file: %w", err)
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(bufferLen)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}

// Available reports whether an audio device can be opened for playback.
func Available() bool {
	sr := beep.SampleRate(44100)
	return speaker.Init(sr, sr.N(bufferLen)) == nil
}
