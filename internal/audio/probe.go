package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// ProbeDuration decodes the mp3 header stream and returns the track length
func ProbeDuration(data []byte) (time.Duration, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("audio: not an mp3: %w", err)
	}
	rate := d.SampleRate()
	if rate <= 0 {
		return 0, fmt.Errorf("audio: invalid sample rate %d", rate)
	}
	// 16-bit stereo output, 4 bytes per sample
	samples := d.Length() / 4
	return time.Duration(samples) * time.Second / time.Duration(rate), nil
}
