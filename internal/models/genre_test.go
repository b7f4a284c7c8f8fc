package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePick(t *testing.T) {
	tests := []struct {
		name    string
		genre   string
		sub     string
		want    GenrePick
		wantErr bool
	}{
		{name: "exact", genre: "Pop", sub: "Dance Pop", want: GenrePick{"Pop", "Dance Pop"}},
		{name: "case and spacing", genre: " rock ", sub: "classic   ROCK", want: GenrePick{"Rock", "Classic Rock"}},
		{name: "alt shorthand", genre: "Rock", sub: "Alt Rock", want: GenrePick{"Rock", "Alternative Rock"}},
		{name: "hip hop spelling", genre: "hip hop", sub: "Alt Hip-Hop", want: GenrePick{"Hip-Hop", "Alternative Hip-Hop"}},
		{name: "sub from another genre", genre: "Jazz", sub: "Trap", wantErr: true},
		{name: "unknown genre", genre: "Polka", sub: "Dance Pop", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePick(tt.genre, tt.sub)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownGenre)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenreSamplePath(t *testing.T) {
	assert.Equal(t, "assets/audio/genre_samples/hiphop_sample.mp3", GenreSamplePath("Hip-Hop", ""))
	assert.Equal(t, "assets/audio/genre_samples/hiphop_alternative_hiphop_sample.mp3",
		GenreSamplePath("Hip-Hop", "Alternative Hip-Hop"))
	assert.Equal(t, "assets/audio/genre_samples/pop_dance_pop_sample.mp3", GenreSamplePath("Pop", "Dance Pop"))
}
