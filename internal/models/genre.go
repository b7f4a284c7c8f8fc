package models

import (
	"errors"
	"path"
	"strings"
)

// ErrUnknownGenre is returned when a genre or sub-genre is not in the catalog
var ErrUnknownGenre = errors.New("unknown genre")

// GenreSamplesDir holds the preview clips played from the genre tiles
const GenreSamplesDir = "assets/audio/genre_samples"

// Genre is a catalog entry shown as a tile in MELODY mode
type Genre struct {
	Name      string   `json:"name"`
	SubGenres []string `json:"sub_genres"`
}

// GenrePick is a resolved (genre, sub-genre) selection
type GenrePick struct {
	Genre    string `json:"genre"`
	SubGenre string `json:"sub_genre"`
}

// Genres is the tile catalog in display order
var Genres = []Genre{
	{Name: "Pop", SubGenres: []string{"Pop Ballad", "Dance Pop", "Indie Pop"}},
	{Name: "Rock", SubGenres: []string{"Alternative Rock", "Classic Rock", "Soft Rock"}},
	{Name: "Indie", SubGenres: []string{"Indie Folk", "Indie Rock", "Indie Pop"}},
	{Name: "Jazz", SubGenres: []string{"Smooth Jazz", "Bebop", "Cool Jazz"}},
	{Name: "Hip-Hop", SubGenres: []string{"Trap", "Old School", "Alternative Hip-Hop"}},
	{Name: "Electronic", SubGenres: []string{"EDM", "Ambient", "Synthwave"}},
}

// short forms people type instead of the tile labels
var genreAliases = map[string]string{
	"alt":       "alternative",
	"hip hop":   "hip-hop",
	"hiphop":    "hip-hop",
	"oldschool": "old school",
}

// ResolveGenre maps free-form input to the catalog genre name
func ResolveGenre(name string) (string, error) {
	key := genreKey(name)
	for _, g := range Genres {
		if genreKey(g.Name) == key {
			return g.Name, nil
		}
	}
	return "", ErrUnknownGenre
}

// ResolvePick maps free-form input to a catalog (genre, sub-genre) pair
func ResolvePick(genre, subGenre string) (GenrePick, error) {
	g, err := ResolveGenre(genre)
	if err != nil {
		return GenrePick{}, err
	}
	key := genreKey(subGenre)
	for _, entry := range Genres {
		if entry.Name != g {
			continue
		}
		for _, sub := range entry.SubGenres {
			if genreKey(sub) == key {
				return GenrePick{Genre: g, SubGenre: sub}, nil
			}
		}
	}
	return GenrePick{}, ErrUnknownGenre
}

// GenreSamplePath returns the preview clip for a genre, or for a
// sub-genre when sub is not empty
func GenreSamplePath(genre, sub string) string {
	name := sampleSlug(genre)
	if sub != "" {
		name += "_" + sampleSlug(sub)
	}
	return path.Join(GenreSamplesDir, name+"_sample.mp3")
}

func sampleSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "_")
}

func genreKey(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if full, ok := genreAliases[s]; ok {
		return full
	}
	words := strings.Fields(s)
	for i, w := range words {
		if full, ok := genreAliases[w]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}
