package drafts

import (
	"fmt"
	"io"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/gocarina/gocsv"
)

// ExportRow is one line of the drafts CSV export
type ExportRow struct {
	ID         string `csv:"id"`
	Name       string `csv:"name"`
	UpdatedAt  string `csv:"updated_at"`
	Title      string `csv:"title"`
	LyricLines int    `csv:"lyric_lines"`
	Genre      string `csv:"genre"`
	SubGenre   string `csv:"sub_genre"`
	HasMelody  bool   `csv:"has_melody"`
	Generated  bool   `csv:"generated"`
}

// ExportRows flattens drafts for tabular output
func ExportRows(drafts []*models.Draft) []*ExportRow {
	rows := make([]*ExportRow, 0, len(drafts))
	for _, d := range drafts {
		row := &ExportRow{
			ID:        d.ID,
			Name:      d.Name,
			UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if d.Song != nil {
			row.Title = d.Song.Title
			row.LyricLines = len(d.Song.Lyrics)
			row.Genre = d.Song.Genre
			row.SubGenre = d.Song.SubGenre
			row.HasMelody = d.Song.HasMelody()
			row.Generated = d.Song.Generated
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes drafts as CSV with a header row
func WriteCSV(w io.Writer, drafts []*models.Draft) error {
	if err := gocsv.Marshal(ExportRows(drafts), w); err != nil {
		return fmt.Errorf("drafts: couldn't write csv: %w", err)
	}
	return nil
}
