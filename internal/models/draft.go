package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Draft is a named, persisted snapshot of a song
type Draft struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Song      *Song     `json:"song"`
}

// DraftRecord is the gorm row backing a Draft. The song is stored as a JSON
// document so the table never needs a migration when Song grows a field.
type DraftRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
	Name      string    `gorm:"not null;index" json:"name"`
	SongJSON  string    `gorm:"type:text;not null" json:"-"`
}

func (DraftRecord) TableName() string {
	return "drafts"
}

// NewDraftRecord serializes a song into a storable row
func NewDraftRecord(id, name string, song *Song) (*DraftRecord, error) {
	b, err := json.Marshal(song)
	if err != nil {
		return nil, fmt.Errorf("failed to encode song: %w", err)
	}
	return &DraftRecord{
		ID:       id,
		Name:     name,
		SongJSON: string(b),
	}, nil
}

// Draft decodes the row back into a Draft
func (r *DraftRecord) Draft() (*Draft, error) {
	song := NewSong("", "")
	if err := json.Unmarshal([]byte(r.SongJSON), song); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", r.ID, err)
	}
	if song.Lyrics == nil {
		song.Lyrics = []string{}
	}
	return &Draft{
		ID:        r.ID,
		Name:      r.Name,
		UpdatedAt: r.UpdatedAt.UTC(),
		Song:      song,
	}, nil
}
