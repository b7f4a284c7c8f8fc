// Package drafts persists named song snapshots.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned for an unknown draft id
var ErrNotFound = errors.New("draft not found")

// DefaultTitleBase names untitled drafts "Draft 1", "Draft 2", ...
const DefaultTitleBase = "Draft"

// Store is the gorm-backed draft repository
type Store struct {
	db *gorm.DB
}

// NewStore wraps an opened and migrated database
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListDrafts returns every draft, most recently saved first
func (s *Store) ListDrafts(ctx context.Context) ([]*models.Draft, error) {
	var records []models.DraftRecord
	if err := s.db.WithContext(ctx).Order("updated_at desc").Order("created_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("drafts: couldn't list drafts: %w", err)
	}

	out := make([]*models.Draft, 0, len(records))
	for i := range records {
		d, err := records[i].Draft()
		if err != nil {
			return nil, fmt.Errorf("drafts: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// GetDraft loads one draft
func (s *Store) GetDraft(ctx context.Context, id string) (*models.Draft, error) {
	var record models.DraftRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("drafts: couldn't get draft %s: %w", id, err)
	}
	d, err := record.Draft()
	if err != nil {
		return nil, fmt.Errorf("drafts: %w", err)
	}
	return d, nil
}

// SaveDraft upserts the song under id, or under a new id when id is empty.
// The draft is named after the song title; an untitled song gets the next
// free "Draft N" name.
func (s *Store) SaveDraft(ctx context.Context, song *models.Song, id string) (string, error) {
	if song == nil {
		return "", errors.New("drafts: nil song")
	}
	if id == "" {
		id = uuid.NewString()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		name := strings.TrimSpace(song.Title)
		if name == "" {
			names, err := existingNames(tx, id)
			if err != nil {
				return err
			}
			name = nextTitle(names, DefaultTitleBase)
		}

		record, err := models.NewDraftRecord(id, name, song)
		if err != nil {
			return err
		}
		record.UpdatedAt = time.Now().UTC()

		var existing models.DraftRecord
		err = tx.Where("id = ?", id).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(record).Error
		case err != nil:
			return err
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"name":       record.Name,
			"song_json":  record.SongJSON,
			"updated_at": record.UpdatedAt,
		}).Error
	})
	if err != nil {
		return "", fmt.Errorf("drafts: couldn't save draft %s: %w", id, err)
	}
	return id, nil
}

// DeleteDraft removes a draft
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DraftRecord{})
	if res.Error != nil {
		return fmt.Errorf("drafts: couldn't delete draft %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextDraftTitle returns the smallest unused "<base> N", N >= 1, comparing
// names case-insensitively
func (s *Store) NextDraftTitle(ctx context.Context, base string) (string, error) {
	names, err := existingNames(s.db.WithContext(ctx), "")
	if err != nil {
		return "", fmt.Errorf("drafts: %w", err)
	}
	return nextTitle(names, base), nil
}

// existingNames returns the upper-cased draft names, skipping excludeID
func existingNames(db *gorm.DB, excludeID string) (map[string]struct{}, error) {
	var names []string
	q := db.Model(&models.DraftRecord{})
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("couldn't read draft names: %w", err)
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[strings.ToUpper(strings.TrimSpace(n))] = struct{}{}
	}
	return out, nil
}

func nextTitle(existing map[string]struct{}, base string) string {
	if base = strings.TrimSpace(base); base == "" {
		base = DefaultTitleBase
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if _, taken := existing[strings.ToUpper(candidate)]; !taken {
			return candidate
		}
	}
}
