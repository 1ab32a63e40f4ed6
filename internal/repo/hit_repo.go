// Package repo implements the data persistence layer for hits and artists,
// backed by GORM. This file provides repository functions for the Hit model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MajewskiMichal/RadioHitsManager/internal/domain"
	"github.com/MajewskiMichal/RadioHitsManager/internal/slug"
)

// FindHitBySlug returns the hit whose slug matches titleURL. Slugs are not
// unique by construction, so the contract is explicit: among all matches,
// the row with the lowest primary key wins. Returns gorm.ErrRecordNotFound
// when no hit matches.
func FindHitBySlug(ctx context.Context, db *gorm.DB, titleURL string) (*domain.Hit, error) {
	var h domain.Hit
	err := db.WithContext(ctx).
		Where("title_url = ?", titleURL).
		Order("id ASC").
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHit inserts a new hit row. The slug is derived from the title here
// so the two can never drift apart. Both timestamps are set to at.
func CreateHit(ctx context.Context, db *gorm.DB, title string, artistID int, at time.Time) (*domain.Hit, error) {
	h := &domain.Hit{
		Title:     title,
		TitleURL:  slug.Make(title),
		ArtistID:  artistID,
		CreatedAt: at,
		UpdatedAt: at,
	}
	return h, db.WithContext(ctx).Create(h).Error
}

// UpdateHit persists an already-merged hit. The slug is always re-derived
// from the current title and the update timestamp refreshed to at, even
// when the merge changed nothing.
func UpdateHit(ctx context.Context, db *gorm.DB, hit *domain.Hit, at time.Time) error {
	hit.TitleURL = slug.Make(hit.Title)
	hit.UpdatedAt = at
	return db.WithContext(ctx).Save(hit).Error
}

// DeleteHit removes the row permanently. No soft delete, no tombstone.
func DeleteHit(ctx context.Context, db *gorm.DB, hit *domain.Hit) error {
	return db.WithContext(ctx).Delete(&domain.Hit{}, hit.ID).Error
}

// ListRecentHits returns hits ordered by creation timestamp ascending with
// a deterministic id tiebreak, truncated to limit (0 disables the cap).
func ListRecentHits(ctx context.Context, db *gorm.DB, limit int) ([]domain.Hit, error) {
	out := []domain.Hit{}
	q := db.WithContext(ctx).Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
